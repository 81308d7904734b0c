// Package model defines the types shared between the prefixlint layers.
package model

// Path represents a file system path.
type Path string

// Workspace is a read-only graph of packages resolved once per invocation
// from a manifest. The domain layer only queries it; construction belongs
// to the adapter layer so selection logic stays testable against an
// in-memory graph.
type Workspace interface {
	// DefaultMembers returns the packages built by default.
	DefaultMembers() []Package

	// AllMembers returns every package in the workspace, including
	// non-default members.
	AllMembers() []Package
}

// Package is a named unit within a workspace holding one or more targets.
type Package interface {
	Name() string
	Targets() []Target
}

// Target is a single buildable artifact with one source entry-point file.
type Target interface {
	// SourcePath returns the absolute path of the target's source file.
	SourcePath() Path
}

// PackageListing is a flattened view of one selected package, used by the
// list command output.
type PackageListing struct {
	Name  string `yaml:"name"`
	Paths []Path `yaml:"targets"`
}
