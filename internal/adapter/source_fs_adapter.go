// Package adapter contains infrastructure adapters for the prefixlint CLI.
package adapter

import (
	"io"
	"os"

	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer
// relies on when checking source files. It hides direct `os` access so the
// verification logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// Open returns a reader for the file at path. The caller owns the
	// handle and must close it on every exit path.
	Open(path m.Path) (io.ReadCloser, error)

	// ReadFile loads a whole file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter implementation.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter ready to be
// wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Open opens the file at path for reading.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	return os.Open(string(path))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}
