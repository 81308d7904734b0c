// Package controller provides output adapters for reporting check results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// ListFormat selects the rendering of the list command output.
type ListFormat string

// Available list formats.
const (
	FormatTable ListFormat = "table"
	FormatYAML  ListFormat = "yaml"
)

// Valid reports whether the format is one the UI can render.
func (f ListFormat) Valid() bool {
	return f == FormatTable || f == FormatYAML
}

// UI defines how check and list results reach the operator. Violation paths
// go to standard output, one per line, so CI pipelines can consume them;
// everything else goes to standard error.
type UI interface {
	// DisplayViolations prints the sorted violating paths to stdout.
	DisplayViolations(ctx context.Context, violations []m.Path) error

	// DisplaySummary prints a human-readable result line to stderr. It is
	// a no-op when stdout is not a terminal, keeping CI output exact.
	DisplaySummary(ctx context.Context, checked, violations int)

	// Diagnostic reports an unexpected per-file I/O failure to stderr
	// without aborting the run. Safe for concurrent use.
	Diagnostic(ctx context.Context, path m.Path, err error)

	// DisplayListing renders the selected packages and their target paths.
	DisplayListing(ctx context.Context, listings []m.PackageListing, format ListFormat) error
}

// NewUI creates the UI implementation for the given command.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, tty)
}

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
