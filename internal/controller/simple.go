package controller

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

var (
	violationStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	compliantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// SimpleUI implements UI using the cobra Command's output streams.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool

	// Guards concurrent Diagnostic calls from verifier workers.
	mu sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// DisplayViolations prints the violating paths to stdout, one per line.
func (s *SimpleUI) DisplayViolations(ctx context.Context, violations []m.Path) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, violation := range violations {
		s.cmd.Println(string(violation))
	}

	return nil
}

// DisplaySummary prints a styled result line to stderr on terminals.
func (s *SimpleUI) DisplaySummary(ctx context.Context, checked, violations int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if !s.tty {
		return
	}

	if violations == 0 {
		s.cmd.PrintErrln(compliantStyle.Render(fmt.Sprintf("all %d files carry the required prefix", checked)))
		return
	}

	s.cmd.PrintErrln(violationStyle.Render(fmt.Sprintf("%d of %d files missing the required prefix", violations, checked)))
}

// Diagnostic reports an unexpected read failure for a single file.
func (s *SimpleUI) Diagnostic(ctx context.Context, path m.Path, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cmd.PrintErrf("error reading %s: %v\n", path, err)
	slog.Warn("file read failed", "path", string(path), "error", err)
}

// DisplayListing renders the selected packages as a table or YAML document.
func (s *SimpleUI) DisplayListing(ctx context.Context, listings []m.PackageListing, format ListFormat) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		return s.renderYAML(listings)
	case FormatTable:
		s.cmd.Print(renderListingTable(listings))
		return nil
	default:
		return fmt.Errorf("unknown list format %q", format)
	}
}

func (s *SimpleUI) renderYAML(listings []m.PackageListing) error {
	out, err := yaml.Marshal(listings)
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}

	s.cmd.Print(string(out))

	return nil
}

func renderListingTable(listings []m.PackageListing) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Package", "Target"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	targetCount := 0

	for _, listing := range listings {
		for _, path := range listing.Paths {
			table.Append([]string{listing.Name, string(path)})

			targetCount++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Packages %d", len(listings)),
		fmt.Sprintf("Total Targets %d", targetCount),
	})

	table.Render()

	return tableBuffer.String()
}
