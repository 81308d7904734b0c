package domain

import (
	"context"
	"log/slog"

	"prefixlint.dev/pkg/prefixlint/internal/adapter"
	"prefixlint.dev/pkg/prefixlint/internal/controller"
	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// CheckArgs carries everything one check run needs.
type CheckArgs struct {
	ManifestPath m.Path
	PrefixPath   m.Path
	Filter       m.Filter
	Workers      int
}

// ListArgs carries the inputs of the list command.
type ListArgs struct {
	ManifestPath m.Path
	Filter       m.Filter
	Format       controller.ListFormat
}

// Workflow wires the resolver, selector and verifier into the two
// user-facing operations.
type Workflow interface {
	// Check verifies the selected files and prints violations. It returns
	// model.ErrViolationsFound when at least one file fails, and
	// model.ErrNoPackagesMatched when selection is empty.
	Check(ctx context.Context, args CheckArgs) error

	// List renders the selected packages and their target paths.
	List(ctx context.Context, args ListArgs) error
}

type workflow struct {
	resolver adapter.WorkspaceResolver
	files    adapter.SourceFSAdapter
	ui       controller.UI
}

// NewWorkflow creates a Workflow with the provided collaborators.
func NewWorkflow(resolver adapter.WorkspaceResolver, files adapter.SourceFSAdapter, ui controller.UI) Workflow {
	return &workflow{resolver: resolver, files: files, ui: ui}
}

func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	ws, err := w.resolver.Resolve(args.ManifestPath)
	if err != nil {
		return err
	}

	paths := Select(ws, args.Filter)
	if len(paths) == 0 {
		return m.ErrNoPackagesMatched
	}

	slog.Debug("selected targets", "manifest", string(args.ManifestPath), "files", len(paths))

	pattern, err := w.files.ReadFile(args.PrefixPath)
	if err != nil {
		return &m.PrefixUnreadableError{Path: args.PrefixPath, Err: err}
	}

	verifier := NewVerifier(w.files, w.ui, args.Workers)
	violations := verifier.Verify(ctx, paths, pattern)

	slog.Info("check finished", "files", len(paths), "violations", len(violations))
	w.ui.DisplaySummary(ctx, len(paths), len(violations))

	if len(violations) == 0 {
		return nil
	}

	if err := w.ui.DisplayViolations(ctx, violations); err != nil {
		return err
	}

	return m.ErrViolationsFound
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	ws, err := w.resolver.Resolve(args.ManifestPath)
	if err != nil {
		return err
	}

	listings := SelectListings(ws, args.Filter)
	if len(listings) == 0 {
		return m.ErrNoPackagesMatched
	}

	return w.ui.DisplayListing(ctx, listings, args.Format)
}
