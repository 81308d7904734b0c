package domain

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"prefixlint.dev/pkg/prefixlint/internal/adapter"
	"prefixlint.dev/pkg/prefixlint/internal/controller"
	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// WildcardByte is the in-band wildcard marker inside a prefix pattern: a
// pattern byte of 0x1A (SUB) matches any byte at that position. The value
// is a wire-compatibility constraint, do not change it.
const WildcardByte byte = 0x1A

// Verifier checks that files start with a required byte pattern.
type Verifier struct {
	files   adapter.SourceFSAdapter
	ui      controller.UI
	workers int
}

// NewVerifier creates a Verifier running at most workers concurrent file
// checks. A workers value below 1 means sequential.
func NewVerifier(files adapter.SourceFSAdapter, ui controller.UI, workers int) *Verifier {
	if workers < 1 {
		workers = 1
	}

	return &Verifier{files: files, ui: ui, workers: workers}
}

// Verify returns the paths whose files do not start with pattern, sorted
// lexicographically. An empty pattern matches every file.
//
// Files are checked independently on a bounded worker pool; each worker
// collects its own violations and the slices are merged and sorted at the
// end, so concurrent and sequential runs produce identical output.
func (v *Verifier) Verify(ctx context.Context, paths []m.Path, pattern []byte) []m.Path {
	if len(pattern) == 0 {
		return nil
	}

	paths = dedupe(paths)

	var (
		mu         sync.Mutex
		violations []m.Path
	)

	var group errgroup.Group
	group.SetLimit(v.workers)

	for _, path := range paths {
		path := path
		group.Go(func() error {
			if v.hasPrefix(ctx, path, pattern) {
				return nil
			}

			mu.Lock()
			violations = append(violations, path)
			mu.Unlock()

			return nil
		})
	}

	// Workers never return errors; per-file anomalies become violations.
	_ = group.Wait()

	sort.Slice(violations, func(i, j int) bool {
		return violations[i] < violations[j]
	})

	return violations
}

// hasPrefix reads exactly len(pattern) leading bytes of the file and
// compares them position by position. A file too short to carry the
// pattern is a mismatch, not an error; open failures and any other read
// error also count as mismatches and are surfaced as diagnostics.
func (v *Verifier) hasPrefix(ctx context.Context, path m.Path, pattern []byte) bool {
	file, err := v.files.Open(path)
	if err != nil {
		v.ui.Diagnostic(ctx, path, err)
		return false
	}

	defer func() {
		_ = file.Close()
	}()

	buf := make([]byte, len(pattern))

	_, err = io.ReadFull(file, buf)

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return false
	case err != nil:
		v.ui.Diagnostic(ctx, path, err)
		return false
	}

	for i, want := range pattern {
		if want != WildcardByte && want != buf[i] {
			return false
		}
	}

	return true
}

func dedupe(paths []m.Path) []m.Path {
	seen := make(map[m.Path]struct{}, len(paths))
	out := make([]m.Path, 0, len(paths))

	for _, path := range paths {
		if _, dup := seen[path]; dup {
			continue
		}

		seen[path] = struct{}{}
		out = append(out, path)
	}

	return out
}
