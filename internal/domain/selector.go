// Package domain holds the package selection and prefix verification logic.
package domain

import (
	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// Select resolves the filter against the workspace graph into the
// deduplicated set of target source paths. An empty result is a valid
// return value; the caller decides whether it is fatal.
//
// Unknown names in the filter match nothing. Names that matched no member
// are indistinguishable from members with no surviving targets, on purpose.
func Select(ws m.Workspace, filter m.Filter) []m.Path {
	seen := make(map[m.Path]struct{})

	var paths []m.Path

	for _, pkg := range filter.Members(ws) {
		if !filter.Accept(pkg) {
			continue
		}

		for _, target := range pkg.Targets() {
			path := target.SourcePath()
			if _, dup := seen[path]; dup {
				continue
			}

			seen[path] = struct{}{}
			paths = append(paths, path)
		}
	}

	return paths
}

// SelectListings groups the selected packages with their target paths,
// preserving workspace member order. Used by the list command.
func SelectListings(ws m.Workspace, filter m.Filter) []m.PackageListing {
	var listings []m.PackageListing

	for _, pkg := range filter.Members(ws) {
		if !filter.Accept(pkg) {
			continue
		}

		listing := m.PackageListing{Name: pkg.Name()}
		for _, target := range pkg.Targets() {
			listing.Paths = append(listing.Paths, target.SourcePath())
		}

		listings = append(listings, listing)
	}

	return listings
}
