package model

// filterKind discriminates how candidate members are chosen.
type filterKind int

const (
	// filterDefault selects the workspace's default members.
	filterDefault filterKind = iota

	// filterAll selects every workspace member.
	filterAll

	// filterPackages selects members by explicit name.
	filterPackages
)

// Filter is an immutable package selection built once from CLI input.
//
// The algebra is the permissive one: an exclusion set combines with any of
// the three inclusion modes, while --all together with an explicit package
// list is rejected at construction time, before any workspace query.
// Unknown names in either set silently match nothing.
type Filter struct {
	kind     filterKind
	packages map[string]struct{}
	exclude  map[string]struct{}
}

// NewFilter validates the flag combination and builds a Filter.
func NewFilter(all bool, packages, exclude []string) (Filter, error) {
	if all && len(packages) > 0 {
		return Filter{}, ErrConflictingFilter
	}

	f := Filter{
		kind:    filterDefault,
		exclude: toSet(exclude),
	}

	switch {
	case all:
		f.kind = filterAll
	case len(packages) > 0:
		f.kind = filterPackages
		f.packages = toSet(packages)
	}

	return f, nil
}

// Members returns the candidate iteration base for the filter. Explicit
// package lists iterate the full member list; the name predicate is applied
// by Accept, not here.
func (f Filter) Members(ws Workspace) []Package {
	if f.kind == filterDefault {
		return ws.DefaultMembers()
	}

	return ws.AllMembers()
}

// Accept reports whether a candidate member survives the filter.
func (f Filter) Accept(pkg Package) bool {
	if _, excluded := f.exclude[pkg.Name()]; excluded {
		return false
	}

	if f.kind == filterPackages {
		_, ok := f.packages[pkg.Name()]
		return ok
	}

	return true
}

func toSet(names []string) map[string]struct{} {
	if len(names) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}
