package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type stubPackage struct {
	name string
}

func (p stubPackage) Name() string      { return p.name }
func (p stubPackage) Targets() []Target { return nil }

type stubWorkspace struct {
	defaults []Package
	all      []Package
}

func (w stubWorkspace) DefaultMembers() []Package { return w.defaults }
func (w stubWorkspace) AllMembers() []Package     { return w.all }

func TestNewFilter_ConflictingFlags(t *testing.T) {
	_, err := NewFilter(true, []string{"wlib"}, nil)
	require.ErrorIs(t, err, ErrConflictingFilter)
}

func TestNewFilter_AllWithExcludeIsAllowed(t *testing.T) {
	_, err := NewFilter(true, nil, []string{"wlib"})
	require.NoError(t, err)
}

func TestFilter_MembersIterationBase(t *testing.T) {
	root := stubPackage{name: "root"}
	wbin := stubPackage{name: "wbin"}
	wlib := stubPackage{name: "wlib"}

	ws := stubWorkspace{
		defaults: []Package{root, wlib},
		all:      []Package{root, wbin, wlib},
	}

	defaultFilter, err := NewFilter(false, nil, nil)
	require.NoError(t, err)
	require.Len(t, defaultFilter.Members(ws), 2)

	allFilter, err := NewFilter(true, nil, nil)
	require.NoError(t, err)
	require.Len(t, allFilter.Members(ws), 3)

	// Explicit package lists iterate the full member list; the name
	// predicate is applied by Accept.
	namedFilter, err := NewFilter(false, []string{"wbin"}, nil)
	require.NoError(t, err)
	require.Len(t, namedFilter.Members(ws), 3)
}

func TestFilter_Accept(t *testing.T) {
	tests := []struct {
		name     string
		all      bool
		packages []string
		exclude  []string
		pkg      string
		want     bool
	}{
		{name: "default accepts everything", pkg: "root", want: true},
		{name: "all accepts everything", all: true, pkg: "wbin", want: true},
		{name: "named accepts listed", packages: []string{"wbin"}, pkg: "wbin", want: true},
		{name: "named rejects unlisted", packages: []string{"wbin"}, pkg: "wlib", want: false},
		{name: "unknown name matches nothing", packages: []string{"doesnotexist"}, pkg: "wlib", want: false},
		{name: "exclude removes from default", exclude: []string{"wlib"}, pkg: "wlib", want: false},
		{name: "exclude removes from all", all: true, exclude: []string{"wbin"}, pkg: "wbin", want: false},
		{name: "exclude wins over explicit include", packages: []string{"wbin"}, exclude: []string{"wbin"}, pkg: "wbin", want: false},
		{name: "exclude leaves others alone", all: true, exclude: []string{"wbin"}, pkg: "wlib", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := NewFilter(tt.all, tt.packages, tt.exclude)
			require.NoError(t, err)

			require.Equal(t, tt.want, filter.Accept(stubPackage{name: tt.pkg}))
		})
	}
}
