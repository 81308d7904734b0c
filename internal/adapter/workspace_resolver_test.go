package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// writeWorkspaceFixture lays out a three-member workspace on disk:
// the root package plus wbin and wlib, with wbin not a default member.
func writeWorkspaceFixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	writeFixtureFile(t, filepath.Join(root, ManifestFileName), `
[workspace]
members = [".", "wbin", "wlib"]
default-members = [".", "wlib"]

[package]
name = "workspace_root"

[[target]]
name = "workspace_root"
path = "src/lib.go"
`)

	writeFixtureFile(t, filepath.Join(root, "wbin", ManifestFileName), `
[package]
name = "wbin"

[[target]]
name = "wbin"
path = "src/main.go"
`)

	writeFixtureFile(t, filepath.Join(root, "wlib", ManifestFileName), `
[package]
name = "wlib"

[[target]]
name = "wlib"
path = "src/lib.go"

[[target]]
name = "wlib-extra"
path = "src/extra.go"
`)

	return root
}

func writeFixtureFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func packageNames(packages []m.Package) []string {
	names := make([]string, 0, len(packages))
	for _, pkg := range packages {
		names = append(names, pkg.Name())
	}

	return names
}

func TestResolve_WorkspaceMembers(t *testing.T) {
	root := writeWorkspaceFixture(t)

	ws, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(root, ManifestFileName)))
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"workspace_root", "wlib"}, packageNames(ws.DefaultMembers()))
	require.ElementsMatch(t, []string{"workspace_root", "wbin", "wlib"}, packageNames(ws.AllMembers()))
}

func TestResolve_TargetPathsAreAbsolute(t *testing.T) {
	root := writeWorkspaceFixture(t)

	ws, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(root, ManifestFileName)))
	require.NoError(t, err)

	var paths []string

	for _, pkg := range ws.AllMembers() {
		for _, target := range pkg.Targets() {
			paths = append(paths, string(target.SourcePath()))
		}
	}

	require.ElementsMatch(t, []string{
		filepath.Join(root, "src", "lib.go"),
		filepath.Join(root, "wbin", "src", "main.go"),
		filepath.Join(root, "wlib", "src", "lib.go"),
		filepath.Join(root, "wlib", "src", "extra.go"),
	}, paths)
}

func TestResolve_MemberManifestResolvesEnclosingWorkspace(t *testing.T) {
	root := writeWorkspaceFixture(t)

	ws, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(root, "wbin", ManifestFileName)))
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"workspace_root", "wbin", "wlib"}, packageNames(ws.AllMembers()))
	require.ElementsMatch(t, []string{"workspace_root", "wlib"}, packageNames(ws.DefaultMembers()))
}

func TestResolve_StandalonePackage(t *testing.T) {
	dir := t.TempDir()

	writeFixtureFile(t, filepath.Join(dir, ManifestFileName), `
[package]
name = "solo"

[[target]]
name = "solo"
path = "main.go"
`)

	ws, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(dir, ManifestFileName)))
	require.NoError(t, err)

	require.Equal(t, []string{"solo"}, packageNames(ws.AllMembers()))
	require.Equal(t, []string{"solo"}, packageNames(ws.DefaultMembers()))
}

func TestResolve_DefaultMembersDefaultToAllMembers(t *testing.T) {
	dir := t.TempDir()

	writeFixtureFile(t, filepath.Join(dir, ManifestFileName), `
[workspace]
members = ["a", "b"]
`)
	writeFixtureFile(t, filepath.Join(dir, "a", ManifestFileName), `
[package]
name = "a"

[[target]]
path = "main.go"
`)
	writeFixtureFile(t, filepath.Join(dir, "b", ManifestFileName), `
[package]
name = "b"

[[target]]
path = "main.go"
`)

	ws, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(dir, ManifestFileName)))
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"a", "b"}, packageNames(ws.DefaultMembers()))
}

func TestResolve_ManifestNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "src", ManifestFileName)

	_, err := NewTOMLWorkspaceResolver().Resolve(m.Path(missing))

	var notFound *m.ManifestNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, m.Path(missing), notFound.Path)
}

func TestResolve_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFixtureFile(t, path, "package main\n\nfunc main() {}\n")

	_, err := NewTOMLWorkspaceResolver().Resolve(m.Path(path))

	var invalid *m.ManifestInvalidError
	require.ErrorAs(t, err, &invalid)
}

func TestResolve_ManifestValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{
			name:     "workspace with no members",
			manifest: "[workspace]\nmembers = []\n",
		},
		{
			name:     "standalone manifest without package name",
			manifest: "[[target]]\npath = \"main.go\"\n",
		},
		{
			name:     "package without targets",
			manifest: "[package]\nname = \"solo\"\n",
		},
		{
			name:     "target without path",
			manifest: "[package]\nname = \"solo\"\n\n[[target]]\nname = \"solo\"\n",
		},
		{
			name:     "member directory without manifest",
			manifest: "[workspace]\nmembers = [\"ghost\"]\n",
		},
		{
			name:     "default member not in members",
			manifest: "[workspace]\nmembers = [\".\"]\ndefault-members = [\"ghost\"]\n\n[package]\nname = \"root\"\n\n[[target]]\npath = \"main.go\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, ManifestFileName)
			writeFixtureFile(t, path, tt.manifest)

			_, err := NewTOMLWorkspaceResolver().Resolve(m.Path(path))

			var invalid *m.ManifestInvalidError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

func TestResolve_DuplicatePackageNames(t *testing.T) {
	dir := t.TempDir()

	writeFixtureFile(t, filepath.Join(dir, ManifestFileName), `
[workspace]
members = ["a", "b"]
`)
	writeFixtureFile(t, filepath.Join(dir, "a", ManifestFileName), "[package]\nname = \"dup\"\n\n[[target]]\npath = \"main.go\"\n")
	writeFixtureFile(t, filepath.Join(dir, "b", ManifestFileName), "[package]\nname = \"dup\"\n\n[[target]]\npath = \"main.go\"\n")

	_, err := NewTOMLWorkspaceResolver().Resolve(m.Path(filepath.Join(dir, ManifestFileName)))

	var invalid *m.ManifestInvalidError
	require.ErrorAs(t, err, &invalid)
}
