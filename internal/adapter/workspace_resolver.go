package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	m "prefixlint.dev/pkg/prefixlint/internal/model"
)

// ManifestFileName is the manifest file every package directory carries.
// The workspace root's manifest additionally holds a [workspace] table.
const ManifestFileName = "manifest.toml"

// WorkspaceResolver resolves a manifest location into a package graph.
// The TOML implementation below is the production collaborator; the domain
// layer depends only on this interface.
type WorkspaceResolver interface {
	Resolve(manifestPath m.Path) (m.Workspace, error)
}

// TOMLWorkspaceResolver resolves workspaces described by manifest.toml
// files. A manifest path pointing at a member package resolves the
// enclosing workspace by walking up the directory tree, so invocations from
// anywhere inside the workspace see the same graph.
type TOMLWorkspaceResolver struct{}

// NewTOMLWorkspaceResolver constructs a TOMLWorkspaceResolver.
func NewTOMLWorkspaceResolver() *TOMLWorkspaceResolver {
	return &TOMLWorkspaceResolver{}
}

type manifest struct {
	Workspace *workspaceTable `toml:"workspace"`
	Package   *packageTable   `toml:"package"`
	Targets   []targetEntry   `toml:"target"`
}

type workspaceTable struct {
	Members        []string `toml:"members"`
	DefaultMembers []string `toml:"default-members"`
}

type packageTable struct {
	Name string `toml:"name"`
}

type targetEntry struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// workspaceGraph is the resolved, read-only graph handed to the domain.
type workspaceGraph struct {
	defaultMembers []m.Package
	allMembers     []m.Package
}

func (w *workspaceGraph) DefaultMembers() []m.Package { return w.defaultMembers }
func (w *workspaceGraph) AllMembers() []m.Package     { return w.allMembers }

type workspacePackage struct {
	name    string
	targets []m.Target
}

func (p *workspacePackage) Name() string        { return p.name }
func (p *workspacePackage) Targets() []m.Target { return p.targets }

type packageTarget struct {
	sourcePath m.Path
}

func (t *packageTarget) SourcePath() m.Path { return t.sourcePath }

// Resolve loads the workspace graph for the manifest at manifestPath.
func (r *TOMLWorkspaceResolver) Resolve(manifestPath m.Path) (m.Workspace, error) {
	if _, err := os.Stat(string(manifestPath)); err != nil {
		return nil, &m.ManifestNotFoundError{Path: manifestPath}
	}

	absPath, err := filepath.Abs(string(manifestPath))
	if err != nil {
		return nil, &m.ManifestInvalidError{Path: manifestPath, Err: err}
	}

	doc, err := readManifest(absPath)
	if err != nil {
		return nil, err
	}

	rootPath, rootDoc, err := findWorkspaceRoot(absPath, doc)
	if err != nil {
		return nil, err
	}

	if rootDoc.Workspace == nil {
		// Standalone package: a one-member workspace of itself.
		pkg, err := buildPackage(rootPath, rootDoc)
		if err != nil {
			return nil, err
		}

		members := []m.Package{pkg}

		return &workspaceGraph{defaultMembers: members, allMembers: members}, nil
	}

	return buildWorkspace(rootPath, rootDoc)
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &m.ManifestInvalidError{Path: m.Path(path), Err: err}
	}

	var doc manifest
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, &m.ManifestInvalidError{Path: m.Path(path), Err: err}
	}

	return &doc, nil
}

// findWorkspaceRoot walks up from the given manifest looking for a manifest
// that declares a [workspace] table. When none exists the given manifest is
// its own root.
func findWorkspaceRoot(absPath string, doc *manifest) (string, *manifest, error) {
	if doc.Workspace != nil {
		return absPath, doc, nil
	}

	dir := filepath.Dir(absPath)

	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return absPath, doc, nil
		}

		dir = parent

		candidate := filepath.Join(dir, ManifestFileName)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}

		parentDoc, err := readManifest(candidate)
		if err != nil {
			return "", nil, err
		}

		if parentDoc.Workspace != nil {
			return candidate, parentDoc, nil
		}
	}
}

func buildWorkspace(rootPath string, rootDoc *manifest) (m.Workspace, error) {
	rootDir := filepath.Dir(rootPath)
	ws := rootDoc.Workspace

	if len(ws.Members) == 0 {
		return nil, invalidManifest(rootPath, "workspace has no members")
	}

	packagesByDir := make(map[string]m.Package, len(ws.Members))
	namesSeen := make(map[string]struct{}, len(ws.Members))

	var allMembers []m.Package

	for _, member := range ws.Members {
		memberDir := filepath.Clean(filepath.Join(rootDir, member))
		if _, dup := packagesByDir[memberDir]; dup {
			continue
		}

		pkg, err := loadMemberPackage(rootPath, rootDoc, rootDir, memberDir)
		if err != nil {
			return nil, err
		}

		if _, dup := namesSeen[pkg.Name()]; dup {
			return nil, invalidManifest(rootPath, fmt.Sprintf("duplicate package name %q", pkg.Name()))
		}

		namesSeen[pkg.Name()] = struct{}{}
		packagesByDir[memberDir] = pkg
		allMembers = append(allMembers, pkg)
	}

	defaultMembers := allMembers
	if len(ws.DefaultMembers) > 0 {
		defaultMembers = nil

		for _, member := range ws.DefaultMembers {
			memberDir := filepath.Clean(filepath.Join(rootDir, member))

			pkg, ok := packagesByDir[memberDir]
			if !ok {
				return nil, invalidManifest(rootPath, fmt.Sprintf("default member %q is not a workspace member", member))
			}

			defaultMembers = append(defaultMembers, pkg)
		}
	}

	return &workspaceGraph{defaultMembers: defaultMembers, allMembers: allMembers}, nil
}

// loadMemberPackage reads a member's manifest. The workspace root may itself
// be a member (listed as "."), in which case its already-parsed manifest is
// reused instead of being read again.
func loadMemberPackage(rootPath string, rootDoc *manifest, rootDir, memberDir string) (m.Package, error) {
	if memberDir == filepath.Clean(rootDir) {
		return buildPackage(rootPath, rootDoc)
	}

	memberManifest := filepath.Join(memberDir, ManifestFileName)
	if _, err := os.Stat(memberManifest); err != nil {
		return nil, invalidManifest(rootPath, fmt.Sprintf("member manifest %s not found", memberManifest))
	}

	doc, err := readManifest(memberManifest)
	if err != nil {
		return nil, err
	}

	return buildPackage(memberManifest, doc)
}

func buildPackage(manifestPath string, doc *manifest) (m.Package, error) {
	if doc.Package == nil || doc.Package.Name == "" {
		return nil, invalidManifest(manifestPath, "missing package name")
	}

	if len(doc.Targets) == 0 {
		return nil, invalidManifest(manifestPath, fmt.Sprintf("package %q has no targets", doc.Package.Name))
	}

	pkgDir := filepath.Dir(manifestPath)
	targets := make([]m.Target, 0, len(doc.Targets))

	for _, entry := range doc.Targets {
		if entry.Path == "" {
			return nil, invalidManifest(manifestPath, fmt.Sprintf("target in package %q has no path", doc.Package.Name))
		}

		src := entry.Path
		if !filepath.IsAbs(src) {
			src = filepath.Join(pkgDir, src)
		}

		targets = append(targets, &packageTarget{sourcePath: m.Path(filepath.Clean(src))})
	}

	return &workspacePackage{name: doc.Package.Name, targets: targets}, nil
}

func invalidManifest(path, reason string) error {
	return &m.ManifestInvalidError{Path: m.Path(path), Err: errors.New(reason)}
}
