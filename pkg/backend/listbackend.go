package backend

import (
	"io"
	"sort"

	"github.com/glorpus-work/pindex/pkg/model"
	"github.com/glorpus-work/pindex/pkg/pkgfile"
)

// ListBackend serves a static, pre-declared set of packages. It conforms
// to the Backend contract for read paths and rejects mutations, which
// makes it useful for read-only mirrors and as a test double.
type ListBackend struct {
	snap *snapshot
}

var _ Backend = (*ListBackend)(nil)

// NewListBackend creates a read-only backend over the given entries.
func NewListBackend(pkgs []*model.Package) *ListBackend {
	return &ListBackend{snap: buildSnapshot(pkgs)}
}

// GetAllPackages implements Backend.
func (b *ListBackend) GetAllPackages() []*model.Package {
	out := make([]*model.Package, len(b.snap.all))
	copy(out, b.snap.all)
	return out
}

// GetProjects implements Backend.
func (b *ListBackend) GetProjects() []string {
	projects := make([]string, 0, len(b.snap.byProject))
	for name := range b.snap.byProject {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects
}

// FindProjectPackages implements Backend.
func (b *ListBackend) FindProjectPackages(project string) []*model.Package {
	pkgs := b.snap.byProject[pkgfile.Normalize(project)]
	out := make([]*model.Package, len(pkgs))
	copy(out, pkgs)
	return out
}

// FindVersion implements Backend.
func (b *ListBackend) FindVersion(name, version string) []*model.Package {
	var out []*model.Package
	for _, pkg := range b.FindProjectPackages(name) {
		if pkg.Version == version {
			out = append(out, pkg)
		}
	}
	return out
}

// Exists implements Backend.
func (b *ListBackend) Exists(filename string) bool {
	_, ok := b.snap.byFilename[filename]
	return ok
}

// PackageCount implements Backend.
func (b *ListBackend) PackageCount() int {
	return len(b.snap.all)
}

// AddPackage implements Backend; it always fails.
func (b *ListBackend) AddPackage(string, io.Reader) (*model.Package, error) {
	return nil, ErrReadOnlyBackend
}

// RemovePackage implements Backend; it always fails.
func (b *ListBackend) RemovePackage(*model.Package) error {
	return ErrReadOnlyBackend
}
