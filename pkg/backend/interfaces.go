//go:generate mockgen -destination=./mocks/backend.go -package=mocks . Backend
package backend

import (
	"io"

	"github.com/glorpus-work/pindex/pkg/model"
)

// Backend is the repository contract the HTTP layer talks to. The
// filesystem-backed FileBackend is the default implementation; ListBackend
// serves a static pre-declared set. All methods are safe for concurrent
// use: reads never observe a partially updated catalog and mutations are
// visible to every subsequent query as soon as they return.
type Backend interface {
	// GetAllPackages returns the current known set in unspecified order.
	GetAllPackages() []*model.Package

	// GetProjects returns the distinct normalized project names, sorted.
	GetProjects() []string

	// FindProjectPackages returns all files belonging to a project. The
	// argument is normalized before lookup.
	FindProjectPackages(project string) []*model.Package

	// FindVersion returns the files matching a project and an exact raw
	// version string. Versions are compared literally, not parsed-equal.
	FindVersion(name, version string) []*model.Package

	// Exists reports whether a raw filename is already cataloged.
	Exists(filename string) bool

	// AddPackage validates the filename, stores the content under the
	// primary root and catalogs the entry. It fails with
	// errutils.ErrInvalidCharacters or a parse error for bad names, and
	// with errutils.ErrAlreadyExists when the file is present and
	// overwriting is disabled.
	AddPackage(filename string, content io.Reader) (*model.Package, error)

	// RemovePackage deletes the underlying file and drops the entry.
	// Removal is idempotent: a file that already vanished is logged and
	// treated as removed.
	RemovePackage(pkg *model.Package) error

	// PackageCount returns the number of cataloged entries. The value may
	// be approximate while a cached snapshot is stale.
	PackageCount() int
}
