// Package backend implements the package catalog: an in-memory index over
// one or more filesystem roots of distribution files. The filesystem is the
// source of truth; the catalog is a cache rebuilt by scanning and kept
// coherent with mutations.
package backend

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/errutils"
	"github.com/glorpus-work/pindex/pkg/model"
	"github.com/glorpus-work/pindex/pkg/pkgfile"
)

// snapshot is one immutable view of the catalog. Readers share a snapshot
// by pointer; mutations and rescans build a new one and swap it in, so a
// reader never observes a torn state.
type snapshot struct {
	all        []*model.Package
	byFilename map[string]*model.Package
	byProject  map[string][]*model.Package
}

// Options configures a FileBackend.
type Options struct {
	// Roots are the directories to scan. Uploads land in the first one.
	Roots []string
	// Recursive controls whether subdirectories of the roots are scanned.
	Recursive bool
	// Overwrite permits uploads to replace an existing file.
	Overwrite bool
	// HashAlgo selects the digest attached to entries ("" disables).
	HashAlgo string
	// CacheTTL bounds snapshot staleness. Zero means rescan on every
	// query; a positive value caches the snapshot until it expires.
	// Mutations update the snapshot synchronously either way.
	CacheTTL time.Duration
}

// FileBackend is the filesystem-backed implementation of Backend.
type FileBackend struct {
	roots     []string
	recursive bool
	overwrite bool
	hashAlgo  string
	cacheTTL  time.Duration

	mu       sync.RWMutex // guards snap and loadedAt
	snap     *snapshot
	loadedAt time.Time

	mutMu sync.Mutex // serializes mutations and rescans
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend creates a catalog over the given roots. The first scan
// happens lazily on the first query.
func NewFileBackend(opts Options) (*FileBackend, error) {
	if len(opts.Roots) == 0 {
		return nil, errutils.ErrNoRoots
	}
	if opts.HashAlgo != "" {
		if _, err := newHasher(opts.HashAlgo); err != nil {
			return nil, err
		}
	}

	roots := make([]string, 0, len(opts.Roots))
	for _, root := range opts.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errutils.Wrapf(err, "cannot resolve root %s", root)
		}
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			return nil, errutils.Wrapf(errutils.ErrNoRoots, "%s is not a readable directory", abs)
		}
		roots = append(roots, abs)
	}

	return &FileBackend{
		roots:     roots,
		recursive: opts.Recursive,
		overwrite: opts.Overwrite,
		hashAlgo:  opts.HashAlgo,
		cacheTTL:  opts.CacheTTL,
	}, nil
}

// GetAllPackages implements Backend.
func (b *FileBackend) GetAllPackages() []*model.Package {
	snap := b.current()
	out := make([]*model.Package, len(snap.all))
	copy(out, snap.all)
	return out
}

// GetProjects implements Backend.
func (b *FileBackend) GetProjects() []string {
	snap := b.current()
	projects := make([]string, 0, len(snap.byProject))
	for name := range snap.byProject {
		projects = append(projects, name)
	}
	sort.Strings(projects)
	return projects
}

// FindProjectPackages implements Backend.
func (b *FileBackend) FindProjectPackages(project string) []*model.Package {
	snap := b.current()
	pkgs := snap.byProject[pkgfile.Normalize(project)]
	out := make([]*model.Package, len(pkgs))
	copy(out, pkgs)
	return out
}

// FindVersion implements Backend.
func (b *FileBackend) FindVersion(name, version string) []*model.Package {
	var out []*model.Package
	for _, pkg := range b.FindProjectPackages(name) {
		if pkg.Version == version {
			out = append(out, pkg)
		}
	}
	return out
}

// Exists implements Backend.
func (b *FileBackend) Exists(filename string) bool {
	_, ok := b.current().byFilename[filename]
	return ok
}

// PackageCount implements Backend.
func (b *FileBackend) PackageCount() int {
	return len(b.current().all)
}

// AddPackage implements Backend. The content is written to a temporary
// file in the primary root and renamed into place, so a concurrent reader
// never sees a partially written file under its final name.
func (b *FileBackend) AddPackage(filename string, content io.Reader) (*model.Package, error) {
	base := filepath.Base(filepath.ToSlash(filename))
	if _, err := pkgfile.Parse(base); err != nil {
		return nil, err
	}

	b.mutMu.Lock()
	defer b.mutMu.Unlock()

	// Deltas apply on top of a snapshot that reflects an actual scan. An
	// empty or expired base would hide every other on-disk package until
	// the next rescan once swap restamps it.
	snap := b.refreshLocked()

	dst := filepath.Join(b.roots[0], base)
	if !b.overwrite {
		if _, err := os.Stat(dst); err == nil {
			return nil, errutils.Wrapf(errutils.ErrAlreadyExists, "%s", base)
		}
		if _, ok := snap.byFilename[base]; ok {
			return nil, errutils.Wrapf(errutils.ErrAlreadyExists, "%s", base)
		}
	}

	if err := writeAtomic(dst, content); err != nil {
		return nil, err
	}

	entry, err := describeFile(b.roots[0], dst, b.hashAlgo)
	if err != nil {
		// The file parsed before writing; a failure here is an IO fault.
		return nil, errutils.Wrapf(err, "cannot catalog uploaded file %s", base)
	}

	b.swap(snap.with(entry))
	return entry, nil
}

// RemovePackage implements Backend. Removal is idempotent: when the file
// already vanished the entry is still dropped and the call succeeds.
func (b *FileBackend) RemovePackage(pkg *model.Package) error {
	b.mutMu.Lock()
	defer b.mutMu.Unlock()

	fullPath := filepath.FromSlash(pkg.FullPath())
	if err := os.Remove(fullPath); err != nil {
		if !os.IsNotExist(err) {
			return errutils.Wrapf(err, "cannot remove %s", fullPath)
		}
		logger.Warn("file already absent, treating as removed", logger.Fields{"path": fullPath})
	}

	b.swap(b.refreshLocked().without(pkg))
	return nil
}

// writeAtomic streams content to a temporary sibling of dst and renames it
// into place.
func writeAtomic(dst string, content io.Reader) error {
	tmp := dst + ".part-" + uuid.NewString()
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errutils.Wrapf(err, "cannot create temporary file for %s", dst)
	}

	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return errutils.Wrapf(err, "cannot write %s", dst)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errutils.Wrapf(err, "cannot finalize %s", dst)
	}

	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return errutils.Wrapf(err, "cannot move %s into place", dst)
	}
	return nil
}

// current returns a fresh snapshot, rescanning when none exists yet or the
// cache TTL expired. A failed rescan degrades to the previous snapshot so
// reads keep working; the failure is logged.
func (b *FileBackend) current() *snapshot {
	if snap := b.freshSnapshot(); snap != nil {
		return snap
	}

	b.mutMu.Lock()
	defer b.mutMu.Unlock()
	return b.refreshLocked()
}

// freshSnapshot returns the cached snapshot when it is still valid, nil
// otherwise.
func (b *FileBackend) freshSnapshot() *snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snap != nil && b.cacheTTL > 0 && time.Since(b.loadedAt) < b.cacheTTL {
		return b.snap
	}
	return nil
}

// refreshLocked rebuilds the snapshot from disk. Callers must hold mutMu.
// The scan runs without the read lock held; only the pointer swap takes
// the exclusive lock.
func (b *FileBackend) refreshLocked() *snapshot {
	if snap := b.freshSnapshot(); snap != nil {
		return snap
	}

	pkgs, err := Scan(b.roots, b.recursive, b.hashAlgo)
	if err != nil {
		logger.Error("catalog rescan failed", logger.Fields{"error": err.Error()})
		return b.snapshotLocked()
	}

	next := buildSnapshot(pkgs)
	b.swap(next)
	return next
}

// snapshotLocked returns the current snapshot, or an empty one before the
// first scan. Callers must hold mutMu.
func (b *FileBackend) snapshotLocked() *snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.snap == nil {
		return buildSnapshot(nil)
	}
	return b.snap
}

func (b *FileBackend) swap(next *snapshot) {
	b.mu.Lock()
	b.snap = next
	b.loadedAt = time.Now()
	b.mu.Unlock()
}

func buildSnapshot(pkgs []*model.Package) *snapshot {
	snap := &snapshot{
		all:        pkgs,
		byFilename: make(map[string]*model.Package, len(pkgs)),
		byProject:  make(map[string][]*model.Package, len(pkgs)),
	}
	for _, pkg := range pkgs {
		snap.byFilename[pkg.RawFilename] = pkg
		snap.byProject[pkg.NormalizedName] = append(snap.byProject[pkg.NormalizedName], pkg)
	}
	return snap
}

// with returns a new snapshot containing entry, replacing any previous
// entry with the same filename.
func (s *snapshot) with(entry *model.Package) *snapshot {
	pkgs := make([]*model.Package, 0, len(s.all)+1)
	for _, pkg := range s.all {
		if pkg.RawFilename == entry.RawFilename && pkg.Root == entry.Root {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return buildSnapshot(append(pkgs, entry))
}

// without returns a new snapshot with the entry for the given root and
// relative path removed.
func (s *snapshot) without(entry *model.Package) *snapshot {
	pkgs := make([]*model.Package, 0, len(s.all))
	for _, pkg := range s.all {
		if pkg.Root == entry.Root && pkg.RelPath == entry.RelPath {
			continue
		}
		pkgs = append(pkgs, pkg)
	}
	return buildSnapshot(pkgs)
}
