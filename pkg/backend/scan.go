package backend

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/errutils"
	"github.com/glorpus-work/pindex/pkg/model"
	"github.com/glorpus-work/pindex/pkg/pkgfile"
)

// Scan walks the given roots and parses every regular file into a package
// identity. Filenames that fail to parse and entries that cannot be read
// are logged and skipped; they never abort the scan. Symlinks to files are
// followed and cataloged under the link name; symlinked directories are
// not descended into, which keeps the traversal bounded. When recursive is
// false only the top level of each root is considered.
func Scan(roots []string, recursive bool, hashAlgo string) ([]*model.Package, error) {
	if len(roots) == 0 {
		return nil, errutils.ErrNoRoots
	}

	var pkgs []*model.Package
	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, errutils.Wrapf(err, "cannot resolve root %s", root)
		}
		rootPkgs, err := scanRoot(absRoot, recursive, hashAlgo)
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, rootPkgs...)
	}
	return pkgs, nil
}

func scanRoot(root string, recursive bool, hashAlgo string) ([]*model.Package, error) {
	var pkgs []*model.Package

	walkFn := func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("skipping unreadable entry", logger.Fields{"path": p, "error": walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !recursive && p != root {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// Symlinks to files are cataloged under the link name;
			// symlinks to directories are not descended into.
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			fi, err := os.Stat(p)
			if err != nil || !fi.Mode().IsRegular() {
				return nil
			}
		}

		pkg, err := describeFile(root, p, hashAlgo)
		if err != nil {
			logger.Debug("skipping unrecognized file", logger.Fields{"path": p, "reason": err.Error()})
			return nil
		}
		pkgs = append(pkgs, pkg)
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, errutils.Wrapf(err, "error walking root %s", root)
	}
	return pkgs, nil
}

// describeFile parses a scanned file into a catalog entry, attaching the
// root-relative slash path and, when configured, the content digest.
func describeFile(root, fullPath, hashAlgo string) (*model.Package, error) {
	pkg, err := pkgfile.Parse(filepath.Base(fullPath))
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return nil, errutils.Wrapf(err, "cannot relativize %s", fullPath)
	}
	pkg.RelPath = filepath.ToSlash(rel)
	pkg.Root = filepath.ToSlash(root)

	if hashAlgo != "" {
		digest, err := digestFile(hashAlgo, fullPath)
		if err != nil {
			return nil, err
		}
		pkg.Hash = digest
	}
	return pkg, nil
}

// digestFile returns "algo=hexdigest" for the file contents. The digest is
// stable for a given content, so download fragments never flap between
// scans.
func digestFile(algo, path string) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", errutils.Wrapf(err, "cannot open %s for hashing", path)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return "", errutils.Wrapf(err, "cannot hash %s", path)
	}
	return fmt.Sprintf("%s=%x", algo, h.Sum(nil)), nil
}

func newHasher(algo string) (hash.Hash, error) {
	switch algo {
	case "md5":
		return md5.New(), nil
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, errutils.Wrapf(ErrUnsupportedHashAlgo, "%q", algo)
	}
}
