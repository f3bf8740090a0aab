// Package model provides the data structures shared between the filename
// parser, the catalog backends and the HTTP layer of the pindex server.
package model

import (
	"path"
	"sort"
	"strings"

	"github.com/glorpus-work/pindex/pkg/pep440"
)

// Package is the identity of one distribution file in the catalog. It is
// derived from the on-disk filename and never mutated after construction;
// mutations of the catalog replace entries wholesale.
type Package struct {
	// RawFilename is the original on-disk file name.
	RawFilename string `json:"filename"`
	// Name is the project name exactly as spelled in the filename.
	Name string `json:"name"`
	// NormalizedName is the PEP 503 lookup key for Name.
	NormalizedName string `json:"normalized_name"`
	// Version is the raw version string from the filename.
	Version string `json:"version"`
	// ParsedVersion is the comparable form of Version.
	ParsedVersion *pep440.Version `json:"-"`
	// RelPath is the path relative to Root, always slash-separated.
	RelPath string `json:"path"`
	// Root is the absolute root directory the entry was scanned from.
	Root string `json:"-"`
	// Hash holds "algo=hexdigest" when a hash algorithm is configured.
	Hash string `json:"hash,omitempty"`

	// Wheel tags, retained verbatim from the filename and empty for
	// source distributions. They are not validated against any
	// known-platform list.
	BuildTag    string `json:"build_tag,omitempty"`
	PythonTag   string `json:"python_tag,omitempty"`
	AbiTag      string `json:"abi_tag,omitempty"`
	PlatformTag string `json:"platform_tag,omitempty"`
}

// FullPath returns the absolute filesystem location of the file.
func (p *Package) FullPath() string {
	return path.Join(p.Root, p.RelPath)
}

// FnameAndHash returns the relative path with the hash fragment appended,
// suitable for download link generation.
func (p *Package) FnameAndHash() string {
	if p.Hash == "" {
		return p.RelPath
	}
	return p.RelPath + "#" + p.Hash
}

// IsWheel reports whether the entry is a built distribution.
func (p *Package) IsWheel() bool {
	return strings.HasSuffix(strings.ToLower(p.RawFilename), ".whl")
}

// SortByVersion sorts packages ascending by parsed version, breaking ties
// by relative path for a stable listing order.
func SortByVersion(pkgs []*Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		if c := pkgs[i].ParsedVersion.Compare(pkgs[j].ParsedVersion); c != 0 {
			return c < 0
		}
		return pkgs[i].RelPath < pkgs[j].RelPath
	})
}

// SortByVersionDesc sorts packages descending by parsed version.
func SortByVersionDesc(pkgs []*Package) {
	SortByVersion(pkgs)
	for i, j := 0, len(pkgs)-1; i < j; i, j = i+1, j-1 {
		pkgs[i], pkgs[j] = pkgs[j], pkgs[i]
	}
}

// SortForListing sorts packages by containing directory, project name and
// parsed version, the order used by the full package listing.
func SortForListing(pkgs []*Package) {
	sort.SliceStable(pkgs, func(i, j int) bool {
		di, dj := path.Dir(pkgs[i].RelPath), path.Dir(pkgs[j].RelPath)
		if di != dj {
			return di < dj
		}
		if pkgs[i].Name != pkgs[j].Name {
			return pkgs[i].Name < pkgs[j].Name
		}
		return pkgs[i].ParsedVersion.Compare(pkgs[j].ParsedVersion) < 0
	})
}
