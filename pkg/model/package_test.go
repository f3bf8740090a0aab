package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glorpus-work/pindex/pkg/pep440"
)

func pkg(name, version, relPath string) *Package {
	return &Package{
		RawFilename:    relPath,
		Name:           name,
		NormalizedName: name,
		Version:        version,
		ParsedVersion:  pep440.MustParse(version),
		RelPath:        relPath,
		Root:           "/srv/packages",
	}
}

func TestFullPath(t *testing.T) {
	p := pkg("mypkg", "1.0", "sub/mypkg-1.0.tar.gz")
	assert.Equal(t, "/srv/packages/sub/mypkg-1.0.tar.gz", p.FullPath())
}

func TestFnameAndHash(t *testing.T) {
	p := pkg("mypkg", "1.0", "mypkg-1.0.tar.gz")
	assert.Equal(t, "mypkg-1.0.tar.gz", p.FnameAndHash())

	p.Hash = "sha256=abcdef"
	assert.Equal(t, "mypkg-1.0.tar.gz#sha256=abcdef", p.FnameAndHash())
}

func TestIsWheel(t *testing.T) {
	assert.True(t, (&Package{RawFilename: "a-1.0-py3-none-any.whl"}).IsWheel())
	assert.True(t, (&Package{RawFilename: "a-1.0-py3-none-any.WHL"}).IsWheel())
	assert.False(t, (&Package{RawFilename: "a-1.0.tar.gz"}).IsWheel())
}

func TestSortByVersion(t *testing.T) {
	pkgs := []*Package{
		pkg("mypkg", "1.1.0", "mypkg-1.1.0.tar.gz"),
		pkg("mypkg", "1.0.0", "mypkg-1.0.0.tar.gz"),
		pkg("mypkg", "1.1.0a1", "mypkg-1.1.0a1.tar.gz"),
		pkg("mypkg", "1.1.0.post1", "mypkg-1.1.0.post1.tar.gz"),
	}
	SortByVersion(pkgs)

	got := make([]string, len(pkgs))
	for i, p := range pkgs {
		got[i] = p.Version
	}
	assert.Equal(t, []string{"1.0.0", "1.1.0a1", "1.1.0", "1.1.0.post1"}, got)
}

func TestSortByVersionTieBreak(t *testing.T) {
	// Equal versions fall back to path order so listings are stable.
	pkgs := []*Package{
		pkg("mypkg", "1.0", "b/mypkg-1.0.zip"),
		pkg("mypkg", "1.0.0", "a/mypkg-1.0.0.tar.gz"),
	}
	SortByVersion(pkgs)
	assert.Equal(t, "a/mypkg-1.0.0.tar.gz", pkgs[0].RelPath)
}

func TestSortByVersionDesc(t *testing.T) {
	pkgs := []*Package{
		pkg("mypkg", "1.0", "mypkg-1.0.tar.gz"),
		pkg("mypkg", "2.0", "mypkg-2.0.tar.gz"),
		pkg("mypkg", "1.5", "mypkg-1.5.tar.gz"),
	}
	SortByVersionDesc(pkgs)
	assert.Equal(t, "2.0", pkgs[0].Version)
	assert.Equal(t, "1.0", pkgs[2].Version)
}

func TestSortForListing(t *testing.T) {
	pkgs := []*Package{
		pkg("zeta", "1.0", "sub/zeta-1.0.tar.gz"),
		pkg("alpha", "2.0", "alpha-2.0.tar.gz"),
		pkg("alpha", "1.0", "alpha-1.0.tar.gz"),
		pkg("beta", "1.0", "beta-1.0.tar.gz"),
	}
	SortForListing(pkgs)

	got := make([]string, len(pkgs))
	for i, p := range pkgs {
		got[i] = p.RelPath
	}
	// Top-level files ordered by name then version, subdirectories after.
	assert.Equal(t, []string{
		"alpha-1.0.tar.gz",
		"alpha-2.0.tar.gz",
		"beta-1.0.tar.gz",
		"sub/zeta-1.0.tar.gz",
	}, got)
}
