// Package pkgfile parses distribution filenames into package identities and
// provides the PEP 503 name normalizer. Parsing is a total function: every
// input yields either a complete identity or a typed failure, never a panic.
package pkgfile

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/glorpus-work/pindex/pkg/errutils"
	"github.com/glorpus-work/pindex/pkg/model"
	"github.com/glorpus-work/pindex/pkg/pep440"
)

// uploadFilenameRe is the allow-list applied to filenames before any
// semantic parsing: ASCII letters and digits plus "_ . ! + -".
var uploadFilenameRe = regexp.MustCompile(`^[a-zA-Z0-9_.!+-]+$`)

// wheelRe matches the PEP 427 filename form
// {name}-{version}(-{build})?-{python}-{abi}-{platform}.whl.
// Tag sets are captured verbatim and not validated semantically.
var wheelRe = regexp.MustCompile(`^(?P<name>.+?)-(?P<ver>\d[^-]*?)` +
	`(?:-(?P<build>\d[^-]*))?` +
	`-(?P<py>[^-]+)-(?P<abi>[^-]+)-(?P<plat>[^-]+)\.whl$`)

// versionStartRe locates the name/version boundary in a source archive
// stem: the first dash followed by an optional "v" and digits that read
// like a version rather than a name component.
var versionStartRe = regexp.MustCompile(`-(?i:v)?\d+[._a-zA-Z0-9]*$|-(?i:v)?\d+[.a-zA-Z]`)

// archiveSuffixes are the recognized source distribution suffixes, longest
// first so ".tar.gz" wins over ".gz"-style confusion.
var archiveSuffixes = []string{
	".tar.gz", ".tar.bz2", ".tar.xz",
	".tgz", ".tbz", ".txz",
	".tar", ".zip", ".egg",
}

// IsValidUploadFilename reports whether a declared upload filename passes
// the character allow-list. It is checked before Parse so hostile names
// never reach the grammar.
func IsValidUploadFilename(fname string) bool {
	return uploadFilenameRe.MatchString(fname)
}

// Parse maps a raw filename to a package identity. Directory components
// and a single trailing ".asc" suffix are ignored, so signature files
// resolve to the identity of the file they sign. On failure the returned
// error wraps one of the errutils parse sentinels.
func Parse(filename string) (*model.Package, error) {
	raw := path.Base(filepath.ToSlash(filename))
	if !IsValidUploadFilename(raw) {
		return nil, errutils.Wrapf(errutils.ErrInvalidCharacters, "%q", raw)
	}

	// Signature files share the identity of the file they sign but keep
	// their own raw filename.
	base := strings.TrimSuffix(raw, ".asc")

	var pkg *model.Package
	var err error
	if strings.HasSuffix(strings.ToLower(base), ".whl") {
		pkg, err = parseWheel(base)
	} else {
		pkg, err = parseArchive(base)
	}
	if err != nil {
		return nil, err
	}
	pkg.RawFilename = raw
	return pkg, nil
}

func parseWheel(base string) (*model.Package, error) {
	m := wheelRe.FindStringSubmatch(base)
	if m == nil {
		return nil, errutils.Wrapf(errutils.ErrMalformedFilename, "%q is not a valid wheel name", base)
	}
	group := func(name string) string { return m[wheelRe.SubexpIndex(name)] }

	name := group("name")
	// Wheel filenames escape "-" to "_" inside the version field.
	version := strings.ReplaceAll(group("ver"), "_", "-")

	parsed, err := pep440.Parse(version)
	if err != nil {
		return nil, err
	}

	return &model.Package{
		RawFilename:    base,
		Name:           name,
		NormalizedName: Normalize(name),
		Version:        version,
		ParsedVersion:  parsed,
		BuildTag:       group("build"),
		PythonTag:      group("py"),
		AbiTag:         group("abi"),
		PlatformTag:    group("plat"),
	}, nil
}

func parseArchive(base string) (*model.Package, error) {
	stem, ok := trimArchiveSuffix(base)
	if !ok {
		return nil, errutils.Wrapf(errutils.ErrUnknownArchiveFormat, "%q", base)
	}

	name, version := splitNameVersion(stem)
	if version == "" {
		return nil, errutils.Wrapf(errutils.ErrMalformedFilename, "no version in %q", base)
	}

	parsed, err := pep440.Parse(version)
	if err != nil {
		return nil, err
	}

	return &model.Package{
		RawFilename:    base,
		Name:           name,
		NormalizedName: Normalize(name),
		Version:        version,
		ParsedVersion:  parsed,
	}, nil
}

func trimArchiveSuffix(base string) (string, bool) {
	lower := strings.ToLower(base)
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return base[:len(base)-len(suffix)], true
		}
	}
	return "", false
}

// splitNameVersion splits an archive stem into project name and version.
// A lone dash splits directly; otherwise the version starts at the first
// dash introducing a digit sequence, mirroring how setuptools composes
// sdist names. Names may themselves contain dashes and digits.
func splitNameVersion(stem string) (name, version string) {
	if !strings.Contains(stem, "-") {
		return stem, ""
	}
	if strings.Count(stem, "-") == 1 {
		parts := strings.SplitN(stem, "-", 2)
		return parts[0], parts[1]
	}
	if !strings.Contains(stem, ".") {
		idx := strings.LastIndex(stem, "-")
		return stem[:idx], stem[idx+1:]
	}

	loc := versionStartRe.FindStringIndex(stem)
	if loc == nil {
		return stem, ""
	}
	return stem[:loc[0]], stem[loc[0]+1:]
}
