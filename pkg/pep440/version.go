// Package pep440 implements parsing and ordering of Python package version
// strings as defined by PEP 440. It covers epochs, release tuples,
// pre/post/dev markers and local version segments, and provides the total
// order the catalog uses for sorting and latest-version selection.
package pep440

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/glorpus-work/pindex/pkg/errutils"
)

// pre-release label ranks, lowest first.
const (
	preAlpha = iota
	preBeta
	preRC
)

var versionRe = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>\d+)!)?` +
	`(?P<release>\d+(?:\.\d+)*)` +
	`(?:[-_.]?(?P<prel>alpha|beta|preview|pre|a|b|c|rc)[-_.]?(?P<pren>\d+)?)?` +
	`(?:-(?P<postimplicit>\d+)|[-_.]?(?P<postl>post|rev|r)[-_.]?(?P<postn>\d+)?)?` +
	`(?:[-_.]?(?P<devl>dev)[-_.]?(?P<devn>\d+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

// localSegment is one dot-separated component of a local version. Numeric
// components compare numerically and rank above alphabetic ones.
type localSegment struct {
	num     int
	str     string
	numeric bool
}

// Version is an immutable, comparable PEP 440 version value.
type Version struct {
	original string
	epoch    int
	release  []int
	pre      *preTag
	post     *int
	dev      *int
	local    []localSegment
}

type preTag struct {
	rank int
	n    int
}

// Parse parses a version string per the PEP 440 grammar. The original
// string is preserved for display; comparisons use the parsed form.
func Parse(s string) (*Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return nil, errutils.Wrapf(errutils.ErrInvalidVersion, "%q", s)
	}
	group := func(name string) string {
		return m[versionRe.SubexpIndex(name)]
	}

	v := &Version{original: strings.TrimSpace(s)}

	if e := group("epoch"); e != "" {
		v.epoch = mustAtoi(e)
	}

	for _, part := range strings.Split(group("release"), ".") {
		v.release = append(v.release, mustAtoi(part))
	}

	if label := group("prel"); label != "" {
		v.pre = &preTag{rank: preRank(label), n: atoiOrZero(group("pren"))}
	}

	if implicit := group("postimplicit"); implicit != "" {
		n := mustAtoi(implicit)
		v.post = &n
	} else if group("postl") != "" {
		n := atoiOrZero(group("postn"))
		v.post = &n
	}

	if group("devl") != "" {
		n := atoiOrZero(group("devn"))
		v.dev = &n
	}

	if local := group("local"); local != "" {
		for _, part := range splitLocal(strings.ToLower(local)) {
			if n, err := strconv.Atoi(part); err == nil {
				v.local = append(v.local, localSegment{num: n, numeric: true})
			} else {
				v.local = append(v.local, localSegment{str: part})
			}
		}
	}

	return v, nil
}

// MustParse parses a version string and panics on failure. Intended for
// literals in tests and static tables.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the original version string.
func (v *Version) String() string { return v.original }

// IsPreRelease reports whether the version carries a pre-release or dev marker.
func (v *Version) IsPreRelease() bool { return v.pre != nil || v.dev != nil }

// IsLocal reports whether the version carries a local version segment.
func (v *Version) IsLocal() bool { return len(v.local) > 0 }

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to
// or after o. The order is total, deterministic and transitive.
func (v *Version) Compare(o *Version) int {
	if c := cmpInt(v.epoch, o.epoch); c != 0 {
		return c
	}
	if c := cmpRelease(v.release, o.release); c != 0 {
		return c
	}
	if c := cmpPre(v, o); c != 0 {
		return c
	}
	if c := cmpInt(postKey(v), postKey(o)); c != 0 {
		return c
	}
	if c := cmpInt(devKey(v), devKey(o)); c != 0 {
		return c
	}
	return cmpLocal(v.local, o.local)
}

// LessThan reports whether v sorts strictly before o.
func (v *Version) LessThan(o *Version) bool { return v.Compare(o) < 0 }

// GreaterThan reports whether v sorts strictly after o.
func (v *Version) GreaterThan(o *Version) bool { return v.Compare(o) > 0 }

// Equal reports whether v and o occupy the same position in the order.
// Distinct strings such as "1.0" and "1.0.0" compare equal.
func (v *Version) Equal(o *Version) bool { return v.Compare(o) == 0 }

func preRank(label string) int {
	switch strings.ToLower(label) {
	case "a", "alpha":
		return preAlpha
	case "b", "beta":
		return preBeta
	default: // c, rc, pre, preview
		return preRC
	}
}

// cmpPre orders the pre-release slot: a dev-only release sorts below
// everything, a pre-release sorts by its label and number, and a final or
// post release sorts above all pre-releases.
func cmpPre(a, b *Version) int {
	ca, ra, na := preKey(a)
	cb, rb, nb := preKey(b)
	if c := cmpInt(ca, cb); c != 0 {
		return c
	}
	if c := cmpInt(ra, rb); c != 0 {
		return c
	}
	return cmpInt(na, nb)
}

func preKey(v *Version) (class, rank, n int) {
	switch {
	case v.pre != nil:
		return 1, v.pre.rank, v.pre.n
	case v.post == nil && v.dev != nil:
		return 0, 0, 0
	default:
		return 2, 0, 0
	}
}

func postKey(v *Version) int {
	if v.post == nil {
		return -1
	}
	return *v.post
}

func devKey(v *Version) int {
	if v.dev == nil {
		return math.MaxInt
	}
	return *v.dev
}

// cmpRelease compares release tuples element-wise, padding missing trailing
// elements with zero so 1.0 and 1.0.0 compare equal.
func cmpRelease(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if c := cmpInt(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

// cmpLocal orders local segments: absence sorts below presence, numeric
// components compare numerically and outrank alphabetic ones, and a common
// prefix loses to the longer sequence.
func cmpLocal(a, b []localSegment) int {
	if len(a) == 0 || len(b) == 0 {
		return cmpInt(len(a), len(b))
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := cmpLocalSegment(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpLocalSegment(a, b localSegment) int {
	switch {
	case a.numeric && b.numeric:
		return cmpInt(a.num, b.num)
	case a.numeric:
		return 1
	case b.numeric:
		return -1
	default:
		return strings.Compare(a.str, b.str)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func splitLocal(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err) // guarded by the regex
	}
	return n
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	return mustAtoi(s)
}
