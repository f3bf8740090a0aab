package pep440

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/pindex/pkg/errutils"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain release", input: "1.0.0"},
		{name: "single component", input: "2024"},
		{name: "leading v", input: "v1.2.3"},
		{name: "epoch", input: "1!2.0"},
		{name: "alpha", input: "1.0a1"},
		{name: "spelled out alpha", input: "1.0alpha1"},
		{name: "beta with separator", input: "1.0-beta.2"},
		{name: "release candidate", input: "1.0rc1"},
		{name: "legacy c label", input: "1.0c2"},
		{name: "post release", input: "1.0.post1"},
		{name: "implicit post", input: "1.0-1"},
		{name: "rev label", input: "1.0.rev2"},
		{name: "dev release", input: "1.0.dev3"},
		{name: "bare dev", input: "1.0dev"},
		{name: "local segment", input: "1.0+ubuntu.1"},
		{name: "everything", input: "2!1.2.3rc1.post4.dev5+abc.6"},
		{name: "surrounding whitespace", input: "  1.0  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, v)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1.0.0-", "hello-1.0", "1.0+", "1..0"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, errutils.ErrInvalidVersion)
		})
	}
}

func TestCompareOrdering(t *testing.T) {
	// Each version must sort strictly before the next one.
	ordered := []string{
		"0.9",
		"1.0.dev1",
		"1.0.dev2",
		"1.0a1",
		"1.0a2",
		"1.0b1",
		"1.0rc1",
		"1.0",
		"1.0+abc",
		"1.0+abc.5",
		"1.0+5",
		"1.0.post1",
		"1.0.post2",
		"1.1.0a1",
		"1.1.0",
		"1.1.0.post1",
		"2.0",
		"1!0.5",
	}
	for i := 0; i < len(ordered)-1; i++ {
		a, b := MustParse(ordered[i]), MustParse(ordered[i+1])
		assert.True(t, a.LessThan(b), "%s should sort before %s", ordered[i], ordered[i+1])
		assert.True(t, b.GreaterThan(a), "%s should sort after %s", ordered[i+1], ordered[i])
	}
}

func TestCompareEqual(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"1.0", "1.0.0"},
		{"1.0", "1.0.0.0"},
		{"1.0a1", "1.0.alpha.1"},
		{"1.0rc1", "1.0c1"},
		{"1.0.post1", "1.0-1"},
		{"1.0+FOO", "1.0+foo"},
		{"v1.0", "1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.a+" == "+tt.b, func(t *testing.T) {
			assert.True(t, MustParse(tt.a).Equal(MustParse(tt.b)),
				"%s and %s should compare equal", tt.a, tt.b)
		})
	}
}

func TestDevSortsBelowPre(t *testing.T) {
	dev := MustParse("1.0.dev99")
	pre := MustParse("1.0a1")
	assert.True(t, dev.LessThan(pre))

	// A dev marker on a post release still sorts below the final post.
	postDev := MustParse("1.0.post1.dev1")
	post := MustParse("1.0.post1")
	assert.True(t, postDev.LessThan(post))
	assert.True(t, MustParse("1.0").LessThan(postDev))
}

func TestLocalSegments(t *testing.T) {
	assert.True(t, MustParse("1.0").LessThan(MustParse("1.0+anything")))
	// Numeric components outrank alphabetic ones.
	assert.True(t, MustParse("1.0+abc").LessThan(MustParse("1.0+1")))
	// Prefix loses to the longer sequence.
	assert.True(t, MustParse("1.0+a").LessThan(MustParse("1.0+a.1")))
	// Numeric components compare numerically, not lexically.
	assert.True(t, MustParse("1.0+9").LessThan(MustParse("1.0+10")))
}

func TestSortStrings(t *testing.T) {
	versions := []string{"1.1.0", "1.0.0", "1.1.0a1", "1.0.1", "1.1.0.post1"}
	parsed := make([]*Version, len(versions))
	for i, s := range versions {
		parsed[i] = MustParse(s)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].LessThan(parsed[j]) })

	got := make([]string, len(parsed))
	for i, v := range parsed {
		got[i] = v.String()
	}
	assert.Equal(t, []string{"1.0.0", "1.0.1", "1.1.0a1", "1.1.0", "1.1.0.post1"}, got)
}

func TestFlags(t *testing.T) {
	assert.True(t, MustParse("1.0a1").IsPreRelease())
	assert.True(t, MustParse("1.0.dev1").IsPreRelease())
	assert.False(t, MustParse("1.0.post1").IsPreRelease())
	assert.True(t, MustParse("1.0+local").IsLocal())
	assert.False(t, MustParse("1.0").IsLocal())
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not-a-version") })
}
