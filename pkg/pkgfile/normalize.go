package pkgfile

import (
	"regexp"
	"strings"
)

var separatorRuns = regexp.MustCompile(`[-_.]+`)

// Normalize canonicalizes a project name per PEP 503: lowercase, with any
// run of ".", "_" or "-" collapsed into a single "-". The result is the
// catalog lookup key and the canonical URL segment; the function is
// idempotent.
func Normalize(name string) string {
	return strings.ToLower(separatorRuns.ReplaceAllString(name, "-"))
}
