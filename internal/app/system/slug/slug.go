// Package slug derives URL slugs from article titles.
//
// The slug is always recomputed from the title on every save; it is never
// editable on its own. Make is deterministic and provides no uniqueness
// guarantee: two articles with the same title produce the same slug.
package slug

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Make converts a title to its slug: lowercase, strip characters outside
// [a-z0-9\s-], trim, collapse whitespace runs to a single hyphen, collapse
// repeated hyphens to one, and drop hyphens left at either end. Idempotent
// on already-valid slugs.
func Make(title string) string {
	s := strings.ToLower(title)
	s = invalidChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
