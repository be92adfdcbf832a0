package domain

import (
	"regexp"
	"strings"
)

// TagNamespace prefixes every canonical tag so vocabulary cards can be found
// with a single tag search.
const TagNamespace = "vocab:"

var (
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	tagUnsafe     = regexp.MustCompile(`[^a-z0-9_]`)
)

// CanonicalTag maps a phrase to the label used both to mark a new card and to
// look up existing ones. "pose a risk" becomes "vocab:pose_a_risk".
//
// The result depends only on the phrase's characters after trimming and
// lower-casing; whitespace runs of any length collapse to one underscore.
func CanonicalTag(phrase string) string {
	clean := whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(phrase)), "_")
	clean = tagUnsafe.ReplaceAllString(clean, "")
	return TagNamespace + clean
}
