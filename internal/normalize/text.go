package normalize

import (
	"regexp"
	"strings"
)

var (
	reHyphenGap = regexp.MustCompile(`\s*-\s*`)
	reSlashGap  = regexp.MustCompile(`\s*/\s*`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Text canonicalizes a free-text description so that equivalent descriptions
// compare equal: spaces around hyphens and slashes are removed ("A - B" ->
// "A-B"), runs of whitespace collapse to a single space, and the result is
// trimmed. Idempotent.
func Text(s string) string {
	s = reHyphenGap.ReplaceAllString(s, "-")
	s = reSlashGap.ReplaceAllString(s, "/")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
