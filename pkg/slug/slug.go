// Package slug converts arbitrary human text into filesystem-safe names.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops the combining marks, so
// "Café" slugs the same as "Cafe".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a title into a lowercase slug containing only
// [a-z0-9-]. Runs of any other characters collapse into a single hyphen,
// and leading/trailing hyphens are stripped.
//
// The function is deterministic and idempotent: Slugify(Slugify(x)) ==
// Slugify(x) for any input.
func Slugify(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			pendingSep = true
		}
	}
	return b.String()
}
