// Package slug turns free-form titles into URL slugs.
//
// Make("Python é Legal!") == "python-e-legal". Uniqueness is not this
// package's concern — the store enforces it and the service layer resolves
// collisions by suffixing.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent decomposes characters and strips combining marks, so "é"
// becomes "e" and "ç" becomes "c".
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts s to a slug: lowercase ASCII letters and digits separated
// by single hyphens, no leading or trailing hyphen. Returns "" when s
// contains nothing usable.
func Make(s string) string {
	folded, _, err := transform.String(deaccent, s)
	if err != nil {
		// Invalid UTF-8 sequences; fall back to the raw input and let the
		// character filter below drop whatever remains unusable.
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}
