// Package match scores submitted place names against extracted and
// existing records and classifies submissions into a three-way verdict.
package match

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// genericSuffixes are whole words that add no identity to a place name
// ("Blue Bottle Coffee" and "Blue Bottle" are the same entity).
var genericSuffixes = regexp.MustCompile(`\b(cafe|coffee|shop|house|bar|kitchen)\b`)

// punctuation matches everything that is not a letter, digit or space.
var punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// diacriticFold decomposes characters and drops combining marks, so
// "café" and "cafe" normalize identically.
var diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a place name for similarity scoring: lowercase,
// diacritics folded, apostrophes stripped, generic suffix words removed,
// "&" spelled out, remaining punctuation dropped, whitespace collapsed.
func Normalize(name string) string {
	s := strings.ToLower(name)
	if folded, _, err := transform.String(diacriticFold, s); err == nil {
		s = folded
	}
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	s = genericSuffixes.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "&", " and ")
	s = punctuation.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
