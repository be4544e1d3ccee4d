package match

import (
	"math"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Similarity scores two place names on a 0-100 scale, rounded to one
// decimal. Equal normalized names score 100; otherwise the score is the
// edit distance between the normalized forms relative to the longer one.
// If either name normalizes to nothing there is no signal and the score
// is 0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 100
	}
	if na == "" || nb == "" {
		return 0
	}

	dist := levenshtein.Distance(na, nb, nil)
	maxLen := utf8.RuneCountInString(na)
	if n := utf8.RuneCountInString(nb); n > maxLen {
		maxLen = n
	}

	score := 100 * float64(maxLen-dist) / float64(maxLen)
	return math.Round(score*10) / 10
}
