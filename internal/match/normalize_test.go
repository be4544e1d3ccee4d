package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Blue Bottle", "blue bottle"},
		{"strips generic suffix", "Blue Bottle Coffee", "blue bottle"},
		{"strips multiple suffixes", "The Coffee House Bar", "the"},
		{"suffix only as whole word", "Barista Lane", "barista lane"},
		{"apostrophes removed", "Joe's Cafe", "joes"},
		{"curly apostrophe removed", "Joe’s Kitchen", "joes"},
		{"ampersand spelled out", "Salt & Straw", "salt and straw"},
		{"punctuation stripped", "Cafe: Mocha, Ltd.", "mocha ltd"},
		{"whitespace collapsed", "  Big   Bean   ", "big bean"},
		{"diacritics folded", "Café Crème", "creme"},
		{"empty after normalize", "Coffee Shop", ""},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}
