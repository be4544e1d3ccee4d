package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_Identity(t *testing.T) {
	names := []string{"Blue Bottle", "Joe's Cafe", "Salt & Straw", "카페 온리", "X"}
	for _, n := range names {
		assert.Equal(t, 100.0, Similarity(n, n), "name=%q", n)
	}
}

func TestSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"Blue Bottle", "Blue Bottles"},
		{"Mocha Lab", "Mocha Labs Coffee"},
		{"Bean There", "Bean Here"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}

func TestSimilarity_NormalizedEquality(t *testing.T) {
	// Different raw strings, identical normalized forms.
	assert.Equal(t, 100.0, Similarity("Blue Bottle Coffee", "blue bottle"))
	assert.Equal(t, 100.0, Similarity("Joe's Cafe", "Joes"))
}

func TestSimilarity_EmptyNormalized(t *testing.T) {
	// "Coffee Shop" normalizes to nothing, so there is no name signal.
	assert.Equal(t, 0.0, Similarity("Coffee Shop", "Blue Bottle"))
	assert.Equal(t, 0.0, Similarity("Blue Bottle", ""))
}

func TestSimilarity_KnownScore(t *testing.T) {
	// "blue bottle" vs "blue bottles": one insertion over 12 runes.
	got := Similarity("Blue Bottle", "Blue Bottles")
	assert.InDelta(t, 91.7, got, 0.01)
}

func TestSimilarity_Disjoint(t *testing.T) {
	got := Similarity("Blue Bottle", "Velvet Teahouse")
	assert.Less(t, got, 50.0)
}
