package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWERSimilarityIdentical(t *testing.T) {
	text := "the navigation bar hides the search field on small screens"
	assert.InDelta(t, 1.0, WERSimilarity(text, text), 1e-9)
}

func TestWERSimilarityDisjoint(t *testing.T) {
	assert.InDelta(t, 0.0, WERSimilarity("alpha beta gamma", "one two three"), 1e-9)
}

func TestWERSimilarityEmpty(t *testing.T) {
	assert.InDelta(t, 1.0, WERSimilarity("", "   "), 1e-9)
	assert.InDelta(t, 0.0, WERSimilarity("", "something"), 1e-9)
	assert.InDelta(t, 0.0, WERSimilarity("something", ""), 1e-9)
}

func TestWERSimilarityNearDuplicate(t *testing.T) {
	a := "the checkout button is hard to find on the page"
	b := "the checkout button is hard to see on the page"
	// one substitution across ten words
	assert.InDelta(t, 0.9, WERSimilarity(a, b), 1e-9)
}

func TestWERSimilarityNormalizedByLonger(t *testing.T) {
	// 2 deletions against the 4-token reference
	assert.InDelta(t, 0.5, WERSimilarity("a b", "a b c d"), 1e-9)
}

func TestGenerateCompletionCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateCompletionCode(8)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.Contains(t, codeCharset, string(r))
		}
		seen[code] = true
	}
	// 50 draws from a 36^8 space collapsing to one value would mean the
	// generator is constant
	assert.Greater(t, len(seen), 1)
}
