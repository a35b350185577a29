package util

import "strings"

// WERSimilarity scores how close two texts are on a word-error-rate basis:
// 1 minus the word-level Levenshtein distance normalized by the longer token
// sequence. The result is in [0, 1]; identical texts score 1, texts with no
// words in common score 0.
func WERSimilarity(candidate, reference string) float64 {
	a := strings.Fields(candidate)
	b := strings.Fields(reference)

	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dist := levenshtein(a, b)
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}

	return 1.0 - float64(dist)/float64(longer)
}

// levenshtein computes the word-level edit distance between token slices
// using two rolling rows.
func levenshtein(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
