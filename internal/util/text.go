package util

import (
	"strings"
	"unicode"
)

// CountWords returns the number of whitespace-separated words in text.
// Runs of whitespace count as a single separator, so CountWords("a b   c") is 3.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountNonWhitespaceChars returns the number of characters in text excluding
// all whitespace.
func CountNonWhitespaceChars(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// IsValidWordCount reports whether min <= CountWords(text) <= max.
func IsValidWordCount(text string, min, max int) bool {
	n := CountWords(text)
	return n >= min && n <= max
}

// IsValidNonWhitespaceLength reports whether the non-whitespace character
// count of text is within [min, max].
func IsValidNonWhitespaceLength(text string, min, max int) bool {
	n := CountNonWhitespaceChars(text)
	return n >= min && n <= max
}
