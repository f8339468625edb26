package search

import (
	"strings"
	"unicode"
)

// trigramSimilarity computes the trigram set similarity of two strings:
// |A ∩ B| / |A ∪ B| over their trigram sets. Both inputs are lowercased
// and split into alphanumeric words, each word padded with two leading
// and one trailing space before trigram extraction, so word boundaries
// contribute their own trigrams and short keywords still match.
func trigramSimilarity(a, b string) float32 {
	setA := trigramSet(a)
	setB := trigramSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float32(intersection) / float32(union)
}

// trigramSet extracts the trigram set of a string.
func trigramSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(s) {
		padded := "  " + word + " "
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			set[string(runes[i:i+3])] = struct{}{}
		}
	}
	return set
}

// splitWords lowercases and splits on any non-alphanumeric rune.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
