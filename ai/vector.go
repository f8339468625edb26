package ai

// ConformVector normalizes a vector to exactly dim components: vectors
// that are too long are truncated, vectors that are too short are
// right-padded with zeros. Storage and comparison assume fixed width,
// so every backend result passes through here.
func ConformVector(v []float32, dim int) []float32 {
	if len(v) == dim {
		return v
	}
	out := make([]float32, dim)
	copy(out, v)
	return out
}

// ConformVectors applies ConformVector to every vector in place.
func ConformVectors(vs [][]float32, dim int) [][]float32 {
	for i := range vs {
		vs[i] = ConformVector(vs[i], dim)
	}
	return vs
}

// PrepareTexts sanitizes embedding inputs while preserving list length:
// texts beyond maxChars characters are truncated, and empty strings are
// replaced with a single space since many backends reject empty input.
func PrepareTexts(texts []string, maxChars int) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		t = truncateRunes(t, maxChars)
		if t == "" {
			t = " "
		}
		out[i] = t
	}
	return out
}

// truncateRunes caps s at max characters. Drawing text carries
// multi-byte symbols like ± and ⌀, so cutting at a byte offset could
// emit invalid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
