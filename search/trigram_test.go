package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrigramSimilarity(t *testing.T) {
	t.Run("identical strings", func(t *testing.T) {
		assert.Equal(t, float32(1), trigramSimilarity("hydraulic cylinder", "hydraulic cylinder"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, float32(1), trigramSimilarity("Hydraulic Cylinder", "hydraulic cylinder"))
	})

	t.Run("disjoint strings", func(t *testing.T) {
		assert.Equal(t, float32(0), trigramSimilarity("bore", "flange"))
	})

	t.Run("partial overlap between extremes", func(t *testing.T) {
		sim := trigramSimilarity("hydraulic cylinder assembly", "cylinder bore")
		assert.Greater(t, sim, float32(0))
		assert.Less(t, sim, float32(1))
	})

	t.Run("more overlap scores higher", func(t *testing.T) {
		closer := trigramSimilarity("mounting bracket holes", "mounting bracket")
		farther := trigramSimilarity("mounting bracket holes", "mounting")
		assert.Greater(t, closer, farther)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Equal(t, float32(0), trigramSimilarity("", "query"))
		assert.Equal(t, float32(0), trigramSimilarity("content", ""))
		assert.Equal(t, float32(0), trigramSimilarity("", ""))
	})

	t.Run("punctuation is ignored", func(t *testing.T) {
		assert.Equal(t, float32(1), trigramSimilarity("bore: 3.25", "bore 3 25"))
	})
}

func TestTrigramSet(t *testing.T) {
	set := trigramSet("ab")

	// "  ab " yields "  a", " ab", "ab ".
	assert.Len(t, set, 3)
	assert.Contains(t, set, "  a")
	assert.Contains(t, set, " ab")
	assert.Contains(t, set, "ab ")
}
