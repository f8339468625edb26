package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicVector(t *testing.T) {
	t.Run("same text yields same vector", func(t *testing.T) {
		a := DeterministicVector("BREAK ALL SHARP EDGES", MockDimension)
		b := DeterministicVector("BREAK ALL SHARP EDGES", MockDimension)

		assert.Equal(t, a, b)
		assert.NotEqual(t, a, DeterministicVector("other text", MockDimension))
	})

	t.Run("vectors have unit length", func(t *testing.T) {
		v := DeterministicVector("1.750 PROD DIA", MockDimension)

		var sumSquares float64
		for _, x := range v {
			sumSquares += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-5)
	})
}

func TestMockEmbedderDimensionOverride(t *testing.T) {
	e := NewMockEmbedder()
	e.Dimension = 4

	v, err := e.EmbedText(context.Background(), "some text")
	require.NoError(t, err)
	assert.Len(t, v, 4)
}
