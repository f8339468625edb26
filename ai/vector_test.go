package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformVector(t *testing.T) {
	t.Run("truncates long vectors", func(t *testing.T) {
		long := make([]float32, 4000)
		for i := range long {
			long[i] = float32(i)
		}

		out := ConformVector(long, 1536)

		require.Len(t, out, 1536)
		assert.Equal(t, float32(0), out[0])
		assert.Equal(t, float32(1535), out[1535])
	})

	t.Run("zero-pads short vectors", func(t *testing.T) {
		short := make([]float32, 800)
		for i := range short {
			short[i] = 1.5
		}

		out := ConformVector(short, 1536)

		require.Len(t, out, 1536)
		for i := 0; i < 800; i++ {
			assert.Equal(t, float32(1.5), out[i])
		}
		for i := 800; i < 1536; i++ {
			assert.Equal(t, float32(0), out[i])
		}
	})

	t.Run("returns exact-width vectors unchanged", func(t *testing.T) {
		v := []float32{1, 2, 3}

		out := ConformVector(v, 3)

		// Same backing array, no copy.
		assert.Equal(t, &v[0], &out[0])
	})

	t.Run("nil vector becomes zero vector", func(t *testing.T) {
		out := ConformVector(nil, 4)

		assert.Equal(t, []float32{0, 0, 0, 0}, out)
	})
}

func TestConformVectors(t *testing.T) {
	vs := [][]float32{
		make([]float32, 10),
		make([]float32, 2),
		nil,
	}

	out := ConformVectors(vs, 4)

	require.Len(t, out, 3)
	for _, v := range out {
		assert.Len(t, v, 4)
	}
}

func TestPrepareTexts(t *testing.T) {
	t.Run("truncates long texts", func(t *testing.T) {
		long := make([]byte, 5000)
		for i := range long {
			long[i] = 'a'
		}

		out := PrepareTexts([]string{string(long)}, 2000)

		require.Len(t, out, 1)
		assert.Len(t, out[0], 2000)
	})

	t.Run("truncates on rune boundaries", func(t *testing.T) {
		text := strings.Repeat("a", 1999) + "⌀BORE"

		out := PrepareTexts([]string{text}, 2000)

		require.Len(t, out, 1)
		assert.True(t, utf8.ValidString(out[0]))
		assert.Equal(t, 2000, utf8.RuneCountInString(out[0]))
		assert.Equal(t, strings.Repeat("a", 1999)+"⌀", out[0])
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		out := PrepareTexts([]string{"±0.005 TYP"}, 6)

		assert.Equal(t, "±0.005", out[0])
	})

	t.Run("replaces empty strings", func(t *testing.T) {
		out := PrepareTexts([]string{"", "ok", ""}, 2000)

		assert.Equal(t, []string{" ", "ok", " "}, out)
	})

	t.Run("preserves length and order", func(t *testing.T) {
		in := []string{"a", "b", "c"}

		out := PrepareTexts(in, 2000)

		assert.Equal(t, in, out)
	})
}
