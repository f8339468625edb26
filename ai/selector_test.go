package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider is a minimal Provider used to observe selector behavior.
type fakeProvider struct {
	name   string
	closed bool
}

func (f *fakeProvider) Embedder() Embedder     { return nil }
func (f *fakeProvider) Summarizer() Summarizer { return nil }
func (f *fakeProvider) Answerer() Answerer     { return nil }
func (f *fakeProvider) Close() error {
	f.closed = true
	return nil
}

func fakeFactory(name string) Factory {
	return func(*Config) (Provider, error) {
		return &fakeProvider{name: name}, nil
	}
}

func TestSelector(t *testing.T) {
	t.Run("empty before first use", func(t *testing.T) {
		sel := NewSelector()

		assert.Nil(t, sel.Provider())
		assert.Equal(t, Mode(""), sel.Mode())
	})

	t.Run("use activates registered backend", func(t *testing.T) {
		sel := NewSelector()
		sel.Register(ModeOpenAI, OpenAIConfig(), fakeFactory("a"))

		require.NoError(t, sel.Use(ModeOpenAI))

		assert.Equal(t, ModeOpenAI, sel.Mode())
		require.NotNil(t, sel.Provider())
		assert.Equal(t, "a", sel.Provider().(*fakeProvider).name)
	})

	t.Run("switching closes previous provider", func(t *testing.T) {
		sel := NewSelector()
		sel.Register(ModeOpenAI, OpenAIConfig(), fakeFactory("a"))
		sel.Register(ModeLocal, LocalConfig(), fakeFactory("b"))

		require.NoError(t, sel.Use(ModeOpenAI))
		first := sel.Provider().(*fakeProvider)

		require.NoError(t, sel.Use(ModeLocal))

		assert.True(t, first.closed)
		assert.Equal(t, ModeLocal, sel.Mode())
		assert.Equal(t, "b", sel.Provider().(*fakeProvider).name)
	})

	t.Run("unknown mode", func(t *testing.T) {
		sel := NewSelector()

		err := sel.Use(ModeLocal)

		assert.ErrorIs(t, err, ErrUnknownMode)
		assert.Nil(t, sel.Provider())
	})

	t.Run("factory failure keeps current provider", func(t *testing.T) {
		sel := NewSelector()
		sel.Register(ModeOpenAI, OpenAIConfig(), fakeFactory("a"))
		sel.Register(ModeLocal, LocalConfig(), func(*Config) (Provider, error) {
			return nil, errors.New("dial failed")
		})

		require.NoError(t, sel.Use(ModeOpenAI))
		require.Error(t, sel.Use(ModeLocal))

		assert.Equal(t, ModeOpenAI, sel.Mode())
		assert.Equal(t, "a", sel.Provider().(*fakeProvider).name)
	})

	t.Run("close releases active provider", func(t *testing.T) {
		sel := NewSelector()
		sel.Register(ModeOpenAI, OpenAIConfig(), fakeFactory("a"))
		require.NoError(t, sel.Use(ModeOpenAI))
		p := sel.Provider().(*fakeProvider)

		require.NoError(t, sel.Close())

		assert.True(t, p.closed)
		assert.Nil(t, sel.Provider())
	})
}

func TestStatic(t *testing.T) {
	p := &fakeProvider{name: "fixed"}

	src := Static(p)

	assert.Same(t, Provider(p), src.Provider())
}
