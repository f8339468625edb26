package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIConfig(t *testing.T) {
	cfg := OpenAIConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "", cfg.EmbeddingHost)
	assert.Equal(t, "", cfg.ChatHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "gpt-4.1", cfg.ChatModel)
	assert.Equal(t, 1536, cfg.Dimension)
	assert.Equal(t, 2000, cfg.MaxChars)
}

func TestLocalConfig(t *testing.T) {
	cfg := LocalConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
	assert.Equal(t, "none", cfg.Token)
	assert.Equal(t, 1536, cfg.Dimension)
}

func TestNewConfig(t *testing.T) {
	t.Run("openai mode with no options", func(t *testing.T) {
		cfg := NewConfig(ModeOpenAI)

		assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4.1", cfg.ChatModel)
	})

	t.Run("local mode with no options", func(t *testing.T) {
		cfg := NewConfig(ModeLocal)

		assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(ModeLocal, WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://custom:8080/v1", cfg.ChatHost)
	})

	t.Run("with separate hosts", func(t *testing.T) {
		cfg := NewConfig(ModeLocal,
			WithEmbeddingHost("http://embed:8080/v1"),
			WithChatHost("http://chat:9090/v1"),
		)

		assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9090/v1", cfg.ChatHost)
	})

	t.Run("with custom models", func(t *testing.T) {
		cfg := NewConfig(ModeOpenAI,
			WithEmbeddingModel("text-embedding-3-large"),
			WithChatModel("gpt-4o-mini"),
		)

		assert.Equal(t, "text-embedding-3-large", cfg.EmbeddingModel)
		assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	})

	t.Run("with custom dimension and caps", func(t *testing.T) {
		cfg := NewConfig(ModeOpenAI, WithDimension(768), WithMaxChars(500))

		assert.Equal(t, 768, cfg.Dimension)
		assert.Equal(t, 500, cfg.MaxChars)
	})

	t.Run("with token", func(t *testing.T) {
		cfg := NewConfig(ModeOpenAI, WithToken("sk-test"))

		assert.Equal(t, "sk-test", cfg.Token)
	})
}

func TestConfigNormalize(t *testing.T) {
	t.Run("appends v1 suffix", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://host:8080", ChatHost: "http://host:8080/"}
		cfg.Normalize()

		assert.Equal(t, "http://host:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://host:8080/v1", cfg.ChatHost)
	})

	t.Run("leaves v1 suffix alone", func(t *testing.T) {
		cfg := &Config{EmbeddingHost: "http://host:8080/v1"}
		cfg.Normalize()

		assert.Equal(t, "http://host:8080/v1", cfg.EmbeddingHost)
	})

	t.Run("leaves empty hosts alone", func(t *testing.T) {
		cfg := &Config{}
		cfg.Normalize()

		assert.Equal(t, "", cfg.EmbeddingHost)
		assert.Equal(t, "", cfg.ChatHost)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid defaults", func(t *testing.T) {
		require.NoError(t, OpenAIConfig().Validate())
		require.NoError(t, LocalConfig().Validate())
	})

	t.Run("missing embedding model", func(t *testing.T) {
		cfg := OpenAIConfig()
		cfg.EmbeddingModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing chat model", func(t *testing.T) {
		cfg := OpenAIConfig()
		cfg.ChatModel = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		cfg := OpenAIConfig()
		cfg.Dimension = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive max chars", func(t *testing.T) {
		cfg := OpenAIConfig()
		cfg.MaxChars = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestParseMode(t *testing.T) {
	t.Run("known modes", func(t *testing.T) {
		m, err := ParseMode("openai")
		require.NoError(t, err)
		assert.Equal(t, ModeOpenAI, m)

		m, err = ParseMode("  Local ")
		require.NoError(t, err)
		assert.Equal(t, ModeLocal, m)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := ParseMode("azure")
		assert.ErrorIs(t, err, ErrUnknownMode)
	})
}
