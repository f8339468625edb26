package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder using OpenAI-compatible embedding APIs.
// Every returned vector is conformed to the configured dimension.
type Embedder struct {
	embedder  embeddings.Embedder
	modelName string
	dimension int
	maxChars  int
	logger    *slog.Logger
}

// embeddingClientOptions builds the client options for the embedding
// endpoint. An empty host falls through to the hosted OpenAI default;
// an empty token falls through to the OPENAI_API_KEY environment
// variable.
func embeddingClientOptions(config *ai.Config) []openai.Option {
	opts := []openai.Option{
		openai.WithEmbeddingModel(config.EmbeddingModel),
	}
	if config.EmbeddingHost != "" {
		opts = append(opts, openai.WithBaseURL(config.EmbeddingHost))
	}
	if config.Token != "" {
		opts = append(opts, openai.WithToken(config.Token))
	}
	return opts
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(embeddingClientOptions(config)...)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder:  embedder,
		modelName: config.EmbeddingModel,
		dimension: config.Dimension,
		maxChars:  config.MaxChars,
		logger:    slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates a new embedder using the provided configuration.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a
// batch. The result has one vector per input, in input order, each
// exactly the configured dimension wide.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings", "count", len(texts))

	prepared := ai.PrepareTexts(texts, e.maxChars)

	vectors, err := e.embedder.EmbedDocuments(ctx, prepared)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, fmt.Errorf("%w: %w", ai.ErrUpstreamProvider, err)
	}

	if len(vectors) != len(texts) {
		e.logger.Error("embedding count mismatch", "requested", len(texts), "returned", len(vectors))
		return nil, fmt.Errorf("%w: requested %d embeddings, got %d",
			ai.ErrUpstreamProvider, len(texts), len(vectors))
	}

	return ai.ConformVectors(vectors, e.dimension), nil
}

// ModelName reports the embedding model identity recorded on chunks.
func (e *Embedder) ModelName() string {
	return e.modelName
}
