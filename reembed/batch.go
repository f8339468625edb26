package reembed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// BatchProcessor re-embeds batches of chunks through the currently
// selected provider.
type BatchProcessor struct {
	chunks         storage.ChunkRepository
	providers      ai.ProviderSource
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of attempts per embedding API call
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(chunks storage.ChunkRepository, providers ai.ProviderSource, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &BatchProcessor{
		chunks:         chunks,
		providers:      providers,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the batch's content with the current provider and
// writes the chunks back carrying the new vectors and model name. The
// provider is resolved per batch, so a runtime provider switch takes
// effect on the next batch of a running pass.
func (bp *BatchProcessor) Process(ctx context.Context, chunks []*core.EmbeddingChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	provider := bp.providers.Provider()
	if provider == nil {
		return ErrNoProvider
	}
	embedder := provider.Embedder()

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := bp.embedWithRetry(ctx, embedder, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	modelName := embedder.ModelName()
	for i := range chunks {
		chunks[i].Vector = embeddings[i]
		chunks[i].ModelName = modelName
	}

	_, err = bp.chunks.UpdateChunks(ctx, chunks...)
	if err != nil {
		return fmt.Errorf("failed to update chunks: %w", err)
	}

	return nil
}

// embedWithRetry calls the embedder up to maxRetries times, doubling
// the delay between attempts. Returns the last error if every attempt
// fails.
func (bp *BatchProcessor) embedWithRetry(ctx context.Context, embedder ai.Embedder, texts []string) ([][]float32, error) {
	delay := bp.retryBaseDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		embeddings, err := embedder.EmbedTexts(ctx, texts)
		if err == nil {
			if attempt > 1 {
				slog.Debug("embedding succeeded after retry", "attempt", attempt)
			}
			return embeddings, nil
		}
		if attempt == bp.maxRetries {
			return nil, err
		}

		slog.Debug("embedding failed, will retry", "attempt", attempt, "maxAttempts", bp.maxRetries, "error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
