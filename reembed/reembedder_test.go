package reembed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/ai/mock"
	"github.com/poiesic/cadsentinel/core"
	badgerstore "github.com/poiesic/cadsentinel/storage/badger"
)

func setupChunks(t *testing.T, count int) (*badgerstore.Repositories, []*core.EmbeddingChunk) {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	ctx := context.Background()
	_, version, _, err := repos.Versions.ResolveVersion(ctx, "doc-hash", "version-hash", "plate.dwg")
	require.NoError(t, err)

	chunks := make([]*core.EmbeddingChunk, count)
	for i := 0; i < count; i++ {
		chunks[i] = &core.EmbeddingChunk{
			VersionId:  version.Id,
			SourceType: core.SourceTypeNote,
			Content:    fmt.Sprintf("note content %d", i),
			Vector:     make([]float32, mock.MockDimension),
			ModelName:  "old-model",
		}
	}
	added, err := repos.Chunks.AddChunks(ctx, chunks...)
	require.NoError(t, err)
	require.Len(t, added, count)

	return repos, added
}

func testConfig() *Config {
	return &Config{
		BatchSize:      3,
		Concurrency:    2,
		ReportInterval: 3,
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
	}
}

func TestReembedderRun(t *testing.T) {
	repos, _ := setupChunks(t, 10)
	ctx := context.Background()

	provider := mock.NewMockProvider()

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(provider), testConfig(), &buf)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(ctx))

	updated, err := repos.Chunks.AllChunks(ctx)
	require.NoError(t, err)
	require.Len(t, updated, 10)

	for _, chunk := range updated {
		assert.Equal(t, "mock-embedder", chunk.ModelName)
		assert.Equal(t, mock.DeterministicVector(chunk.Content, mock.MockDimension), chunk.Vector,
			"chunk %d should carry its re-embedded vector", uint64(chunk.Id))
	}

	assert.Contains(t, buf.String(), "Reembedding complete. Processed 10 chunks")
}

func TestReembedderRunEmpty(t *testing.T) {
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(mock.NewMockProvider()), testConfig(), &buf)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Contains(t, buf.String(), "No chunks found")
}

func TestReembedderEmbeddingFailure(t *testing.T) {
	repos, _ := setupChunks(t, 5)

	boom := errors.New("embedding backend down")
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, _ []string) ([][]float32, error) {
		return nil, boom
	}

	config := testConfig()
	config.MaxRetries = 2
	config.RetryDelay = time.Millisecond

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(provider), config, &buf)
	require.NoError(t, err)

	err = reembedder.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// Failed batches leave the stored model name untouched.
	chunks, err := repos.Chunks.AllChunks(context.Background())
	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.Equal(t, "old-model", chunk.ModelName)
	}
}

func TestReembedderRetriesTransientFailures(t *testing.T) {
	repos, _ := setupChunks(t, 3)

	var attempts int
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient embedding error")
		}
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i] = mock.DeterministicVector(text, mock.MockDimension)
		}
		return out, nil
	}

	config := testConfig()
	config.BatchSize = 10 // one batch, so attempts counts the retries
	config.RetryDelay = time.Millisecond

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(provider), config, &buf)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))
	assert.Equal(t, 3, attempts)

	chunks, err := repos.Chunks.AllChunks(context.Background())
	require.NoError(t, err)
	for _, chunk := range chunks {
		assert.Equal(t, "mock-embedder", chunk.ModelName)
	}
}

func TestReembedderCountMismatch(t *testing.T) {
	repos, _ := setupChunks(t, 4)

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		return [][]float32{make([]float32, mock.MockDimension)}, nil
	}

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(provider), testConfig(), &buf)
	require.NoError(t, err)

	err = reembedder.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding count mismatch")
}

func TestReembedderProgressOutput(t *testing.T) {
	repos, _ := setupChunks(t, 7)

	config := testConfig()
	config.Concurrency = 1

	var buf bytes.Buffer
	reembedder, err := NewReembedder(repos.Chunks, ai.Static(mock.NewMockProvider()), config, &buf)
	require.NoError(t, err)

	require.NoError(t, reembedder.Run(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Starting reembedding of 7 chunks (batch size: 3)")
	assert.True(t, strings.Contains(out, "Progress: 7/7 (100.0%)"), "final progress line expected, got %q", out)
}
