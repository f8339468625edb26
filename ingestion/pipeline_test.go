package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/ai/mock"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
	"github.com/poiesic/cadsentinel/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T) (*Pipeline, *badger.Repositories, *mock.MockProvider) {
	t.Helper()

	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	// The example runs expect a summary without a short description.
	provider.GetMockSummarizer().SummarizeFunc = func(ctx context.Context, req ai.SummaryRequest) (*ai.SummaryOutput, error) {
		return &ai.SummaryOutput{
			Structured: core.Payload{"part_type": "single_part"},
			LongForm:   "A machined bracket with three critical dimensions.",
			ModelName:  "mock-summarizer",
		}, nil
	}

	pipeline := NewPipeline(
		repos.Versions, repos.Entities, repos.Summaries, repos.Chunks, repos.Artifacts,
		ai.Static(provider),
	)
	return pipeline, repos, provider
}

func exampleEntities() []core.ParsedEntity {
	return []core.ParsedEntity{
		{Type: "DIMENSION_LINEAR", Text: "3.25", Value: floatPtr(3.25), Units: "in", Index: 0},
		{Type: "DIMENSION_LINEAR", Text: "1.50", Value: floatPtr(1.5), Units: "in", Index: 1},
		{Type: "DIMENSION_DIAMETER", Text: "⌀0.78", Value: floatPtr(0.78), Units: "in", Index: 2},
		{Type: "MTEXT", Text: "DEBURR ALL EDGES", Index: 3},
		{Type: "TEXT", Text: "TOLERANCE ±0.005", Index: 4},
		{Type: "LINE", Index: 5},
	}
}

func TestPipelineRun(t *testing.T) {
	pipeline, repos, _ := newTestPipeline(t)
	ctx := context.Background()

	result, err := pipeline.Run(ctx, RunInput{
		DocumentHash:   "dochash-a",
		VersionHash:    "verhash-1",
		SourceFilename: "bracket.dwg",
		Entities:       exampleEntities(),
	})
	require.NoError(t, err)

	assert.False(t, result.Reingest)
	assert.Equal(t, 3, result.Dimensions)
	assert.Equal(t, 2, result.Notes)
	// long form + 3 dimensions + 2 notes, no short description
	assert.Equal(t, 6, result.Embeddings)

	chunks, err := repos.Chunks.ChunksForVersion(ctx, result.VersionId)
	require.NoError(t, err)
	require.Len(t, chunks, 6)

	counts := map[core.SourceType]int{}
	for _, c := range chunks {
		counts[c.SourceType]++
		assert.NotEmpty(t, c.Content)
		assert.NotEmpty(t, c.Vector)
		assert.Equal(t, "mock-embedder", c.ModelName)
	}
	assert.Equal(t, 1, counts[core.SourceTypeSummary])
	assert.Equal(t, 0, counts[core.SourceTypeSummaryShort])
	assert.Equal(t, 3, counts[core.SourceTypeDimension])
	assert.Equal(t, 2, counts[core.SourceTypeNote])

	summary, err := repos.Summaries.SummaryForVersion(ctx, result.VersionId)
	require.NoError(t, err)
	assert.Equal(t, "mock-summarizer", summary.ModelName)
	assert.NotEmpty(t, summary.LongForm)

	// Dimension chunks reference their owning rows.
	for _, c := range chunks {
		if c.SourceType == core.SourceTypeDimension {
			_, err := repos.Entities.GetDimension(ctx, c.SourceRefId)
			assert.NoError(t, err)
		}
	}
}

func TestPipelineReingestIdempotent(t *testing.T) {
	pipeline, repos, _ := newTestPipeline(t)
	ctx := context.Background()

	input := RunInput{
		DocumentHash:   "dochash-a",
		VersionHash:    "verhash-1",
		SourceFilename: "bracket.dwg",
		Entities:       exampleEntities(),
	}

	first, err := pipeline.Run(ctx, input)
	require.NoError(t, err)

	second, err := pipeline.Run(ctx, input)
	require.NoError(t, err)

	assert.True(t, second.Reingest)
	assert.Equal(t, first.VersionId, second.VersionId)
	assert.Equal(t, first.DocumentId, second.DocumentId)
	assert.Equal(t, first.Dimensions, second.Dimensions)
	assert.Equal(t, first.Notes, second.Notes)
	assert.Equal(t, first.Embeddings, second.Embeddings)

	// No duplicated derived rows.
	chunks, err := repos.Chunks.ChunksForVersion(ctx, second.VersionId)
	require.NoError(t, err)
	assert.Len(t, chunks, 6)

	dims, err := repos.Entities.DimensionsForVersion(ctx, second.VersionId)
	require.NoError(t, err)
	assert.Len(t, dims, 3)

	versions, err := repos.Versions.VersionsOfDocument(ctx, second.DocumentId)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestPipelineEmbeddingMismatchAborts(t *testing.T) {
	pipeline, repos, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockEmbedder().EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil // always one vector, whatever was asked
	}

	_, err := pipeline.Run(ctx, RunInput{
		DocumentHash:   "dochash-a",
		VersionHash:    "verhash-1",
		SourceFilename: "bracket.dwg",
		Entities:       exampleEntities(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddingCountMismatch)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageEmbed, stageErr.Stage)

	// The whole run rolled back, including identity resolution.
	_, err = repos.Versions.GetDocumentByHash(ctx, "dochash-a")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPipelineSummaryFailureAborts(t *testing.T) {
	pipeline, repos, provider := newTestPipeline(t)
	ctx := context.Background()

	provider.GetMockSummarizer().SummarizeFunc = func(ctx context.Context, req ai.SummaryRequest) (*ai.SummaryOutput, error) {
		return nil, errors.New("model unavailable")
	}

	_, err := pipeline.Run(ctx, RunInput{
		DocumentHash:   "dochash-a",
		VersionHash:    "verhash-1",
		SourceFilename: "bracket.dwg",
		Entities:       exampleEntities(),
	})
	require.Error(t, err)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageSummary, stageErr.Stage)

	_, err = repos.Versions.GetDocumentByHash(ctx, "dochash-a")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPipelineRegistersArtifacts(t *testing.T) {
	pipeline, repos, _ := newTestPipeline(t)
	ctx := context.Background()

	result, err := pipeline.Run(ctx, RunInput{
		DocumentHash:   "dochash-a",
		VersionHash:    "verhash-1",
		SourceFilename: "bracket.dwg",
		Entities:       exampleEntities(),
		Artifacts: []ArtifactInput{
			{FileType: "dwg", Path: "/data/bracket.dwg", SizeBytes: 120_000, MimeType: "application/acad"},
			{FileType: "png_thumb", Path: "/data/bracket_thumb.png", SizeBytes: 9_000, MimeType: "image/png"},
			{FileType: "pdf", Path: ""}, // missing file, skipped
		},
	})
	require.NoError(t, err)

	artifacts, err := repos.Artifacts.ArtifactsForVersion(ctx, result.VersionId)
	require.NoError(t, err)
	assert.Len(t, artifacts, 2)

	thumb, err := repos.Artifacts.ThumbnailForVersion(ctx, result.VersionId)
	require.NoError(t, err)
	assert.Equal(t, "/data/bracket_thumb.png", thumb.Path)
}

func TestPipelineNoProvider(t *testing.T) {
	repos, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	pipeline := NewPipeline(
		repos.Versions, repos.Entities, repos.Summaries, repos.Chunks, repos.Artifacts,
		ai.Static(nil),
	)

	_, err = pipeline.Run(context.Background(), RunInput{
		DocumentHash: "dochash-a",
		VersionHash:  "verhash-1",
	})
	assert.ErrorIs(t, err, ErrNoProvider)
}
