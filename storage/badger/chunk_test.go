package badger

import (
	"context"
	"testing"

	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

func seedChunks(t *testing.T, repos *Repositories) (core.ID, core.ID) {
	t.Helper()
	ctx := context.Background()

	_, v1, _, err := repos.Versions.ResolveVersion(ctx, "dochash-a", "verhash-1", "a.dwg")
	if err != nil {
		t.Fatalf("Failed to resolve version: %v", err)
	}
	_, v2, _, err := repos.Versions.ResolveVersion(ctx, "dochash-b", "verhash-2", "b.dwg")
	if err != nil {
		t.Fatalf("Failed to resolve version: %v", err)
	}

	_, err = repos.Chunks.AddChunks(ctx,
		&core.EmbeddingChunk{VersionId: v1.Id, SourceType: core.SourceTypeSummary, Content: "hydraulic cylinder assembly", Vector: []float32{1, 0, 0}},
		&core.EmbeddingChunk{VersionId: v1.Id, SourceType: core.SourceTypeDimension, Content: "bore = 3.25 in", Vector: []float32{0.9, 0.1, 0}},
		&core.EmbeddingChunk{VersionId: v1.Id, SourceType: core.SourceTypeNote, Content: "deburr all edges", Vector: []float32{0, 1, 0}},
		&core.EmbeddingChunk{VersionId: v2.Id, SourceType: core.SourceTypeSummary, Content: "mounting bracket", Vector: []float32{1, 0, 0}},
	)
	if err != nil {
		t.Fatalf("Failed to add chunks: %v", err)
	}
	return v1.Id, v2.Id
}

func TestFindSimilarOrderingAndLimit(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	seedChunks(t, repos)
	ctx := context.Background()

	results, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0, 0}, storage.ChunkFilter{}, storage.NoMinScore, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatal("Expected results sorted by score descending")
		}
	}
	if results[0].Score < 0.999 {
		t.Fatalf("Expected top score ~1.0, got %f", results[0].Score)
	}

	limited, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0, 0}, storage.ChunkFilter{}, storage.NoMinScore, 2)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Expected 2 results with limit, got %d", len(limited))
	}
}

func TestFindSimilarFilters(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	v1, _ := seedChunks(t, repos)
	ctx := context.Background()

	byVersion, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0, 0}, storage.ChunkFilter{VersionId: v1}, storage.NoMinScore, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(byVersion) != 3 {
		t.Fatalf("Expected 3 results for version filter, got %d", len(byVersion))
	}
	for _, r := range byVersion {
		if r.Chunk.VersionId != v1 {
			t.Fatal("Version filter leaked a foreign chunk")
		}
	}

	byType, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0, 0},
		storage.ChunkFilter{VersionId: v1, SourceTypes: []core.SourceType{core.SourceTypeNote}},
		storage.NoMinScore, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(byType) != 1 {
		t.Fatalf("Expected 1 note result, got %d", len(byType))
	}
	if byType[0].Chunk.SourceType != core.SourceTypeNote {
		t.Fatal("Source type filter leaked a foreign chunk")
	}
}

func TestFindSimilarThreshold(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	v1, _ := seedChunks(t, repos)
	ctx := context.Background()

	// The orthogonal note chunk scores 0 and must be cut.
	results, err := repos.Chunks.FindSimilar(ctx, []float32{1, 0, 0}, storage.ChunkFilter{VersionId: v1}, 0.5, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results above threshold, got %d", len(results))
	}
	for _, r := range results {
		if r.Score < 0.5 {
			t.Fatalf("Result below threshold: %f", r.Score)
		}
	}
}

func TestAllChunksStableOrder(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	seedChunks(t, repos)
	ctx := context.Background()

	all, err := repos.Chunks.AllChunks(ctx)
	if err != nil {
		t.Fatalf("AllChunks failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("Expected 4 chunks, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Id <= all[i-1].Id {
			t.Fatal("Expected chunks in ascending ID order")
		}
	}
}

func TestUpdateChunks(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	v1, _ := seedChunks(t, repos)
	ctx := context.Background()

	chunks, err := repos.Chunks.ChunksForVersion(ctx, v1)
	if err != nil {
		t.Fatalf("ChunksForVersion failed: %v", err)
	}

	chunks[0].Vector = []float32{0, 0, 1}
	chunks[0].ModelName = "replacement-model"
	if _, err := repos.Chunks.UpdateChunks(ctx, chunks[0]); err != nil {
		t.Fatalf("UpdateChunks failed: %v", err)
	}

	reread, err := repos.Chunks.ChunksForVersion(ctx, v1)
	if err != nil {
		t.Fatalf("ChunksForVersion failed: %v", err)
	}
	found := false
	for _, c := range reread {
		if c.Id == chunks[0].Id {
			found = true
			if c.ModelName != "replacement-model" {
				t.Fatalf("Expected updated model name, got %q", c.ModelName)
			}
			if c.Vector[2] != 1 {
				t.Fatal("Expected updated vector")
			}
		}
	}
	if !found {
		t.Fatal("Updated chunk disappeared")
	}
}
