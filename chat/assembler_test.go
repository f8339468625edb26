// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/ai/mock"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/search"
	"github.com/poiesic/cadsentinel/storage"
	badgerstore "github.com/poiesic/cadsentinel/storage/badger"
)

type fixture struct {
	assembler *Assembler
	repos     *badgerstore.Repositories
	provider  *mock.MockProvider
	version   *core.DocumentVersion
	docHash   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return vec8(1, 0, 0), nil
	}

	searcher, err := search.NewSearcher(repos.Chunks, repos.Entities, repos.Artifacts, ai.Static(provider))
	require.NoError(t, err)

	assembler, err := NewAssembler(repos.Versions, searcher, ai.Static(provider))
	require.NoError(t, err)

	docHash := "doc-hash-chat"
	_, version, _, err := repos.Versions.ResolveVersion(context.Background(), docHash, "version-hash-chat", "bracket.dwg")
	require.NoError(t, err)

	return &fixture{
		assembler: assembler,
		repos:     repos,
		provider:  provider,
		version:   version,
		docHash:   docHash,
	}
}

// vec8 pads the given components to the mock embedder's width.
func vec8(vals ...float32) []float32 {
	v := make([]float32, mock.MockDimension)
	copy(v, vals)
	return v
}

func (f *fixture) addChunk(t *testing.T, sourceType core.SourceType, refId core.ID, content string, vector []float32) *core.EmbeddingChunk {
	t.Helper()
	chunks, err := f.repos.Chunks.AddChunks(context.Background(), &core.EmbeddingChunk{
		VersionId:   f.version.Id,
		SourceType:  sourceType,
		SourceRefId: refId,
		Content:     content,
		Vector:      vector,
		ModelName:   "mock-embedder",
	})
	require.NoError(t, err)
	return chunks[0]
}

func TestAskValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("empty question", func(t *testing.T) {
		_, err := f.assembler.Ask(ctx, Request{VersionId: f.version.Id})
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	})

	t.Run("no version reference", func(t *testing.T) {
		_, err := f.assembler.Ask(ctx, Request{Question: "what is the bore diameter?"})
		assert.ErrorIs(t, err, ErrVersionReferenceRequired)
	})

	t.Run("unknown version", func(t *testing.T) {
		_, err := f.assembler.Ask(ctx, Request{Question: "what is the bore diameter?", VersionId: 99999})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unknown document hash", func(t *testing.T) {
		_, err := f.assembler.Ask(ctx, Request{Question: "what is the bore diameter?", DocumentHash: "no-such-hash"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestAskFallbackWithoutContext(t *testing.T) {
	f := newFixture(t)

	resp, err := f.assembler.Ask(context.Background(), Request{
		Question:  "what material is specified?",
		VersionId: f.version.Id,
	})
	require.NoError(t, err)

	assert.Equal(t, FallbackReply, resp.Reply)
	assert.Empty(t, resp.Contexts)
	assert.Equal(t, f.version.Id, resp.VersionId)
	assert.Equal(t, f.docHash, resp.DocumentHash)
	assert.Equal(t, fmt.Sprintf("/documents/%d", uint64(f.version.Id)), resp.DeepLink)
	assert.Equal(t, 0, f.provider.GetMockAnswerer().CallCount(),
		"answering model must not be consulted without context")
}

func TestAskAnswersFromRetrievedContext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	value := 1.75
	dims, err := f.repos.Entities.AddDimensions(ctx, &core.Dimension{
		VersionId:   f.version.Id,
		EntityIndex: 4,
		DimType:     "linear",
		Text:        "1.750 PROD DIA",
		Value:       &value,
		Units:       "in",
	})
	require.NoError(t, err)

	summary := f.addChunk(t, core.SourceTypeSummary, 0, "Hydraulic cylinder rod end, machined from 4140 steel.", vec8(1, 0, 0))
	note := f.addChunk(t, core.SourceTypeNote, 0, "BREAK ALL SHARP EDGES .015 MAX", vec8(0.9, 0.1, 0))
	dim := f.addChunk(t, core.SourceTypeDimension, dims[0].Id, "1.750 PROD DIA = 1.75 in", vec8(0.8, 0.2, 0))

	var gotSystem, gotUser string
	f.provider.GetMockAnswerer().CompleteFunc = func(_ context.Context, systemPrompt, userContent string) (string, error) {
		gotSystem = systemPrompt
		gotUser = userContent
		return "The rod diameter is 1.750 in.", nil
	}

	resp, err := f.assembler.Ask(ctx, Request{
		Question:  "what is the rod diameter?",
		VersionId: f.version.Id,
	})
	require.NoError(t, err)

	assert.Equal(t, "The rod diameter is 1.750 in.", resp.Reply)
	require.Len(t, resp.Contexts, 3)

	// Contexts are grouped summary, note, dimension.
	assert.Equal(t, summary.Id, resp.Contexts[0].Chunk.Id)
	assert.Equal(t, note.Id, resp.Contexts[1].Chunk.Id)
	assert.Equal(t, dim.Id, resp.Contexts[2].Chunk.Id)
	assert.Equal(t, "dimension", resp.Contexts[2].Detail["kind"])

	assert.Contains(t, gotSystem, "expert mechanical design and manufacturing engineer")
	assert.Contains(t, gotUser, "what is the rod diameter?")
	assert.Contains(t, gotUser, "=== STRUCTURED / SUMMARY CONTEXT ===")
	assert.Contains(t, gotUser, "=== NOTES / ANNOTATIONS ===")
	assert.Contains(t, gotUser, "=== DIMENSIONS ===")
	assert.Contains(t, gotUser, "1.750 PROD DIA = 1.75")
	assert.Contains(t, gotUser, "BREAK ALL SHARP EDGES")
}

func TestAskLimitsSkipClasses(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addChunk(t, core.SourceTypeSummary, 0, "summary content", vec8(1, 0, 0))
	noteA := f.addChunk(t, core.SourceTypeNote, 0, "note one", vec8(0.9, 0.1, 0))
	f.addChunk(t, core.SourceTypeNote, 0, "note two", vec8(0, 1, 0))

	resp, err := f.assembler.Ask(ctx, Request{
		Question:  "any notes?",
		VersionId: f.version.Id,
		Limits:    &Limits{Notes: 1},
	})
	require.NoError(t, err)

	require.Len(t, resp.Contexts, 1)
	assert.Equal(t, noteA.Id, resp.Contexts[0].Chunk.Id)
	assert.Equal(t, core.SourceTypeNote, resp.Contexts[0].Chunk.SourceType)
}

func TestAskZeroLimitsFallBack(t *testing.T) {
	f := newFixture(t)
	f.addChunk(t, core.SourceTypeSummary, 0, "summary content", vec8(1, 0, 0))

	resp, err := f.assembler.Ask(context.Background(), Request{
		Question:  "anything?",
		VersionId: f.version.Id,
		Limits:    &Limits{},
	})
	require.NoError(t, err)

	assert.Equal(t, FallbackReply, resp.Reply)
	assert.Empty(t, resp.Contexts)
	assert.Equal(t, 0, f.provider.GetMockAnswerer().CallCount())
}

func TestAskResolvesActiveVersionByHash(t *testing.T) {
	f := newFixture(t)

	resp, err := f.assembler.Ask(context.Background(), Request{
		Question:     "what is on this drawing?",
		DocumentHash: f.docHash,
	})
	require.NoError(t, err)

	assert.Equal(t, f.version.Id, resp.VersionId)
	assert.Equal(t, f.docHash, resp.DocumentHash)
}

func TestAskAnswererFailure(t *testing.T) {
	f := newFixture(t)
	f.addChunk(t, core.SourceTypeSummary, 0, "summary content", vec8(1, 0, 0))

	f.provider.GetMockAnswerer().CompleteFunc = func(_ context.Context, _, _ string) (string, error) {
		return "", fmt.Errorf("%w: model unavailable", ai.ErrUpstreamProvider)
	}

	_, err := f.assembler.Ask(context.Background(), Request{
		Question:  "what is on this drawing?",
		VersionId: f.version.Id,
	})
	assert.ErrorIs(t, err, ai.ErrUpstreamProvider)
}

func TestAskEmbeddingFailure(t *testing.T) {
	f := newFixture(t)

	boom := errors.New("embedding backend down")
	f.provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, boom
	}

	_, err := f.assembler.Ask(context.Background(), Request{
		Question:  "what is on this drawing?",
		VersionId: f.version.Id,
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, f.provider.GetMockAnswerer().CallCount())
}
