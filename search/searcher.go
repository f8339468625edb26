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


package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

const (
	// DefaultTopK is the result count used when a query asks for none.
	DefaultTopK = 10

	// DefaultAlpha is the hybrid vector weight: fused = alpha*vector +
	// (1-alpha)*keyword. Negative alphas select this default.
	DefaultAlpha float32 = 0.7

	// hybridFetchFactor over-fetches vector candidates before keyword
	// fusion, so chunks with weak vector scores but strong keyword
	// overlap can still surface in the final TopK.
	hybridFetchFactor = 3
)

// Filters restricts retrieval to a version and/or chunk source types.
type Filters struct {
	VersionId   core.ID
	SourceTypes []core.SourceType
}

// Query describes one retrieval request. A nil Threshold disables
// score filtering; TopK <= 0 selects DefaultTopK.
type Query struct {
	Text      string
	Filters   Filters
	TopK      int
	Threshold *float32
}

// Searcher serves vector and hybrid retrieval over embedding chunks.
// It is read-only and safe to use concurrently with unrelated writes.
type Searcher struct {
	chunks    storage.ChunkRepository
	entities  storage.EntityRepository
	artifacts storage.FileArtifactRepository
	providers ai.ProviderSource
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher. The artifacts repository is
// optional; without it results carry no thumbnails.
func NewSearcher(
	chunks storage.ChunkRepository,
	entities storage.EntityRepository,
	artifacts storage.FileArtifactRepository,
	providers ai.ProviderSource,
	opts ...Option,
) (*Searcher, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if entities == nil {
		return nil, ErrEntityRepositoryRequired
	}
	if providers == nil {
		return nil, ErrProviderSourceRequired
	}

	s := &Searcher{
		chunks:    chunks,
		entities:  entities,
		artifacts: artifacts,
		providers: providers,
		logger:    slog.Default().With("component", "searcher"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Vector runs pure semantic retrieval: embed the query, scan chunks
// under the filters, score by cosine similarity, cut below threshold,
// return the TopK best, enriched.
func (s *Searcher) Vector(ctx context.Context, q Query) ([]*core.SearchResult, error) {
	return s.VectorWithMonitor(ctx, q, nil)
}

// VectorWithMonitor is Vector with per-stage monitor callbacks.
func (s *Searcher) VectorWithMonitor(ctx context.Context, q Query, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(q.Text)

	vector, topK, err := s.embedQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(vector))

	minScore := storage.NoMinScore
	if q.Threshold != nil {
		minScore = *q.Threshold
	}

	scored, err := s.chunks.FindSimilar(ctx, vector, chunkFilter(q.Filters), minScore, topK)
	if err != nil {
		s.logger.Error("vector scan failed", "err", err)
		return nil, err
	}
	monitor.AfterVectorScan(chunkIDs(scored))

	results := s.enrichAll(ctx, scored)
	monitor.Finish(results)
	return results, nil
}

// Hybrid runs fused retrieval: vector candidates over-fetched beyond
// TopK, each re-scored as alpha*vector + (1-alpha)*trigram keyword
// similarity against the query text, thresholded on the fused score.
func (s *Searcher) Hybrid(ctx context.Context, q Query, alpha float32) ([]*core.SearchResult, error) {
	return s.HybridWithMonitor(ctx, q, alpha, nil)
}

// HybridWithMonitor is Hybrid with per-stage monitor callbacks.
func (s *Searcher) HybridWithMonitor(ctx context.Context, q Query, alpha float32, monitor SearchMonitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(q.Text)

	if alpha < 0 {
		alpha = DefaultAlpha
	}
	if alpha > 1 {
		alpha = 1
	}

	vector, topK, err := s.embedQuery(ctx, q)
	if err != nil {
		return nil, err
	}
	monitor.AfterQueryEmbedding(len(vector))

	candidates, err := s.chunks.FindSimilar(ctx, vector, chunkFilter(q.Filters), storage.NoMinScore, topK*hybridFetchFactor)
	if err != nil {
		s.logger.Error("vector scan failed", "err", err)
		return nil, err
	}
	monitor.AfterVectorScan(chunkIDs(candidates))

	fused := make([]*core.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		keyword := trigramSimilarity(c.Chunk.Content, q.Text)
		score := alpha*c.Score + (1-alpha)*keyword
		if q.Threshold != nil && score < *q.Threshold {
			continue
		}
		fused = append(fused, &core.ScoredChunk{Chunk: c.Chunk, Score: score})
	}

	sort.Slice(fused, func(i, j int) bool {
		return fused[i].Score > fused[j].Score
	})
	if len(fused) > topK {
		fused = fused[:topK]
	}
	monitor.AfterFusion(chunkIDs(fused))

	results := s.enrichAll(ctx, fused)
	monitor.Finish(results)
	return results, nil
}

// Retrieve runs vector retrieval with an already-embedded query
// vector, skipping query embedding. Callers that embed a question once
// and fan it out over several filters use this instead of Vector.
func (s *Searcher) Retrieve(ctx context.Context, vector []float32, f Filters, minScore float32, topK int) ([]*core.SearchResult, error) {
	if len(vector) == 0 {
		return nil, ErrEmptyQuery
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	scored, err := s.chunks.FindSimilar(ctx, vector, chunkFilter(f), minScore, topK)
	if err != nil {
		s.logger.Error("vector scan failed", "err", err)
		return nil, err
	}
	return s.enrichAll(ctx, scored), nil
}

// embedQuery validates the query and embeds its text.
func (s *Searcher) embedQuery(ctx context.Context, q Query) ([]float32, int, error) {
	if q.Text == "" {
		return nil, 0, ErrEmptyQuery
	}
	provider := s.providers.Provider()
	if provider == nil {
		return nil, 0, ErrNoProvider
	}

	topK := q.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}

	vector, err := provider.Embedder().EmbedText(ctx, q.Text)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, 0, err
	}
	return vector, topK, nil
}

func chunkFilter(f Filters) storage.ChunkFilter {
	return storage.ChunkFilter{
		VersionId:   f.VersionId,
		SourceTypes: f.SourceTypes,
	}
}

func chunkIDs(scored []*core.ScoredChunk) []uint64 {
	ids := make([]uint64, len(scored))
	for i, c := range scored {
		ids[i] = uint64(c.Chunk.Id)
	}
	return ids
}

// enrichAll resolves entity detail and thumbnails for every hit.
func (s *Searcher) enrichAll(ctx context.Context, scored []*core.ScoredChunk) []*core.SearchResult {
	results := make([]*core.SearchResult, 0, len(scored))
	for _, c := range scored {
		results = append(results, &core.SearchResult{
			Chunk:     c.Chunk,
			Score:     c.Score,
			Detail:    s.entityDetail(ctx, c.Chunk),
			Thumbnail: s.thumbnail(ctx, c.Chunk.VersionId),
		})
	}
	return results
}

// entityDetail resolves the owning Dimension or Note of a chunk into a
// payload. Summary chunks and dangling references yield nil; a missing
// entity is not an error.
func (s *Searcher) entityDetail(ctx context.Context, chunk *core.EmbeddingChunk) core.Payload {
	if chunk.SourceRefId == 0 {
		return nil
	}

	switch chunk.SourceType {
	case core.SourceTypeDimension:
		dim, err := s.entities.GetDimension(ctx, chunk.SourceRefId)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("failed to resolve dimension detail", "dimensionId", chunk.SourceRefId, "err", err)
			}
			return nil
		}
		detail := core.Payload{
			"kind":         "dimension",
			"dimension_id": uint64(dim.Id),
			"json_index":   dim.EntityIndex,
			"dim_type":     dim.DimType,
			"layer":        dim.Layer,
			"handle":       dim.Handle,
			"owner_handle": dim.OwnerHandle,
			"dim_text":     dim.Text,
			"units":        dim.Units,
			"geometry":     map[string]any(dim.Geometry),
		}
		if dim.Value != nil {
			detail["dim_value"] = *dim.Value
		}
		return detail

	case core.SourceTypeNote:
		note, err := s.entities.GetNote(ctx, chunk.SourceRefId)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("failed to resolve note detail", "noteId", chunk.SourceRefId, "err", err)
			}
			return nil
		}
		return core.Payload{
			"kind":       "note",
			"note_id":    uint64(note.Id),
			"json_index": note.EntityIndex,
			"note_type":  note.NoteType,
			"layer":      note.Layer,
			"handle":     note.Handle,
			"geometry":   map[string]any(note.Geometry),
		}
	}
	return nil
}

// thumbnail resolves the version's thumbnail path, empty when absent.
func (s *Searcher) thumbnail(ctx context.Context, versionId core.ID) string {
	if s.artifacts == nil {
		return ""
	}
	thumb, err := s.artifacts.ThumbnailForVersion(ctx, versionId)
	if err != nil {
		return ""
	}
	return thumb.Path
}
