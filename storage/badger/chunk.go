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


package badger

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
// Vector search is a linear scan over the chunk keyspace with cosine
// scoring; stored vectors are not assumed normalized (zero-padding
// breaks unit length), so the full cosine is computed per chunk.
type ChunkRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	seq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		return nil, err
	}
	return &ChunkRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChunkRepository) Close() error {
	return r.seq.Release()
}

// AddChunks assigns IDs and persists the given chunks.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.EmbeddingChunk) ([]*core.EmbeddingChunk, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.VersionId == 0 {
				return fmt.Errorf("%w: chunk without version", storage.ErrInvalidQuery)
			}
			if chunk.Id == 0 {
				id, err := nextID(r.seq)
				if err != nil {
					return err
				}
				chunk.Id = id
			}
			chunk.InsertedAt = time.Now().UTC()

			if err := tx.Set(makeChunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			indexKey := makeCompositeKey(chunkVerPrefix, chunk.VersionId, chunk.Id)
			if err := tx.Set(indexKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	return chunks, err
}

// UpdateChunks rewrites existing chunks in place.
func (r *ChunkRepository) UpdateChunks(ctx context.Context, chunks ...*core.EmbeddingChunk) ([]*core.EmbeddingChunk, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				return fmt.Errorf("%w: chunk without id", storage.ErrInvalidQuery)
			}
			if _, err := tx.Get(makeChunkKey(chunk.Id)); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Set(makeChunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}
		}
		return nil
	})
	return chunks, err
}

// ChunksForVersion lists all chunks of a version.
func (r *ChunkRepository) ChunksForVersion(ctx context.Context, versionId core.ID) ([]*core.EmbeddingChunk, error) {
	var results []*core.EmbeddingChunk
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		ids, err := memberIDs(tx, chunkVerPrefix, versionId)
		if err != nil {
			return err
		}
		for _, id := range ids {
			chunk, err := readChunk(tx, id)
			if err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	})
	return results, err
}

// AllChunks lists every chunk in stable ID order.
func (r *ChunkRepository) AllChunks(ctx context.Context) ([]*core.EmbeddingChunk, error) {
	var results []*core.EmbeddingChunk
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		return scanChunks(tx, func(chunk *core.EmbeddingChunk) {
			results = append(results, chunk)
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b *core.EmbeddingChunk) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
	return results, nil
}

// FindSimilar scans chunks passing the filter and scores them by
// cosine similarity against vector. Results below minScore are dropped
// (storage.NoMinScore disables the cut), the rest are sorted by score
// descending and truncated to limit.
func (r *ChunkRepository) FindSimilar(ctx context.Context, vector []float32, filter storage.ChunkFilter, minScore float32, limit int) ([]*core.ScoredChunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", storage.ErrInvalidQuery)
	}

	var results []*core.ScoredChunk
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		return scanChunks(tx, func(chunk *core.EmbeddingChunk) {
			if len(chunk.Vector) == 0 || !filter.Matches(chunk) {
				return
			}
			score := cosineSimilarity(vector, chunk.Vector)
			if score < minScore {
				return
			}
			results = append(results, &core.ScoredChunk{
				Chunk: chunk,
				Score: score,
			})
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.ScoredChunk) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// readChunk reads a chunk by ID. Missing keys return (nil, nil).
func readChunk(tx *badger.Txn, id core.ID) (*core.EmbeddingChunk, error) {
	item, err := tx.Get(makeChunkKey(id))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.EmbeddingChunk
	err = item.Value(func(val []byte) error {
		var err error
		chunk, err = storage.UnmarshalChunk(val)
		return err
	})
	return chunk, err
}

// scanChunks iterates every primary chunk record.
func scanChunks(tx *badger.Txn, visit func(*core.EmbeddingChunk)) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(chunkPrefix + ":")

	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var chunk *core.EmbeddingChunk
		err := iter.Item().Value(func(val []byte) error {
			var err error
			chunk, err = storage.UnmarshalChunk(val)
			return err
		})
		if err != nil {
			return err
		}
		if chunk != nil {
			visit(chunk)
		}
	}
	return nil
}

// cosineSimilarity computes dot(a,b)/(|a||b|). Stored vectors may be
// zero-padded and therefore not unit length.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float32
	for i := 0; i < minLen; i++ {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / float32(math.Sqrt(float64(normA)*float64(normB)))
}
