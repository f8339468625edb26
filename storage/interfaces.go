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


package storage

import (
	"context"

	"github.com/poiesic/cadsentinel/core"
)

// NoMinScore disables similarity threshold filtering in FindSimilar.
// Cosine similarity lives in [-1, 1], so any sentinel below that range
// admits every chunk.
const NoMinScore float32 = -2

// TransactionManager provides atomic multi-operation transactions.
// Repository operations invoked inside fn join the surrounding
// transaction; the transaction commits when fn returns nil and is
// discarded otherwise.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChunkFilter restricts a chunk scan. Zero values mean no restriction.
type ChunkFilter struct {
	// VersionId limits the scan to chunks of one document version.
	VersionId core.ID

	// SourceTypes limits the scan to chunks with one of the given
	// source types. Empty admits all types.
	SourceTypes []core.SourceType
}

// Matches reports whether a chunk passes the filter.
func (f ChunkFilter) Matches(chunk *core.EmbeddingChunk) bool {
	if f.VersionId != 0 && chunk.VersionId != f.VersionId {
		return false
	}
	if len(f.SourceTypes) > 0 {
		ok := false
		for _, st := range f.SourceTypes {
			if chunk.SourceType == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// VersionRepository manages document and version identity.
type VersionRepository interface {
	TransactionManager

	// ResolveVersion resolves the (document, version) pair for an
	// ingest run: the document is looked up or created by docHash, the
	// version by versionHash. An existing version is reactivated, its
	// filename updated and all its derived children (dimensions, notes,
	// summary, chunks, file artifacts) deleted; reingest is true in
	// that case. A new version deactivates the document's other
	// versions and is inserted active.
	ResolveVersion(ctx context.Context, docHash, versionHash, filename string) (doc *core.Document, version *core.DocumentVersion, reingest bool, err error)

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByHash retrieves a document by its content hash.
	GetDocumentByHash(ctx context.Context, hash string) (*core.Document, error)

	// GetVersion retrieves a version by ID.
	GetVersion(ctx context.Context, id core.ID) (*core.DocumentVersion, error)

	// GetVersionByHash retrieves a version by its content hash.
	GetVersionByHash(ctx context.Context, hash string) (*core.DocumentVersion, error)

	// ActiveVersion retrieves the active version of a document, or
	// ErrNotFound when no version is active.
	ActiveVersion(ctx context.Context, documentId core.ID) (*core.DocumentVersion, error)

	// VersionsOfDocument lists all versions of a document in insertion
	// order.
	VersionsOfDocument(ctx context.Context, documentId core.ID) ([]*core.DocumentVersion, error)

	// Close releases resources held by the repository.
	Close() error
}

// EntityRepository stores extracted dimensions and notes.
type EntityRepository interface {
	// AddDimensions assigns IDs and persists the given dimensions.
	AddDimensions(ctx context.Context, dims ...*core.Dimension) ([]*core.Dimension, error)

	// AddNotes assigns IDs and persists the given notes.
	AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error)

	// GetDimension retrieves a dimension by ID.
	GetDimension(ctx context.Context, id core.ID) (*core.Dimension, error)

	// GetNote retrieves a note by ID.
	GetNote(ctx context.Context, id core.ID) (*core.Note, error)

	// DimensionsForVersion lists all dimensions of a version.
	DimensionsForVersion(ctx context.Context, versionId core.ID) ([]*core.Dimension, error)

	// NotesForVersion lists all notes of a version.
	NotesForVersion(ctx context.Context, versionId core.ID) ([]*core.Note, error)

	Close() error
}

// SummaryRepository stores the one-per-version drawing summary.
type SummaryRepository interface {
	// PutSummary persists the summary for its version, replacing any
	// existing one.
	PutSummary(ctx context.Context, summary *core.Summary) (*core.Summary, error)

	// SummaryForVersion retrieves the summary of a version.
	SummaryForVersion(ctx context.Context, versionId core.ID) (*core.Summary, error)

	Close() error
}

// ChunkRepository stores embedding chunks and serves vector search.
type ChunkRepository interface {
	// AddChunks assigns IDs and persists the given chunks.
	AddChunks(ctx context.Context, chunks ...*core.EmbeddingChunk) ([]*core.EmbeddingChunk, error)

	// UpdateChunks rewrites existing chunks in place.
	UpdateChunks(ctx context.Context, chunks ...*core.EmbeddingChunk) ([]*core.EmbeddingChunk, error)

	// ChunksForVersion lists all chunks of a version.
	ChunksForVersion(ctx context.Context, versionId core.ID) ([]*core.EmbeddingChunk, error)

	// AllChunks lists every chunk in stable ID order.
	AllChunks(ctx context.Context) ([]*core.EmbeddingChunk, error)

	// FindSimilar scans chunks passing the filter, scores them by
	// cosine similarity against vector, drops scores below minScore
	// (pass NoMinScore to disable) and returns at most limit results
	// sorted by score descending.
	FindSimilar(ctx context.Context, vector []float32, filter ChunkFilter, minScore float32, limit int) ([]*core.ScoredChunk, error)

	Close() error
}

// FileArtifactRepository tracks registered files derived from a
// version: the source drawing, converter JSON, rendered previews.
type FileArtifactRepository interface {
	// AddArtifact assigns an ID and persists the artifact.
	AddArtifact(ctx context.Context, artifact *core.FileArtifact) (*core.FileArtifact, error)

	// ArtifactsForVersion lists all artifacts of a version.
	ArtifactsForVersion(ctx context.Context, versionId core.ID) ([]*core.FileArtifact, error)

	// ThumbnailForVersion retrieves the thumbnail artifact of a
	// version, or ErrNotFound when none is registered.
	ThumbnailForVersion(ctx context.Context, versionId core.ID) (*core.FileArtifact, error)

	Close() error
}
