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


package core

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - ContentHash must not be empty
//
// NOT validated:
//   - ID (derived from ContentHash by the repository)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.ContentHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContentHash)
	}
	return nil
}

// ValidateVersion validates a DocumentVersion according to domain rules.
//
// Validation rules:
//   - ContentHash must not be empty
//   - DocumentId must be set
func ValidateVersion(version *DocumentVersion) error {
	if version == nil {
		return fmt.Errorf("%w: version is nil", ErrInvalidVersion)
	}
	if version.ContentHash == "" {
		return fmt.Errorf("%w: %w", ErrInvalidVersion, ErrEmptyContentHash)
	}
	if version.DocumentId == 0 {
		return fmt.Errorf("%w: document id is zero", ErrInvalidVersion)
	}
	return nil
}

// ValidateChunk validates an EmbeddingChunk against the configured
// embedding dimension.
//
// Validation rules:
//   - Content must not be empty
//   - SourceType must be one of the known values
//   - Vector, when present, must have exactly dim components
func ValidateChunk(chunk *EmbeddingChunk, dim int) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkContent)
	}
	if err := ValidateSourceType(chunk.SourceType); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}
	if len(chunk.Vector) > 0 && len(chunk.Vector) != dim {
		return fmt.Errorf("%w: %w: expected %d, got %d", ErrInvalidChunk, ErrVectorWidth, dim, len(chunk.Vector))
	}
	return nil
}

// ValidateSourceType validates that a SourceType has a known value.
func ValidateSourceType(st SourceType) error {
	switch st {
	case SourceTypeSummary, SourceTypeSummaryShort, SourceTypeDimension, SourceTypeNote:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSourceType, st)
}

// ValidateNoteType validates that a note classification has a known value.
func ValidateNoteType(nt string) error {
	switch nt {
	case NoteTypeGeneral, NoteTypeTolerance, NoteTypeGDT:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidNoteType, nt)
}
