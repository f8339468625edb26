package core

import (
	"errors"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		doc := &Document{ContentHash: "abc123"}
		if err := ValidateDocument(doc); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if err := ValidateDocument(nil); !errors.Is(err, ErrInvalidDocument) {
			t.Errorf("expected ErrInvalidDocument, got %v", err)
		}
	})

	t.Run("empty hash", func(t *testing.T) {
		err := ValidateDocument(&Document{})
		if !errors.Is(err, ErrEmptyContentHash) {
			t.Errorf("expected ErrEmptyContentHash, got %v", err)
		}
	})
}

func TestValidateVersion(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v := &DocumentVersion{DocumentId: 1, ContentHash: "abc123"}
		if err := ValidateVersion(v); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing document id", func(t *testing.T) {
		err := ValidateVersion(&DocumentVersion{ContentHash: "abc123"})
		if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("expected ErrInvalidVersion, got %v", err)
		}
	})

	t.Run("empty hash", func(t *testing.T) {
		err := ValidateVersion(&DocumentVersion{DocumentId: 1})
		if !errors.Is(err, ErrEmptyContentHash) {
			t.Errorf("expected ErrEmptyContentHash, got %v", err)
		}
	})
}

func TestValidateChunk(t *testing.T) {
	t.Run("valid with vector", func(t *testing.T) {
		chunk := &EmbeddingChunk{
			SourceType: SourceTypeSummary,
			Content:    "overall summary",
			Vector:     make([]float32, 4),
		}
		if err := ValidateChunk(chunk, 4); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid without vector", func(t *testing.T) {
		chunk := &EmbeddingChunk{SourceType: SourceTypeDimension, Content: "1.750 = 1.75 in"}
		if err := ValidateChunk(chunk, 4); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong width", func(t *testing.T) {
		chunk := &EmbeddingChunk{
			SourceType: SourceTypeNote,
			Content:    "DEBURR ALL EDGES",
			Vector:     make([]float32, 3),
		}
		if err := ValidateChunk(chunk, 4); !errors.Is(err, ErrVectorWidth) {
			t.Errorf("expected ErrVectorWidth, got %v", err)
		}
	})

	t.Run("unknown source type", func(t *testing.T) {
		chunk := &EmbeddingChunk{SourceType: "blueprint", Content: "x"}
		if err := ValidateChunk(chunk, 4); !errors.Is(err, ErrInvalidSourceType) {
			t.Errorf("expected ErrInvalidSourceType, got %v", err)
		}
	})

	t.Run("empty content", func(t *testing.T) {
		chunk := &EmbeddingChunk{SourceType: SourceTypeNote}
		if err := ValidateChunk(chunk, 4); !errors.Is(err, ErrEmptyChunkContent) {
			t.Errorf("expected ErrEmptyChunkContent, got %v", err)
		}
	})
}

func TestValidateNoteType(t *testing.T) {
	for _, nt := range []string{NoteTypeGeneral, NoteTypeTolerance, NoteTypeGDT} {
		if err := ValidateNoteType(nt); err != nil {
			t.Errorf("ValidateNoteType(%q) = %v", nt, err)
		}
	}
	if err := ValidateNoteType("comment"); !errors.Is(err, ErrInvalidNoteType) {
		t.Errorf("expected ErrInvalidNoteType, got %v", err)
	}
}
