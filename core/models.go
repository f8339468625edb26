package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Documents and versions use content-derived IDs; extracted entities,
// summaries, chunks and file artifacts use database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from a content hash string
// using BLAKE2b hashing. Identical content always yields the same ID,
// which is how hash uniqueness is enforced at the key level.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Payload is an opaque, string-keyed bag of values used for entity
// geometry and structured summaries. Producers may add fields freely;
// consumers read only the keys they document.
type Payload map[string]any

// SourceType identifies which kind of content an embedding chunk was
// generated from.
type SourceType string

const (
	SourceTypeSummary      SourceType = "summary"
	SourceTypeSummaryShort SourceType = "summary_short"
	SourceTypeDimension    SourceType = "dimension"
	SourceTypeNote         SourceType = "note"
)

// Note sub-classifications assigned by the entity extractor.
const (
	NoteTypeGeneral   = "general"
	NoteTypeTolerance = "tolerance"
	NoteTypeGDT       = "gdandt"
)

// Document is a logical drawing, identified by a stable content hash of
// the original source file.
type Document struct {
	Id          ID
	ContentHash string
	InsertedAt  time.Time
}

// DocumentVersion is one ingested revision of a Document, keyed by its
// own content hash. Exactly one version per Document is active at any
// time.
type DocumentVersion struct {
	Id             ID
	DocumentId     ID
	ContentHash    string
	SourceFilename string
	RevisionLabel  string // optional, empty when unknown
	Active         bool
	InsertedAt     time.Time
	UpdatedAt      time.Time
}

// Dimension is a dimension entity extracted from the parsed drawing
// structure, owned by a DocumentVersion.
type Dimension struct {
	Id          ID
	VersionId   ID
	EntityIndex int
	DimType     string
	RawTypeCode int
	Layer       string
	Handle      string
	OwnerHandle string
	Text        string
	Value       *float64
	Units       string
	Geometry    Payload
	InsertedAt  time.Time
}

// Note is a text entity extracted from the parsed drawing structure,
// owned by a DocumentVersion. NoteType is one of the NoteType*
// constants.
type Note struct {
	Id          ID
	VersionId   ID
	EntityIndex int
	NoteType    string
	Text        string
	Layer       string
	Handle      string
	Geometry    Payload
	InsertedAt  time.Time
}

// Summary is the generated drawing summary. Exactly one exists per
// DocumentVersion.
type Summary struct {
	Id               ID
	VersionId        ID
	Structured       Payload
	LongForm         string
	ShortDescription string // optional, empty when the model produced none
	ModelName        string
	PromptVersion    string
	InsertedAt       time.Time
}

// EmbeddingChunk is one embeddable unit of drawing content together
// with its vector. The vector always has exactly the configured
// embedding dimension.
type EmbeddingChunk struct {
	Id          ID
	VersionId   ID
	SourceType  SourceType
	SourceRefId ID
	Content     string
	Vector      []float32
	ModelName   string
	InsertedAt  time.Time
}

// FileArtifact records one file produced for a DocumentVersion by the
// external conversion pipeline (source, converted, rendered preview).
type FileArtifact struct {
	Id         ID
	VersionId  ID
	FileType   string
	Path       string
	SizeBytes  int64
	MimeType   string
	InsertedAt time.Time
}

// ParsedEntity is one generic entity record from the external drawing
// parser. Optional fields arrive as zero values or nil.
type ParsedEntity struct {
	Type        string   `json:"type"`
	RawTypeCode int      `json:"raw_type"`
	Layer       string   `json:"layer"`
	Handle      string   `json:"handle"`
	OwnerHandle string   `json:"owner_handle"`
	Text        string   `json:"text"`
	Value       *float64 `json:"value"`
	Units       string   `json:"units"`
	Geometry    Payload  `json:"geometry"`
	Index       int      `json:"index"`
}

// ParsedDrawing is the parsed structure of one drawing as produced by
// the external converter.
type ParsedDrawing struct {
	Entities []ParsedEntity `json:"entities"`
}

// ScoredChunk is an embedding chunk paired with a similarity score from
// a vector scan.
type ScoredChunk struct {
	Chunk *EmbeddingChunk
	Score float32
}

// SearchResult is a retrieval hit: the matched chunk, its final score,
// and optional enrichment resolved from the owning Dimension or Note.
// Detail is nil for summary chunks and for dangling references.
type SearchResult struct {
	Chunk     *EmbeddingChunk
	Score     float32
	Detail    Payload
	Thumbnail string
}
