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


package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// promptVersion tags summaries with the prompt revision that produced
// them, so stale summaries can be found after prompt changes.
const promptVersion = "v1"

// ArtifactInput describes one file to register for the ingested
// version.
type ArtifactInput struct {
	FileType  string
	Path      string
	SizeBytes int64
	MimeType  string
}

// RunInput carries everything one ingest run needs. Entities come from
// the external drawing converter; hashes identify the document and its
// exact content.
type RunInput struct {
	DocumentHash   string
	VersionHash    string
	SourceFilename string
	Entities       []core.ParsedEntity
	Artifacts      []ArtifactInput

	// PreviewRef optionally points the summarizer at a rendered
	// preview of the drawing.
	PreviewRef string
}

// RunResult reports what one ingest run produced.
type RunResult struct {
	DocumentId core.ID
	VersionId  core.ID
	Dimensions int
	Notes      int
	Embeddings int
	Reingest   bool
}

// Pipeline runs the ingest ETL: resolve identity, register artifacts,
// extract entities, summarize, embed, all within one storage
// transaction. Concurrent runs for the same content hashes are not
// internally serialized; callers ingest a given drawing from one
// goroutine at a time.
type Pipeline struct {
	versions  storage.VersionRepository
	entities  storage.EntityRepository
	summaries storage.SummaryRepository
	chunks    storage.ChunkRepository
	artifacts storage.FileArtifactRepository
	providers ai.ProviderSource
	logger    *slog.Logger
}

// NewPipeline creates a pipeline over the given repositories and AI
// provider source.
func NewPipeline(
	versions storage.VersionRepository,
	entities storage.EntityRepository,
	summaries storage.SummaryRepository,
	chunks storage.ChunkRepository,
	artifacts storage.FileArtifactRepository,
	providers ai.ProviderSource,
) *Pipeline {
	return &Pipeline{
		versions:  versions,
		entities:  entities,
		summaries: summaries,
		chunks:    chunks,
		artifacts: artifacts,
		providers: providers,
		logger:    slog.Default().With("component", "ingestion-pipeline"),
	}
}

// Run executes one ingest. Any failure after identity resolution rolls
// back every derived write of this run; the returned error names the
// failed stage via StageError.
func (p *Pipeline) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	provider := p.providers.Provider()
	if provider == nil {
		return nil, &StageError{Stage: StageResolve, Err: ErrNoProvider}
	}

	result := &RunResult{}

	err := p.versions.WithTransaction(ctx, func(ctx context.Context) error {
		doc, version, reingest, err := p.versions.ResolveVersion(ctx, input.DocumentHash, input.VersionHash, input.SourceFilename)
		if err != nil {
			return &StageError{Stage: StageResolve, Err: err}
		}
		result.DocumentId = doc.Id
		result.VersionId = version.Id
		result.Reingest = reingest
		p.logger.Info("resolved version",
			"documentId", doc.Id, "versionId", version.Id, "reingest", reingest)

		p.registerArtifacts(ctx, version.Id, input.Artifacts)

		dims, notes := ExtractEntities(version.Id, input.Entities)
		if dims, err = p.entities.AddDimensions(ctx, dims...); err != nil {
			return &StageError{Stage: StageExtract, Err: err}
		}
		if notes, err = p.entities.AddNotes(ctx, notes...); err != nil {
			return &StageError{Stage: StageExtract, Err: err}
		}
		result.Dimensions = len(dims)
		result.Notes = len(notes)
		p.logger.Info("extracted entities", "dimensions", len(dims), "notes", len(notes))

		summary, err := p.summarize(ctx, provider, input, version.Id)
		if err != nil {
			return &StageError{Stage: StageSummary, Err: err}
		}

		embeddings, err := p.embed(ctx, provider, version.Id, summary, dims, notes)
		if err != nil {
			return &StageError{Stage: StageEmbed, Err: err}
		}
		result.Embeddings = embeddings

		return nil
	})
	if err != nil {
		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			err = &StageError{Stage: StageCommit, Err: err}
		}
		return nil, err
	}

	p.logger.Info("ingest complete",
		"documentId", result.DocumentId,
		"versionId", result.VersionId,
		"dimensions", result.Dimensions,
		"notes", result.Notes,
		"embeddings", result.Embeddings,
		"reingest", result.Reingest)
	return result, nil
}

// registerArtifacts records the run's files. Per-artifact failures are
// logged and skipped; a missing file registration never fails the run.
func (p *Pipeline) registerArtifacts(ctx context.Context, versionId core.ID, inputs []ArtifactInput) {
	for _, in := range inputs {
		if in.Path == "" {
			continue
		}
		_, err := p.artifacts.AddArtifact(ctx, &core.FileArtifact{
			VersionId: versionId,
			FileType:  in.FileType,
			Path:      in.Path,
			SizeBytes: in.SizeBytes,
			MimeType:  in.MimeType,
		})
		if err != nil {
			p.logger.Error("failed to register artifact",
				"versionId", versionId, "fileType", in.FileType, "path", in.Path, "err", err)
		}
	}
}

// summarize runs the summary collaborator and persists the result.
func (p *Pipeline) summarize(ctx context.Context, provider ai.Provider, input RunInput, versionId core.ID) (*core.Summary, error) {
	output, err := provider.Summarizer().Summarize(ctx, ai.SummaryRequest{
		DocumentHash: input.DocumentHash,
		PreviewRef:   input.PreviewRef,
		Drawing:      &core.ParsedDrawing{Entities: input.Entities},
	})
	if err != nil {
		return nil, err
	}

	summary := &core.Summary{
		VersionId:        versionId,
		Structured:       output.Structured,
		LongForm:         output.LongForm,
		ShortDescription: output.ShortDescription,
		ModelName:        output.ModelName,
		PromptVersion:    promptVersion,
	}
	return p.summaries.PutSummary(ctx, summary)
}

// workItem is one text queued for embedding, tagged with its source.
type workItem struct {
	sourceType core.SourceType
	refID      core.ID
	text       string
}

// buildWorklist collects the embeddable texts of a version: the
// summary's long form, its short description when present, every
// dimension that renders to non-empty text, and every non-empty note.
func buildWorklist(summary *core.Summary, dims []*core.Dimension, notes []*core.Note) []workItem {
	var items []workItem

	if summary.LongForm != "" {
		items = append(items, workItem{core.SourceTypeSummary, summary.Id, summary.LongForm})
	}
	if summary.ShortDescription != "" {
		items = append(items, workItem{core.SourceTypeSummaryShort, summary.Id, summary.ShortDescription})
	}
	for _, dim := range dims {
		if text := renderDimension(dim); text != "" {
			items = append(items, workItem{core.SourceTypeDimension, dim.Id, text})
		}
	}
	for _, note := range notes {
		if text := strings.TrimSpace(note.Text); text != "" {
			items = append(items, workItem{core.SourceTypeNote, note.Id, text})
		}
	}
	return items
}

// renderDimension flattens a dimension into embeddable text:
// "<text> = <value> <units>", with absent parts omitted.
func renderDimension(dim *core.Dimension) string {
	var b strings.Builder
	if dim.Text != "" {
		b.WriteString(dim.Text)
	}
	if dim.Value != nil {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("= ")
		b.WriteString(strconv.FormatFloat(*dim.Value, 'f', -1, 64))
	}
	if dim.Units != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(dim.Units)
	}
	return strings.TrimSpace(b.String())
}

// embed turns the worklist into chunks with one batched provider call.
// A count mismatch aborts the run so no partial chunk set is ever
// committed.
func (p *Pipeline) embed(ctx context.Context, provider ai.Provider, versionId core.ID, summary *core.Summary, dims []*core.Dimension, notes []*core.Note) (int, error) {
	items := buildWorklist(summary, dims, notes)
	if len(items) == 0 {
		return 0, nil
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.text
	}

	embedder := provider.Embedder()
	vectors, err := embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}
	if len(vectors) != len(items) {
		return 0, fmt.Errorf("%w: requested %d, got %d",
			ErrEmbeddingCountMismatch, len(items), len(vectors))
	}

	chunks := make([]*core.EmbeddingChunk, len(items))
	for i, item := range items {
		chunks[i] = &core.EmbeddingChunk{
			VersionId:   versionId,
			SourceType:  item.sourceType,
			SourceRefId: item.refID,
			Content:     item.text,
			Vector:      vectors[i],
			ModelName:   embedder.ModelName(),
		}
	}
	if _, err := p.chunks.AddChunks(ctx, chunks...); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
