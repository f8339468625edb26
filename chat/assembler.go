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
	"log/slog"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/search"
	"github.com/poiesic/cadsentinel/storage"
)

// Limits bounds how many chunks of each class are retrieved as
// context. A zero limit skips that class entirely.
type Limits struct {
	Summaries  int
	Notes      int
	Dimensions int
}

// DefaultLimits returns the retrieval bounds used when a request
// leaves Limits nil.
func DefaultLimits() Limits {
	return Limits{Summaries: 3, Notes: 8, Dimensions: 12}
}

// Request asks a question about one drawing version. The version is
// named either directly by VersionId or indirectly by DocumentHash,
// which resolves to the document's active version.
type Request struct {
	Question     string
	VersionId    core.ID
	DocumentHash string
	Limits       *Limits
}

// Response carries the model's reply plus backreferences to the
// retrieved chunks, so callers can highlight or deep-link the sources.
type Response struct {
	Reply        string
	VersionId    core.ID
	DocumentHash string
	Contexts     []*core.SearchResult
	DeepLink     string
}

// Assembler orchestrates retrieval-grounded question answering over a
// single drawing version: resolve the version, embed the question,
// pull bounded per-class context, and delegate to the answering model.
type Assembler struct {
	versions  storage.VersionRepository
	searcher  *search.Searcher
	providers ai.ProviderSource
	logger    *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssembler creates a new chat assembler.
func NewAssembler(
	versions storage.VersionRepository,
	searcher *search.Searcher,
	providers ai.ProviderSource,
	opts ...Option,
) (*Assembler, error) {
	if versions == nil {
		return nil, ErrVersionRepositoryRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if providers == nil {
		return nil, ErrProviderSourceRequired
	}

	a := &Assembler{
		versions:  versions,
		searcher:  searcher,
		providers: providers,
		logger:    slog.Default().With("component", "chat"),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Ask answers a question about one drawing version using only
// retrieved context. When retrieval comes back empty across every
// class the answering model is skipped and a fixed fallback reply is
// returned with no contexts.
func (a *Assembler) Ask(ctx context.Context, req Request) (*Response, error) {
	if req.Question == "" {
		return nil, ErrEmptyQuestion
	}

	provider := a.providers.Provider()
	if provider == nil {
		return nil, ErrNoProvider
	}

	versionId, documentHash, err := a.resolveVersion(ctx, req)
	if err != nil {
		return nil, err
	}

	vector, err := provider.Embedder().EmbedText(ctx, req.Question)
	if err != nil {
		a.logger.Error("error generating embedding for question", "err", err)
		return nil, err
	}

	limits := DefaultLimits()
	if req.Limits != nil {
		limits = *req.Limits
	}

	summaries, err := a.retrieveClass(ctx, versionId, vector, core.SourceTypeSummary, limits.Summaries)
	if err != nil {
		return nil, err
	}
	notes, err := a.retrieveClass(ctx, versionId, vector, core.SourceTypeNote, limits.Notes)
	if err != nil {
		return nil, err
	}
	dims, err := a.retrieveClass(ctx, versionId, vector, core.SourceTypeDimension, limits.Dimensions)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		VersionId:    versionId,
		DocumentHash: documentHash,
		DeepLink:     fmt.Sprintf("/documents/%d", uint64(versionId)),
	}

	if len(summaries)+len(notes)+len(dims) == 0 {
		a.logger.Info("no context retrieved, skipping answer generation", "versionId", uint64(versionId))
		resp.Reply = FallbackReply
		return resp, nil
	}

	contextText := buildContextText(summaries, notes, dims)
	reply, err := provider.Answerer().Complete(ctx, systemPrompt, buildUserPrompt(req.Question, contextText))
	if err != nil {
		a.logger.Error("answer generation failed", "versionId", uint64(versionId), "err", err)
		return nil, err
	}

	resp.Reply = reply
	resp.Contexts = append(resp.Contexts, summaries...)
	resp.Contexts = append(resp.Contexts, notes...)
	resp.Contexts = append(resp.Contexts, dims...)

	a.logger.Info("answered drawing question",
		"versionId", uint64(versionId),
		"contexts", len(resp.Contexts))
	return resp, nil
}

// resolveVersion maps the request onto a concrete version id and, when
// known, the owning document's content hash. An explicit VersionId
// wins; otherwise DocumentHash resolves to that document's active
// version.
func (a *Assembler) resolveVersion(ctx context.Context, req Request) (core.ID, string, error) {
	if req.VersionId != 0 {
		version, err := a.versions.GetVersion(ctx, req.VersionId)
		if err != nil {
			return 0, "", err
		}

		doc, err := a.versions.GetDocument(ctx, version.DocumentId)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return 0, "", err
			}
			return version.Id, "", nil
		}
		return version.Id, doc.ContentHash, nil
	}

	if req.DocumentHash != "" {
		doc, err := a.versions.GetDocumentByHash(ctx, req.DocumentHash)
		if err != nil {
			return 0, "", err
		}
		version, err := a.versions.ActiveVersion(ctx, doc.Id)
		if err != nil {
			return 0, "", err
		}
		return version.Id, doc.ContentHash, nil
	}

	return 0, "", ErrVersionReferenceRequired
}

// retrieveClass pulls the top chunks of one source type for the
// version. A non-positive limit skips the class.
func (a *Assembler) retrieveClass(ctx context.Context, versionId core.ID, vector []float32, sourceType core.SourceType, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	filters := search.Filters{
		VersionId:   versionId,
		SourceTypes: []core.SourceType{sourceType},
	}
	return a.searcher.Retrieve(ctx, vector, filters, storage.NoMinScore, limit)
}
