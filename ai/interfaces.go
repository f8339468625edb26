package ai

import (
	"context"

	"github.com/poiesic/cadsentinel/core"
)

// Embedder generates vector embeddings from text for semantic search.
// Implementations must be thread-safe, preserve input order and length,
// and return vectors conformed to the configured embedding dimension.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings
	// in a batch. The returned slice contains embeddings in the same
	// order as the input texts, one per input.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName reports the embedding model identity recorded on
	// generated chunks.
	ModelName() string
}

// Summarizer produces the drawing summary for one document version from
// its parsed structure and rendered preview reference.
// Implementations must be thread-safe.
type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (*SummaryOutput, error)
}

// Answerer completes a chat turn: one system prompt plus one user
// message, returning the assistant reply text. Upstream failures are
// reported as errors wrapping ErrUpstreamProvider, never as an empty
// reply.
type Answerer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// Provider aggregates the AI collaborators for one backend. A provider
// is constructed by a factory keyed on the configured mode and is
// immutable; switching backends means constructing a new provider and
// swapping it in via a Selector.
type Provider interface {
	Embedder() Embedder
	Summarizer() Summarizer
	Answerer() Answerer

	// Close releases resources held by the provider and its services.
	Close() error
}

// ProviderSource yields the currently active provider. The Selector is
// the production implementation; tests can wrap a fixed provider with
// Static.
type ProviderSource interface {
	Provider() Provider
}

// SummaryRequest carries the inputs to summary generation.
type SummaryRequest struct {
	// DocumentHash identifies the drawing being summarized.
	DocumentHash string

	// PreviewRef is an opaque reference to the rendered drawing preview
	// (a file path or URL), empty when no preview exists.
	PreviewRef string

	// Drawing is the parsed structure from the external converter.
	Drawing *core.ParsedDrawing
}

// SummaryOutput is the result of summary generation.
type SummaryOutput struct {
	// Structured is the machine-readable summary object.
	Structured core.Payload

	// LongForm is the prose description used as the primary summary
	// embedding chunk.
	LongForm string

	// ShortDescription is an optional condensed description; empty when
	// the model produced none.
	ShortDescription string

	// ModelName records which model produced the summary.
	ModelName string
}

// static adapts a fixed provider to the ProviderSource interface.
type static struct{ p Provider }

func (s static) Provider() Provider { return s.p }

// Static wraps a fixed provider as a ProviderSource.
func Static(p Provider) ProviderSource { return static{p: p} }
