package mock

import (
	"context"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/core"
)

// MockSummarizer is a test double for ai.Summarizer.
type MockSummarizer struct {
	// SummarizeFunc is called by Summarize if set.
	// If nil, uses default deterministic behavior.
	SummarizeFunc func(ctx context.Context, req ai.SummaryRequest) (*ai.SummaryOutput, error)

	callCount int
}

// NewMockSummarizer creates a mock summarizer with default behavior.
func NewMockSummarizer() *MockSummarizer {
	return &MockSummarizer{}
}

// Summarize returns a deterministic summary derived from the request.
func (m *MockSummarizer) Summarize(ctx context.Context, req ai.SummaryRequest) (*ai.SummaryOutput, error) {
	m.callCount++

	if m.SummarizeFunc != nil {
		return m.SummarizeFunc(ctx, req)
	}

	entityCount := 0
	if req.Drawing != nil {
		entityCount = len(req.Drawing.Entities)
	}

	return &ai.SummaryOutput{
		Structured: core.Payload{
			"drawing_id":   req.DocumentHash,
			"part_type":    "single_part",
			"entity_count": entityCount,
		},
		LongForm:         "Mock long-form description for drawing " + req.DocumentHash,
		ShortDescription: "Mock short description",
		ModelName:        "mock-summarizer",
	}, nil
}

// CallCount returns the number of times Summarize was called.
func (m *MockSummarizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockSummarizer) Reset() {
	m.callCount = 0
	m.SummarizeFunc = nil
}

var _ ai.Summarizer = (*MockSummarizer)(nil)
