package mock

import (
	"context"

	"github.com/poiesic/cadsentinel/ai"
)

// MockAnswerer is a test double for ai.Answerer.
type MockAnswerer struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses default deterministic behavior.
	CompleteFunc func(ctx context.Context, systemPrompt, userContent string) (string, error)

	callCount int
}

// NewMockAnswerer creates a mock answerer with default behavior.
func NewMockAnswerer() *MockAnswerer {
	return &MockAnswerer{}
}

// Complete returns a fixed reply unless a custom function is injected.
func (m *MockAnswerer) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userContent)
	}

	return "mock reply", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockAnswerer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockAnswerer) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}

var _ ai.Answerer = (*MockAnswerer)(nil)
