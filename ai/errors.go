package ai

import "errors"

var (
	// ErrUpstreamProvider indicates an embedding or answering backend
	// failure. Backend errors are never retried internally; they wrap
	// this sentinel so callers can tell them apart from local failures.
	ErrUpstreamProvider = errors.New("upstream provider error")

	// ErrUnknownMode indicates a provider mode string that no factory
	// is registered for.
	ErrUnknownMode = errors.New("unknown provider mode")

	// ErrNoProvider indicates a Selector that has not constructed any
	// provider yet.
	ErrNoProvider = errors.New("no active provider")
)
