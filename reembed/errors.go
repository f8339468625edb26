package reembed

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when no chunk repository
	// is supplied.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrNoProvider is returned when no AI provider is configured.
	ErrNoProvider = errors.New("no AI provider configured")
)
