// Package mock provides test doubles for the ai service interfaces.
//
// The mocks default to deterministic behavior (FNV-hash-derived unit
// vectors, fixed summaries and replies) so tests get stable results
// without external services, and expose function fields for injecting
// custom behavior plus call counters for assertions.
package mock
