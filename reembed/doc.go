// Package reembed regenerates the stored vectors of every embedding
// chunk with the currently selected provider.
//
// This package supports batch processing of chunks on a worker pool,
// progress tracking, and retry logic with exponential backoff. It is
// the recovery path after an embedding model or provider change: query
// vectors and stored vectors must come from the same model for
// similarity scores to mean anything.
package reembed
