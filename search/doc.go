// Package search implements retrieval over embedding chunks.
//
// Two modes share one candidate source. Vector search embeds the query
// and ranks chunks by cosine similarity. Hybrid search over-fetches
// vector candidates, re-scores each as a weighted blend of vector
// similarity and trigram keyword similarity against the raw query
// text, and ranks on the fused score; the blend weight alpha defaults
// to DefaultAlpha.
//
// Dimension and note hits are enriched with the owning entity's
// metadata and the version's thumbnail where available. A
// SearchMonitor can observe each retrieval stage.
package search
