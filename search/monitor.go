package search

import "github.com/poiesic/cadsentinel/core"

// SearchMonitor provides hooks to observe the retrieval process.
// Implement this interface to track intermediate steps and results
// during a search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(width int)
	AfterVectorScan(ids []uint64)
	AfterFusion(ids []uint64)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                 {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)      {}
func (n *noopMonitor) AfterVectorScan(_ []uint64)     {}
func (n *noopMonitor) AfterFusion(_ []uint64)         {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)  {}
