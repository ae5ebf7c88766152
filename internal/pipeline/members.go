// internal/pipeline/members.go
package pipeline

import (
	"bfgraph/core/bloom"
	"bfgraph/core/contig"
	"bfgraph/core/kmer"
)

// Members is the membership filter the phases need. Both bloom.Filter and
// bloom.Solid satisfy it, as do exact fakes in tests.
type Members interface {
	contig.Membership
	Add(km kmer.Kmer) bool
	Len() uint64
	FillRatio() float64
}

var (
	_ Members = (*bloom.Filter)(nil)
	_ Members = (*bloom.Solid)(nil)
)

// NewMembers sizes a filter from cfg. MinCount 2 selects the two-stage
// filter that ignores k-mers seen only once.
func NewMembers(cfg Config) Members {
	if cfg.MinCount >= 2 {
		return bloom.NewSolid(cfg.ExpectedKmers, cfg.FPR)
	}
	return bloom.New(cfg.ExpectedKmers, cfg.FPR)
}
