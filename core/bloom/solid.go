package bloom

import "bfgraph/core/kmer"

// Solid is a two-stage counter: the first sighting of a k-mer lands in seen,
// the second in solid. Contains answers from solid only, so k-mers observed
// once (typically sequencing errors) never enter the graph.
type Solid struct {
	seen  *Filter
	solid *Filter
}

func NewSolid(expected uint64, fpr float64) *Solid {
	return &Solid{seen: New(expected, fpr), solid: New(expected, fpr)}
}

// Add records one sighting of km.
func (s *Solid) Add(km kmer.Kmer) bool {
	if !s.seen.Add(km) {
		return false
	}
	return s.solid.Add(km)
}

func (s *Solid) Contains(km kmer.Kmer) bool { return s.solid.Contains(km) }

// Len counts k-mers seen at least twice.
func (s *Solid) Len() uint64 { return s.solid.Len() }

// FillRatio reports the first stage, which saturates before the second.
func (s *Solid) FillRatio() float64 { return s.seen.FillRatio() }
