package contig

import (
	"math/rand"
	"strings"

	"bfgraph/core/kmer"
)

// ---- fakes -----------------------------------------------------------------

// memberSet is an exact membership: no false positives.
type memberSet map[kmer.Kmer]struct{}

func (s memberSet) Contains(km kmer.Kmer) bool { _, ok := s[km]; return ok }

// membersOf adds the representative of every k-mer of seqs.
func membersOf(k int, seqs ...string) memberSet {
	s := memberSet{}
	for _, seq := range seqs {
		kmer.Each([]byte(seq), k, func(_ int, km kmer.Kmer) bool {
			s[km.Rep()] = struct{}{}
			return true
		})
	}
	return s
}

type countingMembers struct {
	memberSet
	calls int
}

func (c *countingMembers) Contains(km kmer.Kmer) bool {
	c.calls++
	return c.memberSet.Contains(km)
}

// mapIndex is keyed by representative like the real index.
type mapIndex struct {
	refs   map[kmer.Kmer]Ref
	stride int
}

func newMapIndex(stride int) *mapIndex {
	return &mapIndex{refs: map[kmer.Kmer]Ref{}, stride: stride}
}

func (x *mapIndex) Find(km kmer.Kmer) Ref { return x.refs[km.Rep()] }
func (x *mapIndex) Stride() int           { return x.stride }

// put records the k-mer starting at pos of seq the way core/index does.
func (x *mapIndex) put(id int, seq string, pos, k int) {
	km := kmerAt(seq, pos, k)
	if km.IsRep() {
		x.refs[km.Rep()] = NewRef(id, pos, Forward)
	} else {
		x.refs[km.Rep()] = NewRef(id, pos+k-1, Backward)
	}
}

// scriptedWalker returns canned results keyed by the start word.
type scriptedWalker struct {
	results map[kmer.Kmer]WalkResult
	calls   []kmer.Kmer
}

func (w *scriptedWalker) Walk(start kmer.Kmer, dir Direction) (WalkResult, error) {
	if dir == Backward {
		start = start.Twin()
	}
	w.calls = append(w.calls, start)
	if r, ok := w.results[start]; ok {
		return r, nil
	}
	return WalkResult{Sequence: start.String(), End: start, Distance: 1}, nil
}

// ---- helpers ---------------------------------------------------------------

func kmerAt(seq string, pos, k int) kmer.Kmer { return kmer.MustParse(seq[pos : pos+k]) }

func randomSeq(r *rand.Rand, n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteByte(kmer.Bases[r.Intn(4)])
	}
	return sb.String()
}

func rotate(s string, n int) string { return s[n:] + s[:n] }
