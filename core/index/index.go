// Package index is the exact contig index: registered contigs plus a
// stride-sampled map from representative k-mer to contig position.
package index

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"bfgraph/core/contig"
	"bfgraph/core/kmer"
)

var (
	ErrInvalidConfig = errors.New("index: invalid configuration")
	ErrShortContig   = errors.New("index: contig shorter than k")
	ErrInvalidSeq    = errors.New("index: contig contains non-ACGT bases")
	ErrUnknownContig = errors.New("index: unknown contig")
)

// Contig is a registered contig. Seq and Loop never change after
// registration; coverage counters are updated atomically.
type Contig struct {
	ID   int
	Seq  string
	Loop contig.LoopClass

	coverage []uint32 // one counter per k-mer
}

// Words is the number of k-mers in the contig.
func (c *Contig) Words() int { return len(c.coverage) }

// Coverage returns a snapshot of the per-k-mer counters.
func (c *Contig) Coverage() []uint32 {
	out := make([]uint32, len(c.coverage))
	for i := range c.coverage {
		out[i] = atomic.LoadUint32(&c.coverage[i])
	}
	return out
}

func (c *Contig) MeanCoverage() float64 {
	if len(c.coverage) == 0 {
		return 0
	}
	var sum uint64
	for i := range c.coverage {
		sum += uint64(atomic.LoadUint32(&c.coverage[i]))
	}
	return float64(sum) / float64(len(c.coverage))
}

// Index implements contig.Index.
//
// Every contig contributes its k-mers at offsets 0, stride, 2*stride, ...
// and its last k-mer, so an unmapped k-mer inside a contig reaches a sample
// within stride-1 forward steps whichever strand it reads.
type Index struct {
	k      int
	stride int

	mu      sync.RWMutex
	contigs []*Contig
	refs    map[uint64]contig.Ref

	// alts holds the further occurrences of a sampled representative
	// inside the same contig. Only loop contigs have any: a
	// reverse-complement loop reads a word and its twin, a tandem can
	// read a word twice.
	alts map[uint64][]contig.Ref
}

var _ contig.Index = (*Index)(nil)

func New(k, stride int) (*Index, error) {
	if k < 1 || k > kmer.MaxK {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidConfig, k)
	}
	if stride < 1 {
		return nil, fmt.Errorf("%w: stride=%d", ErrInvalidConfig, stride)
	}
	return &Index{
		k:      k,
		stride: stride,
		refs:   make(map[uint64]contig.Ref, 1<<12),
		alts:   map[uint64][]contig.Ref{},
	}, nil
}

func (x *Index) K() int      { return x.k }
func (x *Index) Stride() int { return x.stride }

// Find returns the stored reference for km's representative, or the empty ref.
func (x *Index) Find(km kmer.Kmer) contig.Ref {
	if km.K() != x.k {
		return contig.Ref{}
	}
	x.mu.RLock()
	ref := x.refs[km.Rep().Bits()]
	x.mu.RUnlock()
	return ref
}

// Register stores a contig unless one of its k-mers is already indexed,
// in which case the id of the owning contig is returned with added=false.
// The check and the insert happen under one lock, so of several goroutines
// registering the same contig exactly one wins.
func (x *Index) Register(seq string, loop contig.LoopClass) (id int, added bool, err error) {
	if len(seq) < x.k {
		return 0, false, fmt.Errorf("%w: len=%d k=%d", ErrShortContig, len(seq), x.k)
	}
	words := make([]kmer.Kmer, 0, len(seq)-x.k+1)
	kmer.Each([]byte(seq), x.k, func(_ int, km kmer.Kmer) bool {
		words = append(words, km)
		return true
	})
	if len(words) != len(seq)-x.k+1 {
		return 0, false, fmt.Errorf("%w: %d of %d k-mers valid", ErrInvalidSeq, len(words), len(seq)-x.k+1)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for _, km := range words {
		if ref, ok := x.refs[km.Rep().Bits()]; ok {
			return ref.ContigID, false, nil
		}
	}

	id = len(x.contigs)
	x.contigs = append(x.contigs, &Contig{
		ID:       id,
		Seq:      seq,
		Loop:     loop,
		coverage: make([]uint32, len(words)),
	})
	var occ map[uint64][]int
	if loop != contig.LoopNone {
		occ = make(map[uint64][]int, len(words))
		for p, km := range words {
			occ[km.Rep().Bits()] = append(occ[km.Rep().Bits()], p)
		}
	}
	last := len(words) - 1
	for p := 0; p <= last; p += x.stride {
		x.sample(id, p, words, occ)
	}
	if last%x.stride != 0 {
		x.sample(id, last, words, occ)
	}
	return id, true, nil
}

// sample records the word at p together with every other occurrence of its
// representative in the contig; the first occurrence is the primary ref.
func (x *Index) sample(id, p int, words []kmer.Kmer, occ map[uint64][]int) {
	key := words[p].Rep().Bits()
	if _, ok := x.refs[key]; ok {
		return
	}
	at := occ[key]
	if len(at) == 0 {
		at = []int{p}
	}
	x.refs[key] = x.refAt(id, at[0], words[at[0]])
	for _, q := range at[1:] {
		x.alts[key] = append(x.alts[key], x.refAt(id, q, words[q]))
	}
}

func (x *Index) refAt(id, p int, km kmer.Kmer) contig.Ref {
	if km.IsRep() {
		return contig.NewRef(id, p, contig.Forward)
	}
	return contig.NewRef(id, p+x.k-1, contig.Backward)
}

// Locate resolves a Lookup result to a contig and the index of the word
// that equals the query or its twin.
//
// When the mapped word occurs more than once in its contig the primary ref
// may be the occurrence the query never walked to, which translates off
// the contig. Any occurrence that translates into range is a true
// position: each step Lookup accepted had a single member predecessor, so
// stepping back Distance words from any occurrence retraces the walk.
func (x *Index) Locate(res contig.CheckResult) (id, word int, ok bool) {
	if !res.Found() {
		return 0, 0, false
	}
	c, found := x.Contig(res.Ref.ContigID)
	if !found {
		return 0, 0, false
	}
	try := func(ref contig.Ref) (int, bool) {
		w, _ := contig.Translate(ref.Offset, ref.Dir, res.Distance, res.SameStrand, x.k)
		return w, w >= 0 && w < c.Words()
	}
	if w, in := try(res.Ref); in {
		return c.ID, w, true
	}
	x.mu.RLock()
	alts := x.alts[res.End.Rep().Bits()]
	x.mu.RUnlock()
	for _, ref := range alts {
		if w, in := try(ref); in {
			return c.ID, w, true
		}
	}
	return c.ID, 0, false
}

func (x *Index) Contig(id int) (*Contig, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if id < 0 || id >= len(x.contigs) {
		return nil, false
	}
	return x.contigs[id], true
}

// Contigs returns the registered contigs in id order.
func (x *Index) Contigs() []*Contig {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return append([]*Contig(nil), x.contigs...)
}

func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.contigs)
}

// Samples is the number of indexed k-mers.
func (x *Index) Samples() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.refs)
}

// AddCoverage bumps the counter of the word-th k-mer of a contig. Out of
// range positions are ignored and reported as false.
func (x *Index) AddCoverage(id, word int) bool {
	c, ok := x.Contig(id)
	if !ok || word < 0 || word >= len(c.coverage) {
		return false
	}
	atomic.AddUint32(&c.coverage[word], 1)
	return true
}

// SetCoverage overwrites a contig's counters, e.g. when restoring a snapshot.
func (x *Index) SetCoverage(id int, cov []uint32) error {
	c, ok := x.Contig(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownContig, id)
	}
	if len(cov) != len(c.coverage) {
		return fmt.Errorf("index: contig %d has %d words, got %d counters", id, len(c.coverage), len(cov))
	}
	for i, v := range cov {
		atomic.StoreUint32(&c.coverage[i], v)
	}
	return nil
}
