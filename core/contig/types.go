// Package contig decides whether a k-mer already lies inside a finalized
// contig and, if not, builds the maximal unambiguous contig containing it.
//
// The graph is never materialized: it is walked one word at a time using a
// Membership test and branch counting, against an Index of contigs that
// have already been registered.
package contig

import (
	"fmt"

	"bfgraph/core/kmer"
)

// Membership is the probabilistic set of representative k-mers.
// No false negatives; false positives are possible.
type Membership interface {
	Contains(km kmer.Kmer) bool
}

// Index maps a k-mer to the finalized contig that contains it.
type Index interface {
	Find(km kmer.Kmer) Ref
	// Stride bounds the forward walk Lookup performs.
	Stride() int
}

// Direction says which way a position was recorded or a walk is taken.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Ref points into a registered contig. The zero value is the empty ref.
//
// For a Forward ref, Offset is where the k-mer starts in the contig
// sequence. For a Backward ref it is the offset of its last base, the
// k-mer being read on the opposite strand.
type Ref struct {
	ContigID int
	Offset   int
	Dir      Direction
	valid    bool
}

// NewRef returns a non-empty reference.
func NewRef(contigID, offset int, dir Direction) Ref {
	return Ref{ContigID: contigID, Offset: offset, Dir: dir, valid: true}
}

func (r Ref) Empty() bool { return !r.valid }

func (r Ref) String() string {
	if !r.valid {
		return "ref(empty)"
	}
	return fmt.Sprintf("ref(%d@%d,%s)", r.ContigID, r.Offset, r.Dir)
}

// CheckResult is the answer of Lookup. An empty Ref always comes with a
// zero End, Distance 0 and SameStrand false.
type CheckResult struct {
	Ref        Ref
	End        kmer.Kmer // the mapped k-mer reached by the walk
	Distance   int       // extension steps from the query to the mapped k-mer
	SameStrand bool      // the mapped k-mer equals its representative
}

func (c CheckResult) Found() bool { return !c.Ref.Empty() }

// Locate translates the result into the index of the query's k-mer inside
// the contig and the offset one past the match. It trusts the primary Ref;
// a loop contig can hold the mapped k-mer twice, and only the index knows
// the other occurrence.
func (c CheckResult) Locate(k int) (wordIndex, matchEnd int) {
	return Translate(c.Ref.Offset, c.Ref.Dir, c.Distance, c.SameStrand, k)
}

// Closure is how an unambiguous walk ended.
type Closure uint8

const (
	ClosureNone    Closure = iota // branch or dead end
	ClosureSimple                 // came back to the start word
	ClosureRevComp                // reached the twin of the start word
)

func (c Closure) String() string {
	switch c {
	case ClosureNone:
		return "none"
	case ClosureSimple:
		return "simple"
	case ClosureRevComp:
		return "revcomp"
	default:
		return fmt.Sprintf("closure(%d)", uint8(c))
	}
}

// WalkResult is the outcome of one unambiguous walk. Sequence starts with
// the start word; Distance counts the words in Sequence (1 = no extension).
type WalkResult struct {
	Sequence string
	Closure  Closure
	End      kmer.Kmer
	Distance int
}

// LoopClass is the topology of a built contig.
type LoopClass uint8

const (
	LoopNone     LoopClass = iota // linear
	LoopSimple                    // first -> ... -> last -> first
	LoopRevCompA                  // unit + revcomp(unit), closed on the forward walk
	LoopRevCompB                  // revcomp(unit) + unit, closed on the backward walk
	LoopRevCompC                  // closed on both walks: periodic tandem
)

func (c LoopClass) String() string {
	switch c {
	case LoopNone:
		return "none"
	case LoopSimple:
		return "simple"
	case LoopRevCompA:
		return "revcomp-a"
	case LoopRevCompB:
		return "revcomp-b"
	case LoopRevCompC:
		return "revcomp-c"
	default:
		return fmt.Sprintf("loop(%d)", uint8(c))
	}
}

// ParseLoopClass is the inverse of LoopClass.String.
func ParseLoopClass(s string) (LoopClass, error) {
	for c := LoopNone; c <= LoopRevCompC; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("contig: unknown loop class %q", s)
}

// BuildResult is a freshly built contig. SeedOffset is where the seed word
// begins inside Sequence.
type BuildResult struct {
	Sequence   string
	Loop       LoopClass
	SeedOffset int
}
