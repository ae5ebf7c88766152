package contig

import (
	"fmt"
	"strings"

	"bfgraph/core/kmer"
)

// Build constructs the maximal unambiguous contig containing seed.
//
// The seed must not be mapped yet; a mapped seed yields ErrSeedMapped.
// A nil walker walks m directly. Each direction is walked exactly once.
func Build(m Membership, idx Index, w Walker, seed kmer.Kmer) (BuildResult, error) {
	if ref := idx.Find(seed); !ref.Empty() {
		return BuildResult{}, fmt.Errorf("%w: %s at %s", ErrSeedMapped, seed, ref)
	}
	if w == nil {
		w = NewWalker(m)
	}
	k := seed.K()

	fwd, err := w.Walk(seed, Forward)
	if err != nil {
		return BuildResult{}, err
	}
	if fwd.Closure == ClosureSimple {
		// growing backwards would only revisit the loop
		return BuildResult{Sequence: fwd.Sequence, Loop: LoopSimple}, nil
	}

	bwd, err := w.Walk(seed.Twin(), Forward)
	if err != nil {
		return BuildResult{}, err
	}
	if ref := idx.Find(bwd.End); !ref.Empty() {
		return BuildResult{}, fmt.Errorf("%w: backward end %s of unmapped seed %s is mapped at %s",
			ErrInconsistent, bwd.End, seed, ref)
	}

	loop, err := classify(fwd, bwd)
	if err != nil {
		return BuildResult{}, fmt.Errorf("seed %s: %w", seed, err)
	}

	return BuildResult{
		Sequence:   stitch(fwd, bwd, k),
		Loop:       loop,
		SeedOffset: bwd.Distance - 1,
	}, nil
}

func classify(fwd, bwd WalkResult) (LoopClass, error) {
	switch bwd.Closure {
	case ClosureSimple:
		// the seed sits where a branch enters a simple loop
		if fwd.Distance != 1 {
			return 0, fmt.Errorf("%w: backward walk closed a simple loop after a forward extension of %d",
				ErrInconsistent, fwd.Distance)
		}
		return LoopSimple, nil
	case ClosureRevComp:
		if fwd.Closure == ClosureRevComp {
			return LoopRevCompC, nil
		}
		return LoopRevCompB, nil
	case ClosureNone:
		if fwd.Closure == ClosureRevComp {
			return LoopRevCompA, nil
		}
		return LoopNone, nil
	default:
		return 0, fmt.Errorf("%w: unknown closure %s", ErrInconsistent, bwd.Closure)
	}
}

// stitch joins revcomp(bwd) minus its trailing k bases with fwd. The
// dropped bases are the seed itself, which fwd already starts with.
func stitch(fwd, bwd WalkResult, k int) string {
	if bwd.Distance <= 1 {
		return fwd.Sequence
	}
	var sb strings.Builder
	sb.Grow(len(bwd.Sequence) + len(fwd.Sequence) - k)
	for j := len(bwd.Sequence) - 1; j >= k; j-- {
		sb.WriteByte(kmer.Complement(bwd.Sequence[j]))
	}
	sb.WriteString(fwd.Sequence)
	return sb.String()
}
