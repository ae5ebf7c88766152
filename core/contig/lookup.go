package contig

import (
	"fmt"

	"bfgraph/core/kmer"
)

// step returns the unique successor of end, if there is one.
//
// A successor is accepted only when exactly one forward extension is a
// member and that extension has exactly one member predecessor. Checking
// both sides filters most branches that exist only as false positives.
// The caller must pass a word whose representative is a member.
func step(m Membership, end kmer.Kmer) (kmer.Kmer, bool, error) {
	var fw kmer.Kmer
	n := 0
	for _, b := range kmer.Bases {
		cand := end.ForwardBase(b)
		if m.Contains(cand.Rep()) {
			fw = cand
			if n++; n > 1 {
				return kmer.Kmer{}, false, nil
			}
		}
	}
	if n != 1 {
		return kmer.Kmer{}, false, nil
	}

	bw := 0
	for _, b := range kmer.Bases {
		if m.Contains(fw.BackwardBase(b).Rep()) {
			if bw++; bw > 1 {
				return kmer.Kmer{}, false, nil
			}
		}
	}
	if bw == 0 {
		return kmer.Kmer{}, false, fmt.Errorf("%w: %s follows %s but has no member predecessor", ErrInconsistent, fw, end)
	}
	return fw, true, nil
}

// Lookup reports whether seed already lies inside a registered contig.
//
// A seed that is itself mapped answers immediately. Otherwise Lookup walks
// forward while the path stays unambiguous, for fewer than idx.Stride()
// steps, and stops at the first mapped word. Running out of stride or
// hitting a branch is an ordinary negative result.
func Lookup(m Membership, idx Index, seed kmer.Kmer) (CheckResult, error) {
	if ref := idx.Find(seed); !ref.Empty() {
		return CheckResult{Ref: ref, End: seed, SameStrand: seed.IsRep()}, nil
	}

	end := seed
	for dist := 1; dist < idx.Stride(); dist++ {
		fw, ok, err := step(m, end)
		if err != nil {
			return CheckResult{}, err
		}
		if !ok {
			break
		}
		end = fw
		if ref := idx.Find(end); !ref.Empty() {
			return CheckResult{Ref: ref, End: end, Distance: dist, SameStrand: end.IsRep()}, nil
		}
	}
	return CheckResult{}, nil
}
