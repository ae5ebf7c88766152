package contig

import (
	"strings"

	"bfgraph/core/kmer"
)

// Walker returns the longest unambiguous extension from a start word.
type Walker interface {
	Walk(start kmer.Kmer, dir Direction) (WalkResult, error)
}

// MembershipWalker walks the implicit graph defined by a Membership.
type MembershipWalker struct {
	members Membership
	// MaxLength caps the number of words in a walk; 0 means unbounded.
	MaxLength int
}

func NewWalker(m Membership) *MembershipWalker {
	return &MembershipWalker{members: m}
}

// Walk extends start one base at a time using the same acceptance rule as
// Lookup. A Backward walk is a forward walk from the twin of start.
//
// Reaching start again ends the walk as ClosureSimple without repeating it;
// reaching the twin of start appends it and ends as ClosureRevComp.
func (w *MembershipWalker) Walk(start kmer.Kmer, dir Direction) (WalkResult, error) {
	if dir == Backward {
		start = start.Twin()
	}
	twin := start.Twin()

	var sb strings.Builder
	sb.WriteString(start.String())

	res := WalkResult{End: start, Distance: 1}
	end := start
	for w.MaxLength <= 0 || res.Distance < w.MaxLength {
		fw, ok, err := step(w.members, end)
		if err != nil {
			return WalkResult{}, err
		}
		if !ok {
			break
		}
		if fw == start {
			res.Closure = ClosureSimple
			break
		}
		end = fw
		sb.WriteByte(fw.LastBase())
		res.Distance++
		if fw == twin {
			res.Closure = ClosureRevComp
			break
		}
	}
	res.End = end
	res.Sequence = sb.String()
	return res, nil
}
