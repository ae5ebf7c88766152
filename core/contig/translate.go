package contig

// Translate converts a recorded position, a traversal distance and a strand
// flag into the index of the k-mer reached and the offset one past the
// matched region.
//
// The four branches are not mirror images of each other: the same-strand
// cases move the match end by k, the opposite-strand cases by one.
func Translate(offset int, dir Direction, distance int, sameStrand bool, k int) (wordIndex, matchEnd int) {
	if dir == Forward {
		if sameStrand {
			matchEnd = offset - distance + k
			wordIndex = matchEnd - k
		} else {
			matchEnd = offset - 1 + distance
			wordIndex = matchEnd + 1
		}
	} else {
		if sameStrand {
			matchEnd = offset + distance - k
			wordIndex = matchEnd + 1
		} else {
			matchEnd = offset + 1 - distance
			wordIndex = matchEnd - k
		}
	}
	return wordIndex, matchEnd
}
