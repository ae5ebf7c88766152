package kmer

// Each calls fn for every k-mer of seq, in order, with its start offset.
// Non-ACGT bases break the window; rolling restarts after them.
// Returning false from fn stops the scan.
func Each(seq []byte, k int, fn func(pos int, km Kmer) bool) {
	if k < 1 || k > MaxK || len(seq) < k {
		return
	}
	m := mask(k)
	var v uint64
	run := 0
	for i := 0; i < len(seq); i++ {
		c := Code(seq[i])
		if c < 0 {
			run = 0
			v = 0
			continue
		}
		v = (v<<2 | uint64(c)) & m
		run++
		if run >= k {
			if !fn(i-k+1, Kmer{bits: v, k: uint8(k)}) {
				return
			}
		}
	}
}
