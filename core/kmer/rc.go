// core/kmer/rc.go
package kmer

// Bases lists the alphabet in code order (A=0, C=1, G=2, T=3).
var Bases = [4]byte{'A', 'C', 'G', 'T'}

var (
	codes      [256]int8
	complement [256]byte
)

func init() {
	for i := range codes {
		codes[i] = -1
	}
	codes['A'], codes['a'] = 0, 0
	codes['C'], codes['c'] = 1, 1
	codes['G'], codes['g'] = 2, 2
	codes['T'], codes['t'] = 3, 3

	complement['A'], complement['a'] = 'T', 'T'
	complement['C'], complement['c'] = 'G', 'G'
	complement['G'], complement['g'] = 'C', 'C'
	complement['T'], complement['t'] = 'A', 'A'
}

// Code returns the 2-bit code of b, or -1 if b is not A/C/G/T (either case).
func Code(b byte) int { return int(codes[b]) }

// Complement maps A<->T and C<->G. Anything else becomes 'N'.
func Complement(b byte) byte {
	c := complement[b]
	if c == 0 {
		return 'N'
	}
	return c
}

// ReverseComplement returns the reverse complement of seq.
func ReverseComplement(seq string) string {
	n := len(seq)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = Complement(seq[n-1-i])
	}
	return string(out)
}
