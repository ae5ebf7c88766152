// Package kmer implements fixed-length DNA words packed two bits per base.
//
// A Kmer carries its own length, so values of different k never compare
// equal and there is no process-wide k to configure.
package kmer

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxK is the longest word a Kmer can hold.
const MaxK = 32

var (
	ErrInvalidLength = errors.New("kmer: length out of range")
	ErrInvalidBase   = errors.New("kmer: invalid base")
)

// Kmer is an immutable word over {A,C,G,T}. The first base sits in the
// highest used bit pair, so numeric order equals lexicographic order.
type Kmer struct {
	bits uint64
	k    uint8
}

func mask(k int) uint64 {
	if k == 32 {
		return ^uint64(0)
	}
	return (uint64(1) << (2 * uint(k))) - 1
}

// Parse converts s into a Kmer. Lowercase bases are accepted.
func Parse(s string) (Kmer, error) {
	if len(s) < 1 || len(s) > MaxK {
		return Kmer{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLength, len(s), MaxK)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := Code(s[i])
		if c < 0 {
			return Kmer{}, fmt.Errorf("%w: %q at %d", ErrInvalidBase, s[i], i)
		}
		v = v<<2 | uint64(c)
	}
	return Kmer{bits: v, k: uint8(len(s))}, nil
}

// MustParse is Parse for literals; it panics on error.
func MustParse(s string) Kmer {
	km, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return km
}

// FromBits builds a Kmer of length k from packed bits. Bits above 2k are dropped.
func FromBits(v uint64, k int) (Kmer, error) {
	if k < 1 || k > MaxK {
		return Kmer{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLength, k, MaxK)
	}
	return Kmer{bits: v & mask(k), k: uint8(k)}, nil
}

func (km Kmer) K() int       { return int(km.k) }
func (km Kmer) Bits() uint64 { return km.bits }
func (km Kmer) IsZero() bool { return km.k == 0 }

// ForwardBase drops the first base and appends b.
func (km Kmer) ForwardBase(b byte) Kmer {
	c := uint64(Code(b) & 3)
	return Kmer{bits: (km.bits<<2 | c) & mask(int(km.k)), k: km.k}
}

// BackwardBase drops the last base and prepends b.
func (km Kmer) BackwardBase(b byte) Kmer {
	c := uint64(Code(b) & 3)
	return Kmer{bits: km.bits>>2 | c<<(2*uint(km.k-1)), k: km.k}
}

// Twin returns the reverse complement.
func (km Kmer) Twin() Kmer {
	if km.k == 0 {
		return km
	}
	// complement every pair, reverse pair order, then shift the k used
	// pairs back down from the top of the word
	x := ^km.bits
	x = (x>>2)&0x3333333333333333 | (x&0x3333333333333333)<<2
	x = (x>>4)&0x0F0F0F0F0F0F0F0F | (x&0x0F0F0F0F0F0F0F0F)<<4
	x = bits.ReverseBytes64(x)
	return Kmer{bits: x >> (64 - 2*uint(km.k)), k: km.k}
}

// Rep returns the smaller of the word and its twin.
func (km Kmer) Rep() Kmer {
	tw := km.Twin()
	if tw.bits < km.bits {
		return tw
	}
	return km
}

// IsRep reports whether km is its own representative.
func (km Kmer) IsRep() bool { return km == km.Rep() }

// BaseAt returns the i-th base (0 = first).
func (km Kmer) BaseAt(i int) byte {
	shift := 2 * uint(int(km.k)-1-i)
	return Bases[(km.bits>>shift)&3]
}

func (km Kmer) FirstBase() byte { return km.BaseAt(0) }
func (km Kmer) LastBase() byte  { return Bases[km.bits&3] }

func (km Kmer) String() string {
	out := make([]byte, km.k)
	v := km.bits
	for i := int(km.k) - 1; i >= 0; i-- {
		out[i] = Bases[v&3]
		v >>= 2
	}
	return string(out)
}
