// Package bloom is the probabilistic membership index over representative
// k-mers. It can say "definitely absent" but may answer "present" for a
// k-mer that was never added.
package bloom

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/zeebo/blake3"

	"bfgraph/core/kmer"
)

const maxHashes = 16

// Size computes the bit count and hash count for n elements at the given
// false-positive rate. Out-of-range rates fall back to 1%.
func Size(n uint64, fpr float64) (numBits uint64, hashes uint32) {
	if n == 0 {
		n = 1
	}
	if fpr <= 0 || fpr >= 1 {
		fpr = 0.01
	}
	m := -float64(n) * math.Log(fpr) / (math.Ln2 * math.Ln2)
	numBits = ((uint64(m) + 63) / 64) * 64
	if numBits < 64 {
		numBits = 64
	}
	h := math.Ceil(m / float64(n) * math.Ln2)
	hashes = uint32(h)
	if hashes < 1 {
		hashes = 1
	}
	if hashes > maxHashes {
		hashes = maxHashes
	}
	return numBits, hashes
}

// Filter is a Bloom filter keyed by k-mer.
//
// Add may be called from several goroutines. Contains takes no lock and is
// only safe once all Adds have returned.
type Filter struct {
	mu      sync.Mutex
	set     *bitset.BitSet
	numBits uint64
	hashes  uint32
	count   uint64
}

// New returns a filter sized for expected elements at rate fpr.
func New(expected uint64, fpr float64) *Filter {
	m, h := Size(expected, fpr)
	return &Filter{set: bitset.New(uint(m)), numBits: m, hashes: h}
}

func hash(km kmer.Kmer) (uint64, uint64) {
	var buf [9]byte
	binary.LittleEndian.PutUint64(buf[:8], km.Bits())
	buf[8] = byte(km.K())
	sum := blake3.Sum256(buf[:])
	h1 := binary.LittleEndian.Uint64(sum[0:8])
	h2 := binary.LittleEndian.Uint64(sum[8:16]) | 1
	return h1, h2
}

// Add inserts km and reports whether every bit was already set, i.e. whether
// km was (probably) present before.
func (f *Filter) Add(km kmer.Kmer) bool {
	h1, h2 := hash(km)
	f.mu.Lock()
	defer f.mu.Unlock()
	present := true
	for i := uint32(0); i < f.hashes; i++ {
		bit := uint((h1 + uint64(i)*h2) % f.numBits)
		if !f.set.Test(bit) {
			present = false
			f.set.Set(bit)
		}
	}
	if !present {
		f.count++
	}
	return present
}

// Contains reports whether km may have been added.
func (f *Filter) Contains(km kmer.Kmer) bool {
	h1, h2 := hash(km)
	for i := uint32(0); i < f.hashes; i++ {
		if !f.set.Test(uint((h1 + uint64(i)*h2) % f.numBits)) {
			return false
		}
	}
	return true
}

// Len is the number of Adds that set at least one new bit.
func (f *Filter) Len() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func (f *Filter) Bits() uint64   { return f.numBits }
func (f *Filter) Hashes() uint32 { return f.hashes }

// FillRatio is the fraction of set bits.
func (f *Filter) FillRatio() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.set.Count()) / float64(f.numBits)
}
