package bloom

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/kmer"
)

func randomKmers(n, k int, seed int64) []kmer.Kmer {
	r := rand.New(rand.NewSource(seed))
	out := make([]kmer.Kmer, n)
	for i := range out {
		km, _ := kmer.FromBits(r.Uint64(), k)
		out[i] = km
	}
	return out
}

func TestSize(t *testing.T) {
	m, h := Size(1000, 0.01)
	assert.Equal(t, uint64(0), m%64)
	assert.InDelta(t, 9585, float64(m), 64)
	assert.Equal(t, uint32(7), h)

	m, h = Size(0, 5)
	assert.GreaterOrEqual(t, m, uint64(64))
	assert.GreaterOrEqual(t, h, uint32(1))
}

func TestNoFalseNegatives(t *testing.T) {
	f := New(5000, 0.01)
	kms := randomKmers(5000, 31, 1)
	for _, km := range kms {
		f.Add(km)
	}
	for _, km := range kms {
		require.True(t, f.Contains(km), km.String())
	}
}

func TestFalsePositiveRateBounded(t *testing.T) {
	f := New(10000, 0.01)
	for _, km := range randomKmers(10000, 31, 2) {
		f.Add(km)
	}
	fp := 0
	queries := randomKmers(20000, 31, 3)
	for _, km := range queries {
		if f.Contains(km) {
			fp++
		}
	}
	assert.Less(t, float64(fp)/float64(len(queries)), 0.03)
}

func TestAddReportsPresence(t *testing.T) {
	f := New(100, 0.001)
	km := kmer.MustParse("ACGTA")
	assert.False(t, f.Add(km))
	assert.True(t, f.Add(km))
	assert.Equal(t, uint64(1), f.Len())
}

func TestKIsPartOfKey(t *testing.T) {
	f := New(100, 0.0001)
	a, _ := kmer.FromBits(0, 3)
	b, _ := kmer.FromBits(0, 5)
	f.Add(a)
	assert.True(t, f.Contains(a))
	assert.False(t, f.Contains(b))
}

func TestConcurrentAdd(t *testing.T) {
	f := New(8000, 0.01)
	kms := randomKmers(8000, 25, 4)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(kms); i += 4 {
				f.Add(kms[i])
			}
		}(w)
	}
	wg.Wait()
	for _, km := range kms {
		require.True(t, f.Contains(km))
	}
	assert.Greater(t, f.FillRatio(), 0.0)
}

func TestSolidDropsSingletons(t *testing.T) {
	s := NewSolid(100, 0.0001)
	once := kmer.MustParse("AAAAC")
	twice := kmer.MustParse("CCCCA")
	s.Add(once)
	s.Add(twice)
	s.Add(twice)
	assert.False(t, s.Contains(once))
	assert.True(t, s.Contains(twice))
	assert.Equal(t, uint64(1), s.Len())
}
