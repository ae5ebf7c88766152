package snapshot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/contig"
	"bfgraph/core/index"
	"bfgraph/core/kmer"
)

func fixture(t *testing.T) *index.Index {
	t.Helper()
	idx, err := index.New(5, 3)
	require.NoError(t, err)
	for _, c := range []struct {
		seq  string
		loop contig.LoopClass
	}{
		{"ACGTTGCAAGGCTA", contig.LoopNone},
		{"CCCCAGATTTAC", contig.LoopSimple},
		{"GGGTACGATC", contig.LoopRevCompB},
	} {
		_, added, err := idx.Register(c.seq, c.loop)
		require.NoError(t, err)
		require.True(t, added)
	}
	for w := 0; w < 4; w++ {
		require.True(t, idx.AddCoverage(0, w))
	}
	require.True(t, idx.AddCoverage(2, 1))
	return idx
}

func requireSameIndex(t *testing.T, want, got *index.Index) {
	t.Helper()
	require.Equal(t, want.K(), got.K())
	require.Equal(t, want.Stride(), got.Stride())
	require.Equal(t, want.Len(), got.Len())
	require.Equal(t, want.Samples(), got.Samples())
	for i, w := range want.Contigs() {
		g, ok := got.Contig(i)
		require.True(t, ok)
		assert.Equal(t, w.Seq, g.Seq)
		assert.Equal(t, w.Loop, g.Loop)
		assert.Equal(t, w.Coverage(), g.Coverage())
		kmer.Each([]byte(w.Seq), want.K(), func(_ int, km kmer.Kmer) bool {
			assert.Equal(t, want.Find(km), got.Find(km))
			return true
		})
	}
}

func TestRoundTrip(t *testing.T) {
	idx := fixture(t)
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, idx, c))
			assert.Equal(t, byte(c), buf.Bytes()[4])

			got, err := Read(&buf)
			require.NoError(t, err)
			requireSameIndex(t, idx, got)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	idx := fixture(t)
	path := filepath.Join(t.TempDir(), "graph.snap")
	require.NoError(t, Save(path, idx, CompressionZstd))

	got, err := Load(path)
	require.NoError(t, err)
	requireSameIndex(t, idx, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestEmptyIndex(t *testing.T) {
	idx, err := index.New(21, 8)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, idx, CompressionLZ4))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
	assert.Equal(t, 21, got.K())
}

func TestReadCorrupt(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("BF")))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Read(bytes.NewReader([]byte("NOPE\x00")))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Read(bytes.NewReader([]byte("BFGS\x09")))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Read(bytes.NewReader([]byte("BFGS\x00\xff\xff")))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReadRejectsOverlap(t *testing.T) {
	doc := document{Version: Version, K: 5, Stride: 2, Contigs: []contigDoc{
		{ID: 0, Seq: "ACGTTGCA", Loop: "none"},
		{ID: 1, Seq: "CGTTGCAT", Loop: "none"},
	}}
	var buf bytes.Buffer
	buf.Write(append(append([]byte(nil), magic...), byte(CompressionNone)))
	require.NoError(t, encMode.NewEncoder(&buf).Encode(doc))

	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReadRejectsVersion(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(append(append([]byte(nil), magic...), byte(CompressionNone)))
	require.NoError(t, encMode.NewEncoder(&buf).Encode(document{Version: 99, K: 5, Stride: 1}))
	_, err := Read(&buf)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := ParseCompression("brotli")
	assert.Error(t, err)
	assert.Equal(t, "unknown(7)", Compression(7).String())
}
