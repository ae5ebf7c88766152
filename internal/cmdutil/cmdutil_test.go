package cmdutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfgraph/core/contig"
	"bfgraph/core/index"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "info", "json")
	require.NoError(t, err)

	l.WithPhase("assemble").LogPhase(context.Background(), time.Now(), nil, "contigs", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "phase completed", rec["msg"])
	assert.Equal(t, "assemble", rec["phase"])
	assert.EqualValues(t, 3, rec["contigs"])
	assert.Contains(t, rec, "elapsed")
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "warn", "text")
	require.NoError(t, err)
	l.Info("hidden")
	assert.Zero(t, buf.Len())
	l.Warn("even k", "k", 20)
	assert.Contains(t, buf.String(), "k=20")
}

func TestNewLoggerErrors(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)
	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestLogPhaseError(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, "info", "text")
	require.NoError(t, err)
	l.LogPhase(context.Background(), time.Now(), errors.New("boom"))
	assert.Contains(t, buf.String(), "phase failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(context.Background(), 12))
	l.Error("dropped")
}

func TestEmitContigs(t *testing.T) {
	idx, err := index.New(3, 2)
	require.NoError(t, err)
	for _, s := range []string{"AACGT", "CCCTTTG", "GGA"} {
		_, added, err := idx.Register(s, contig.LoopNone)
		require.NoError(t, err)
		require.True(t, added)
	}

	var got []string
	n, err := EmitContigs(context.Background(), idx.Contigs(), 4,
		func(c *index.Contig) string { return c.Seq },
		func(s string) error { got = append(got, s); return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"AACGT", "CCCTTTG"}, got)
}

func TestEmitContigsStopsOnError(t *testing.T) {
	idx, err := index.New(3, 2)
	require.NoError(t, err)
	_, _, err = idx.Register("AACGT", contig.LoopNone)
	require.NoError(t, err)

	stop := errors.New("stop")
	n, err := EmitContigs(context.Background(), idx.Contigs(), 0,
		func(c *index.Contig) int { return c.ID },
		func(int) error { return stop })
	assert.ErrorIs(t, err, stop)
	assert.Zero(t, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = EmitContigs(ctx, idx.Contigs(), 0,
		func(c *index.Contig) int { return c.ID },
		func(int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
