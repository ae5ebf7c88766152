package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	warns, err := Default().Validate()
	require.NoError(t, err)
	assert.Empty(t, warns)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bfgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
k: 21
bloom:
  min_count: 2
output:
  format: jsonl
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.K)
	assert.Equal(t, 2, cfg.Bloom.MinCount)
	assert.Equal(t, FormatJSONL, cfg.Output.Format)

	// untouched keys keep defaults
	assert.Equal(t, DefaultStride, cfg.Stride)
	assert.Equal(t, DefaultFPR, cfg.Bloom.FalsePositiveRate)
	assert.Equal(t, uint64(DefaultExpectedKmers), cfg.Bloom.ExpectedKmers)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("k: [1, 2\n"), 0o644))
	_, err = LoadFile(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"k zero":      func(c *Config) { c.K = 0 },
		"k too large": func(c *Config) { c.K = 33 },
		"stride":      func(c *Config) { c.Stride = 0 },
		"threads":     func(c *Config) { c.Threads = -1 },
		"expected":    func(c *Config) { c.Bloom.ExpectedKmers = 0 },
		"fpr zero":    func(c *Config) { c.Bloom.FalsePositiveRate = 0 },
		"fpr one":     func(c *Config) { c.Bloom.FalsePositiveRate = 1 },
		"min count":   func(c *Config) { c.Bloom.MinCount = 3 },
		"format":      func(c *Config) { c.Output.Format = "gff" },
		"min length":  func(c *Config) { c.Output.MinLength = -1 },
		"compression": func(c *Config) { c.Snapshot.Compression = "brotli" },
		"log level":   func(c *Config) { c.Log.Level = "trace" },
		"log format":  func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			_, err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidateEvenKWarns(t *testing.T) {
	cfg := Default()
	cfg.K = 32
	warns, err := cfg.Validate()
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "even k=32")
}
