// Package config loads bfgraph settings from a YAML file on top of defaults.
//
// Command-line flags override file values; see internal/cli.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"bfgraph/core/kmer"
)

const (
	DefaultK             = 31
	DefaultStride        = 16
	DefaultExpectedKmers = 1 << 24
	DefaultFPR           = 0.01
	DefaultMinCount      = 1
)

// Output formats.
const (
	FormatFASTA = "fasta"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the full set of tunables.
type Config struct {
	// K is the k-mer length, 1..32.
	K int `yaml:"k"`

	// Stride is the contig index sampling interval. Lookup walks at most
	// Stride-1 steps before giving up.
	Stride int `yaml:"stride"`

	// Threads is the worker count; 0 uses all CPUs.
	Threads int `yaml:"threads"`

	Bloom    BloomConfig    `yaml:"bloom"`
	Output   OutputConfig   `yaml:"output"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
}

// BloomConfig sizes the membership filter.
type BloomConfig struct {
	ExpectedKmers     uint64  `yaml:"expected_kmers"`
	FalsePositiveRate float64 `yaml:"false_positive_rate"`

	// MinCount is 1 (keep every k-mer) or 2 (drop k-mers seen once).
	MinCount int `yaml:"min_count"`
}

type OutputConfig struct {
	// Format is "fasta", "json" or "jsonl".
	Format string `yaml:"format"`

	// MinLength drops contigs shorter than this many bases.
	MinLength int `yaml:"min_length"`
}

type SnapshotConfig struct {
	// Path is where the CBOR snapshot is written. Empty disables it.
	Path string `yaml:"path"`

	// Compression is none, zstd or lz4.
	Compression string `yaml:"compression"`
}

type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		K:       DefaultK,
		Stride:  DefaultStride,
		Threads: 0,
		Bloom: BloomConfig{
			ExpectedKmers:     DefaultExpectedKmers,
			FalsePositiveRate: DefaultFPR,
			MinCount:          DefaultMinCount,
		},
		Output: OutputConfig{
			Format: FormatFASTA,
		},
		Snapshot: SnapshotConfig{
			Compression: "zstd",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile reads path over the defaults. Keys absent from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations. It returns warnings for settings
// that are legal but probably unintended.
func (c *Config) Validate() ([]string, error) {
	var warns []string
	if c.K < 1 || c.K > kmer.MaxK {
		return nil, fmt.Errorf("%w: k must be in 1..%d, got %d", ErrInvalid, kmer.MaxK, c.K)
	}
	if c.K%2 == 0 {
		warns = append(warns, fmt.Sprintf("warning: even k=%d allows palindromic k-mers that are their own reverse complement", c.K))
	}
	if c.Stride < 1 {
		return nil, fmt.Errorf("%w: stride must be >= 1, got %d", ErrInvalid, c.Stride)
	}
	if c.Threads < 0 {
		return nil, fmt.Errorf("%w: threads must be >= 0, got %d", ErrInvalid, c.Threads)
	}
	if c.Bloom.ExpectedKmers == 0 {
		return nil, fmt.Errorf("%w: bloom.expected_kmers must be > 0", ErrInvalid)
	}
	if fpr := c.Bloom.FalsePositiveRate; fpr <= 0 || fpr >= 1 {
		return nil, fmt.Errorf("%w: bloom.false_positive_rate must be in (0,1), got %g", ErrInvalid, fpr)
	}
	if c.Bloom.MinCount != 1 && c.Bloom.MinCount != 2 {
		return nil, fmt.Errorf("%w: bloom.min_count must be 1 or 2, got %d", ErrInvalid, c.Bloom.MinCount)
	}
	switch c.Output.Format {
	case FormatFASTA, FormatJSON, FormatJSONL:
	default:
		return nil, fmt.Errorf("%w: output.format %q (want fasta | json | jsonl)", ErrInvalid, c.Output.Format)
	}
	if c.Output.MinLength < 0 {
		return nil, fmt.Errorf("%w: output.min_length must be >= 0", ErrInvalid)
	}
	switch c.Snapshot.Compression {
	case "none", "zstd", "lz4":
	default:
		return nil, fmt.Errorf("%w: snapshot.compression %q (want none | zstd | lz4)", ErrInvalid, c.Snapshot.Compression)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return warns, nil
}
