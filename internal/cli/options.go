// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"bfgraph/internal/config"
	"bfgraph/internal/writers"
)

// Options holds the parsed command line.
type Options struct {
	// Config is the effective configuration: defaults, then the --config
	// file, then explicitly set flags.
	Config     config.Config
	ConfigFile string

	ReadFiles []string

	Quiet   bool
	Version bool

	// Warnings are non-fatal validation messages.
	Warnings []string
}

// ParseArgs registers and parses all flags, returns an Options struct.
// A -h/--help request returns pflag.ErrHelp.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	def := config.Default()
	fl := *def // flag values; only the ones set explicitly are applied

	// Graph
	fs.IntVar(&fl.K, "k", def.K, "k-mer length (1-32)")
	fs.IntVar(&fl.Stride, "stride", def.Stride, "contig index sampling stride")

	// Membership filter
	fs.Uint64Var(&fl.Bloom.ExpectedKmers, "expected-kmers", def.Bloom.ExpectedKmers, "expected number of distinct k-mers (sizes the Bloom filter)")
	fs.Float64Var(&fl.Bloom.FalsePositiveRate, "fpr", def.Bloom.FalsePositiveRate, "Bloom filter false-positive rate")
	fs.IntVar(&fl.Bloom.MinCount, "min-count", def.Bloom.MinCount, "minimum k-mer occurrences: 1 keeps all, 2 drops singletons")

	// Performance
	fs.IntVarP(&fl.Threads, "threads", "t", def.Threads, "number of worker threads (0 = all CPUs)")

	// Output
	fs.StringVarP(&fl.Output.Format, "format", "f", def.Output.Format, "output format: "+strings.Join(writers.Formats(), " | "))
	fs.IntVar(&fl.Output.MinLength, "min-length", def.Output.MinLength, "drop contigs shorter than this")
	fs.StringVar(&fl.Snapshot.Path, "snapshot", def.Snapshot.Path, "write a contig snapshot to this file")
	fs.StringVar(&fl.Snapshot.Compression, "snapshot-compression", def.Snapshot.Compression, "snapshot compression: none | zstd | lz4")

	// Runtime
	fs.StringVarP(&opt.ConfigFile, "config", "c", "", "YAML config file; explicit flags override it")
	fs.StringVar(&fl.Log.Level, "log-level", def.Log.Level, "log level: debug | info | warn | error")
	fs.StringVar(&fl.Log.Format, "log-format", def.Log.Format, "log format: text | json")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "suppress logging")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	cfg := def
	if opt.ConfigFile != "" {
		loaded, err := config.LoadFile(opt.ConfigFile)
		if err != nil {
			return opt, err
		}
		cfg = loaded
	}
	overlay := map[string]func(){
		"k":                    func() { cfg.K = fl.K },
		"stride":               func() { cfg.Stride = fl.Stride },
		"expected-kmers":       func() { cfg.Bloom.ExpectedKmers = fl.Bloom.ExpectedKmers },
		"fpr":                  func() { cfg.Bloom.FalsePositiveRate = fl.Bloom.FalsePositiveRate },
		"min-count":            func() { cfg.Bloom.MinCount = fl.Bloom.MinCount },
		"threads":              func() { cfg.Threads = fl.Threads },
		"format":               func() { cfg.Output.Format = fl.Output.Format },
		"min-length":           func() { cfg.Output.MinLength = fl.Output.MinLength },
		"snapshot":             func() { cfg.Snapshot.Path = fl.Snapshot.Path },
		"snapshot-compression": func() { cfg.Snapshot.Compression = fl.Snapshot.Compression },
		"log-level":            func() { cfg.Log.Level = fl.Log.Level },
		"log-format":           func() { cfg.Log.Format = fl.Log.Format },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overlay[f.Name]; ok {
			apply()
		}
	})
	opt.Config = *cfg

	// Validation
	opt.ReadFiles = fs.Args()
	if len(opt.ReadFiles) == 0 {
		return opt, errors.New("at least one READS file is required")
	}
	warns, err := opt.Config.Validate()
	if err != nil {
		return opt, fmt.Errorf("%w (see --help)", err)
	}
	opt.Warnings = warns
	return opt, nil
}
