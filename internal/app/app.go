// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/pflag"

	"bfgraph/core/index"
	"bfgraph/internal/cli"
	"bfgraph/internal/cmdutil"
	"bfgraph/internal/pipeline"
	"bfgraph/internal/snapshot"
	"bfgraph/internal/version"
	"bfgraph/internal/writers"
)

// flushCode flushes outw and maps the result to an exit code; a reader
// that went away early is not an error.
func flushCode(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("bfgraph")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cli.PrintUsage(outw, fs)
			return flushCode(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		cli.PrintUsage(outw, fs)
		return flushCode(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "bfgraph version %s\n", version.Version)
		return flushCode(outw, stderr, 0)
	}

	cfg := opts.Config
	log := cmdutil.NoopLogger()
	if !opts.Quiet {
		if log, err = cmdutil.NewLogger(stderr, cfg.Log.Level, cfg.Log.Format); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}
	for _, w := range opts.Warnings {
		log.Warn(w)
	}
	compression, err := snapshot.ParseCompression(cfg.Snapshot.Compression)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	thr := cfg.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	idx, st, err := pipeline.Run(ctx, pipeline.Config{
		K:             cfg.K,
		Stride:        cfg.Stride,
		Threads:       thr,
		ExpectedKmers: cfg.Bloom.ExpectedKmers,
		FPR:           cfg.Bloom.FalsePositiveRate,
		MinCount:      cfg.Bloom.MinCount,
	}, opts.ReadFiles, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	if cfg.Snapshot.Path != "" {
		if err := snapshot.Save(cfg.Snapshot.Path, idx, compression); err != nil {
			log.ErrorContext(ctx, "snapshot failed", "path", cfg.Snapshot.Path, "error", err)
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		log.InfoContext(ctx, "snapshot saved", "path", cfg.Snapshot.Path, "compression", compression.String())
	}

	inCh, writeErr := writers.StartContigWriter(outw, cfg.Output.Format, thr*4)
	total, perr := cmdutil.EmitContigs(ctx, idx.Contigs(), cfg.Output.MinLength,
		func(c *index.Contig) *index.Contig { return c },
		func(c *index.Contig) error {
			select {
			case inCh <- c:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, perr)
		return 3
	}
	log.InfoContext(ctx, "contigs written", "contigs", total, "filtered", st.Contigs-total, "format", cfg.Output.Format)
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
