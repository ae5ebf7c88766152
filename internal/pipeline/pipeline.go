// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"bfgraph/core/fasta"
	"bfgraph/core/index"
	"bfgraph/internal/cmdutil"
)

// Config controls the assembly pipeline.
type Config struct {
	K       int
	Stride  int
	Threads int // number of worker goroutines (>=1)

	ExpectedKmers uint64
	FPR           float64
	MinCount      int // 1 keeps every k-mer, 2 drops singletons
}

// Stats are the counters reported at the end of a run.
type Stats struct {
	Reads     uint64  // records read in the fill phase
	Kmers     uint64  // k-mers admitted to the membership filter
	FillRatio float64 // fraction of filter bits set after fill
	Contigs   int     // contigs registered
	Discarded uint64  // constructions that lost a registration race
	Mapped    uint64  // read k-mers mapped onto a contig
}

// forEachRecord feeds every record of files to threads workers running fn.
// The first error from the reader or a worker cancels the others and is
// returned.
func forEachRecord(ctx context.Context, threads int, files []string, fn func(fasta.Record) error) error {
	if threads < 1 {
		threads = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan fasta.Record, threads*2)

	g.Go(func() error {
		defer close(jobs)
		for _, path := range files {
			err := fasta.StreamPathCtx(ctx, path, func(rec fasta.Record) error {
				select {
				case jobs <- rec:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	})

	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for rec := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// spoolStdin copies stdin to a temporary file so "-" can be read once per
// phase. The returned cleanup removes it.
func spoolStdin(files []string) ([]string, func(), error) {
	out := append([]string(nil), files...)
	var tmp string
	for i, f := range out {
		if f != "-" {
			continue
		}
		if tmp == "" {
			fh, err := os.CreateTemp("", "bfgraph-stdin-*")
			if err != nil {
				return nil, func() {}, err
			}
			if _, err := io.Copy(fh, os.Stdin); err != nil {
				_ = fh.Close()
				_ = os.Remove(fh.Name())
				return nil, func() {}, fmt.Errorf("spool stdin: %w", err)
			}
			if err := fh.Close(); err != nil {
				_ = os.Remove(fh.Name())
				return nil, func() {}, err
			}
			tmp = fh.Name()
		}
		out[i] = tmp
	}
	cleanup := func() {
		if tmp != "" {
			_ = os.Remove(tmp)
		}
	}
	return out, cleanup, nil
}

// saturatedFill is the bit fill ratio past which the filter's false
// positive rate has drifted well above the configured one.
const saturatedFill = 0.5

func warnSaturated(ctx context.Context, log *cmdutil.Logger, ratio float64, expected uint64) {
	if ratio > saturatedFill {
		log.WarnContext(ctx, "membership filter saturated, raise --expected-kmers", "fill_ratio", ratio, "expected_kmers", expected)
	}
}

// Run executes fill, assemble and cover over files and returns the
// populated contig index.
func Run(ctx context.Context, cfg Config, files []string, log *cmdutil.Logger) (*index.Index, Stats, error) {
	var st Stats
	idx, err := index.New(cfg.K, cfg.Stride)
	if err != nil {
		return nil, st, err
	}
	files, cleanup, err := spoolStdin(files)
	if err != nil {
		return nil, st, err
	}
	defer cleanup()

	members := NewMembers(cfg)

	start := time.Now()
	st.Reads, err = Fill(ctx, cfg, files, members)
	st.Kmers = members.Len()
	st.FillRatio = members.FillRatio()
	flog := log.WithPhase("fill")
	flog.LogPhase(ctx, start, err, "files", len(files), "reads", st.Reads, "kmers", st.Kmers, "fill_ratio", st.FillRatio)
	if err != nil {
		return nil, st, err
	}
	warnSaturated(ctx, flog, st.FillRatio, cfg.ExpectedKmers)

	start = time.Now()
	st.Discarded, err = Assemble(ctx, cfg, files, members, idx)
	st.Contigs = idx.Len()
	log.WithPhase("assemble").LogPhase(ctx, start, err, "contigs", st.Contigs, "discarded", st.Discarded)
	if err != nil {
		return nil, st, err
	}

	start = time.Now()
	st.Mapped, err = Cover(ctx, cfg, files, members, idx)
	log.WithPhase("cover").LogPhase(ctx, start, err, "mapped", st.Mapped)
	if err != nil {
		return nil, st, err
	}
	return idx, st, nil
}
