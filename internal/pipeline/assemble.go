// internal/pipeline/assemble.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"bfgraph/core/contig"
	"bfgraph/core/fasta"
	"bfgraph/core/index"
	"bfgraph/core/kmer"
)

// Fill adds the representative of every read k-mer to m and returns the
// number of records read.
func Fill(ctx context.Context, cfg Config, files []string, m Members) (uint64, error) {
	var reads atomic.Uint64
	err := forEachRecord(ctx, cfg.Threads, files, func(rec fasta.Record) error {
		reads.Add(1)
		n := 0
		kmer.Each(rec.Seq, cfg.K, func(_ int, km kmer.Kmer) bool {
			m.Add(km.Rep())
			n++
			return !cancelled(ctx, n)
		})
		return ctx.Err()
	})
	return reads.Load(), err
}

// cancelled polls ctx every 64Ki k-mers; a single record can be a whole
// chromosome.
func cancelled(ctx context.Context, n int) bool {
	return n&0xffff == 0 && ctx.Err() != nil
}

// claims is the set of seed representatives some worker has started
// building from. A seed is built at most once.
type claims struct {
	mu  sync.Mutex
	set *roaring64.Bitmap
}

func newClaims() *claims { return &claims{set: roaring64.New()} }

// claim reports whether the caller is the first to claim km.
func (c *claims) claim(km kmer.Kmer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.CheckedAdd(km.Rep().Bits())
}

type assembler struct {
	m      contig.Membership
	idx    *index.Index
	walker contig.Walker
	claims *claims

	discarded atomic.Uint64
}

// seed makes sure km ends up inside a registered contig.
//
// Two workers seeded from different words of the same unitig both build it;
// Register lets exactly one of them store it and the other confirms with a
// fresh Lookup that its seed is now covered.
func (a *assembler) seed(km kmer.Kmer) error {
	res, err := contig.Lookup(a.m, a.idx, km)
	if err != nil {
		return err
	}
	if res.Found() {
		return nil
	}
	if !a.claims.claim(km) {
		// the claimant registers it or finds it covered
		return nil
	}

	built, err := contig.Build(a.m, a.idx, a.walker, km)
	switch {
	case errors.Is(err, contig.ErrSeedMapped):
		return nil
	case errors.Is(err, contig.ErrInconsistent):
		// a concurrent registration can make the backward end visible
		// between Lookup and Build; only a seed that is still
		// unreachable is a real inconsistency
		if again, lerr := contig.Lookup(a.m, a.idx, km); lerr == nil && again.Found() {
			a.discarded.Add(1)
			return nil
		}
		return err
	case err != nil:
		return err
	}

	if _, added, err := a.idx.Register(built.Sequence, built.Loop); err != nil {
		return fmt.Errorf("register contig from %s: %w", km, err)
	} else if added {
		return nil
	}

	a.discarded.Add(1)
	again, err := contig.Lookup(a.m, a.idx, km)
	if err != nil {
		return err
	}
	if !again.Found() {
		return fmt.Errorf("%w: seed %s lost registration but is not covered by the winner",
			contig.ErrInconsistent, km)
	}
	return nil
}

// Assemble builds a contig for every read k-mer not yet covered by one and
// returns how many constructions were discarded as duplicates.
func Assemble(ctx context.Context, cfg Config, files []string, m contig.Membership, idx *index.Index) (uint64, error) {
	a := &assembler{m: m, idx: idx, walker: contig.NewWalker(m), claims: newClaims()}

	err := forEachRecord(ctx, cfg.Threads, files, func(rec fasta.Record) error {
		var serr error
		n := 0
		kmer.Each(rec.Seq, cfg.K, func(_ int, km kmer.Kmer) bool {
			if n++; cancelled(ctx, n) {
				serr = ctx.Err()
				return false
			}
			if !m.Contains(km.Rep()) {
				return true
			}
			serr = a.seed(km)
			return serr == nil
		})
		if errors.Is(serr, context.Canceled) {
			return serr
		} else if serr != nil {
			return fmt.Errorf("read %s: %w", rec.ID, serr)
		}
		return nil
	})
	return a.discarded.Load(), err
}

// Cover maps every member read k-mer onto its contig and bumps the
// coverage of the k-mer it lands on. It returns the number of mapped
// k-mers.
func Cover(ctx context.Context, cfg Config, files []string, m contig.Membership, idx *index.Index) (uint64, error) {
	var mapped atomic.Uint64
	err := forEachRecord(ctx, cfg.Threads, files, func(rec fasta.Record) error {
		var lerr error
		n := 0
		kmer.Each(rec.Seq, cfg.K, func(_ int, km kmer.Kmer) bool {
			if n++; cancelled(ctx, n) {
				lerr = ctx.Err()
				return false
			}
			if !m.Contains(km.Rep()) {
				return true
			}
			res, err := contig.Lookup(m, idx, km)
			if err != nil {
				lerr = err
				return false
			}
			if !res.Found() {
				return true
			}
			id, word, ok := idx.Locate(res)
			if !ok {
				lerr = fmt.Errorf("%w: %s reaches contig %d but no occurrence places it",
					contig.ErrInconsistent, km, res.Ref.ContigID)
				return false
			}
			if idx.AddCoverage(id, word) {
				mapped.Add(1)
			}
			return true
		})
		if errors.Is(lerr, context.Canceled) {
			return lerr
		} else if lerr != nil {
			return fmt.Errorf("read %s: %w", rec.ID, lerr)
		}
		return nil
	})
	return mapped.Load(), err
}
