package numerics

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// BlockSize is the number of Monte-Carlo paths simulated per generator.
const BlockSize = 1024

// Workers returns the number of goroutines used for path simulation.
func Workers() int {
	n := runtime.GOMAXPROCS(0)
	if logical, err := cpu.Counts(true); err == nil && logical > 0 && logical < n {
		n = logical
	}
	if n < 1 {
		n = 1
	}
	return n
}

// BlockFunc simulates paths [start, end) using rng.
type BlockFunc func(start, end int, rng *rand.Rand)

// RunBlocks splits n paths into fixed-size blocks and runs fn for each block
// on a bounded worker pool. Block b always draws from stream.Block(b), so the
// outcome is independent of the worker count and of scheduling order. fn
// must only write to its own [start, end) range.
func RunBlocks(ctx context.Context, n int, stream Stream, fn BlockFunc) error {
	if n <= 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Workers())

	for b, start := 0, 0; start < n; b, start = b+1, start+BlockSize {
		if gctx.Err() != nil {
			break
		}
		b, start := b, start
		end := min(start+BlockSize, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(start, end, stream.Block(b))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A cancelled parent may have stopped the loop before every block ran.
	return ctx.Err()
}
