package renderer

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// rowSeedMix spreads consecutive row indices across the seed space
const rowSeedMix uint64 = 0x9E3779B97F4A7C15

// rowSeed derives the generator seed for scanline y. Each row owns its
// generator, so output does not depend on the number of workers.
func rowSeed(seed int64, y int) int64 {
	return seed ^ int64(uint64(y+1)*rowSeedMix)
}

// rowTask renders one scanline and returns the number of camera samples taken
type rowTask func(y int) int64

// rowCounters tracks progress across concurrent row tasks
type rowCounters struct {
	rows    atomic.Int64
	samples atomic.Int64
}

// runRows fans scanlines out with at most workers running at once. Rows
// write disjoint slices of the output, so tasks share nothing mutable except
// the counters. The first error, including cancellation of ctx, stops
// scheduling further rows.
func runRows(ctx context.Context, height, workers int, task rowTask, counters *rowCounters) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for y := 0; y < height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			counters.samples.Add(task(y))
			counters.rows.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// Parent cancellation may stop scheduling before any task observes it.
	// Once every row is done the image is complete regardless of ctx.
	if counters.rows.Load() < int64(height) {
		return ctx.Err()
	}
	return nil
}
