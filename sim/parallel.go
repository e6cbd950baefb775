package sim

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/spill/canvas"
	"github.com/pthm-cable/spill/config"
	"github.com/pthm-cable/spill/faucet"
	"github.com/pthm-cable/spill/field"
	"github.com/pthm-cable/spill/telemetry"
)

// parallelThreshold is the minimum stream count to use parallel
// integration. Below this, single-threaded is faster than spinning up
// workers.
const parallelThreshold = 256

// integrate partitions streams into contiguous chunks, one per worker,
// and merges the per-worker canvases and stats in worker-index order.
// Stream trajectories come from per-stream sub-sources, so the grid is
// reproducible for a given seed and worker count, and a single worker
// matches the sequential order exactly.
func integrate(cfg *config.Config, opts Options, fld *field.Field, set *faucet.Set) *Result {
	n := cfg.Streams.Count

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if n < parallelThreshold {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		cv := canvas.New(cfg.Size)
		stats := telemetry.NewRunStats(set.Len())
		runChunk(cfg, opts, fld, set, cv, stats, 0, n)
		return &Result{Canvas: cv, Stats: stats}
	}

	canvases := make([]*canvas.Canvas, workers)
	stats := make([]*telemetry.RunStats, workers)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := min(lo+chunkSize, n)
		if lo >= hi {
			break
		}
		canvases[w] = canvas.New(cfg.Size)
		stats[w] = telemetry.NewRunStats(set.Len())

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			runChunk(cfg, opts, fld, set, canvases[w], stats[w], lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	// Merge in worker-index order so float summation order is fixed for
	// a given worker count.
	cv := canvas.New(cfg.Size)
	total := telemetry.NewRunStats(set.Len())
	for w := 0; w < workers; w++ {
		if canvases[w] == nil {
			continue
		}
		// Sizes always match; Merge only fails on size mismatch.
		_ = cv.Merge(canvases[w])
		total.Merge(stats[w])
	}
	return &Result{Canvas: cv, Stats: total}
}
