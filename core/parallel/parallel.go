// Package parallel provides helpers for splitting row-wise work across
// CPU cores. It is used for embarrassingly parallel computations such as
// filling a kernel matrix; sequential algorithms must not be fed through it.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, items) into contiguous chunks, one per worker,
// and runs fn(start, end) for each chunk on its own goroutine.
// It blocks until all chunks are done.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}

	// Ceiling division so the last chunk absorbs the remainder.
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when items is at or below
// threshold, avoiding goroutine overhead for small inputs.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Parallelize(items, fn)
}
