// Package parallel runs independent jobs on a fixed number of workers.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NumWorkers returns the default number of workers.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Map calls fn for every index in [0, n) on up to workers goroutines and
// collects the results in index order. Each index runs exactly once, so fn may
// own per-index state such as a sampler. After the first error the indices
// not yet started are skipped and that error is returned.
func Map[T any](n, workers int, fn func(i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n <= 0 {
		return results, nil
	}
	if workers <= 0 {
		workers = NumWorkers()
	}

	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(min(workers, n))
	for i := range n {
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			r, err := fn(i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Split divides total into n near equal non-negative parts.
func Split(total, n int) []int {
	if n <= 0 {
		return nil
	}
	parts := make([]int, n)
	for i := range parts {
		parts[i] = total / n
		if i < total%n {
			parts[i]++
		}
	}
	return parts
}
