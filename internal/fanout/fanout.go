// Package fanout runs a function over a slice with bounded concurrency,
// preserving input order in the results.
package fanout

import (
	"context"
	"sync"
)

// DefaultWorkers bounds concurrent calls when Map is given a
// non-positive worker count.
const DefaultWorkers = 8

// Map applies fn to every element of in using at most workers
// goroutines. Results are returned in input order. The first error
// cancels the remaining work and is returned; partial results are
// discarded.
func Map[T, R any](ctx context.Context, workers int, in []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if len(in) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(in) {
		workers = len(in)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := make([]R, len(in))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				r, err := fn(ctx, in[i])
				if err != nil {
					setErr(err)
					return
				}
				out[i] = r
			}
		}()
	}

dispatch:
	for i := range in {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
