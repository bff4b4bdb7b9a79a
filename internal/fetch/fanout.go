// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"sync"
	"time"
)

// Result pairs a fan-out key with its outcome. Exactly one of Value and Err
// is meaningful.
type Result[K comparable, V any] struct {
	Key   K
	Value V
	Err   error
}

// FanOut runs fn for every key under a concurrency ceiling. Keys are
// partitioned into chunks of at most limit; within a chunk every call runs
// concurrently and the executor waits for all of them to settle before
// moving on, so one failing call never cancels its siblings. Between chunks
// it sleeps for pacing to bound the request rate.
//
// The returned slice has exactly len(keys) entries in input order; callers
// needing a different ordering sort downstream. When the context is
// cancelled between chunks the remaining keys settle with ctx.Err().
func FanOut[K comparable, V any](ctx context.Context, keys []K, limit int, pacing time.Duration, fn func(context.Context, K) (V, error)) []Result[K, V] {
	if limit <= 0 {
		limit = 1
	}

	results := make([]Result[K, V], len(keys))

	for start := 0; start < len(keys); start += limit {
		end := start + limit
		if end > len(keys) {
			end = len(keys)
		}

		if err := ctx.Err(); err != nil {
			for i := start; i < len(keys); i++ {
				results[i] = Result[K, V]{Key: keys[i], Err: err}
			}
			return results
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := fn(ctx, keys[i])
				results[i] = Result[K, V]{Key: keys[i], Value: v, Err: err}
			}(i)
		}
		wg.Wait()

		if end < len(keys) && pacing > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pacing):
			}
		}
	}

	return results
}
