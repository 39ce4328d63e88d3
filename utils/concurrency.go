package utils

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Concurrency calls do for every index in [0, count) with at most semWeight
// calls running at once. The first error cancels ctx for the remaining
// calls and is returned.
func Concurrency(
	ctx context.Context,
	semWeight int64,
	count int,
	do func(ctx context.Context, index int) error,
) error {
	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	sem := semaphore.NewWeighted(semWeight)
	// Ctx with cancel if error
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	setError := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < count; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			setError(err)
			break
		}
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			// Free semaphore
			defer sem.Release(1)

			if err := do(ctx, index); err != nil {
				setError(err)
			}
		}(i)
	}
	wg.Wait()
	return firstErr
}
