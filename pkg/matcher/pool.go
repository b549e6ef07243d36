package matcher

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool bounds how many scan workers run at once.
//
// A Pool is owned by the caller and borrowed by scans; any number of
// concurrent scans may share one, and together they never exceed Size()
// running workers.
type Pool struct {
	size   int
	sem    *semaphore.Weighted
	closed atomic.Bool
}

// NewPool creates a pool with the given number of workers.
// Zero selects runtime.GOMAXPROCS(0). Negative sizes are rejected.
func NewPool(workers int) (*Pool, error) {
	if workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{
		size: workers,
		sem:  semaphore.NewWeighted(int64(workers)),
	}, nil
}

// Size returns the maximum number of concurrently running workers.
func (p *Pool) Size() int {
	return p.size
}

// Close marks the pool closed. Scans already running finish normally;
// later scans fail with ErrPoolClosed. Close is idempotent.
func (p *Pool) Close() error {
	p.closed.Store(true)
	return nil
}

// run executes fn(0) .. fn(tasks-1), each on its own goroutine holding one
// pool slot, and returns after all of them have finished.
// A panicking task is reported as ErrUnknown.
func (p *Pool) run(tasks int, fn func(i int) error) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	ctx := context.Background()
	var g errgroup.Group
	for i := range tasks {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			_ = g.Wait()
			return fmt.Errorf("acquiring worker: %w", err)
		}
		g.Go(func() (err error) {
			defer p.sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d panicked: %v", ErrUnknown, i, r)
				}
			}()
			return fn(i)
		})
	}
	return g.Wait()
}
