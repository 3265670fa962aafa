package resilience

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultPoolSize is the size used by NewBoundedPool for a non-positive size.
const DefaultPoolSize = 10

// Pool runs n indexed tasks and returns once all of them have finished.
//
// Contract:
//   - Ordering: each task receives its own index; pools make no promise about
//     completion order.
//   - Errors: tasks report through their own captured state and must not panic.
type Pool interface {
	Run(ctx context.Context, n int, task func(ctx context.Context, i int))
}

type sequentialPool struct{}

// Sequential returns a pool that runs every task on the calling goroutine,
// in index order.
func Sequential() Pool {
	return sequentialPool{}
}

func (sequentialPool) Run(ctx context.Context, n int, task func(context.Context, int)) {
	for i := 0; i < n; i++ {
		task(ctx, i)
	}
}

// BoundedPool fans tasks out over at most Size goroutines.
type BoundedPool struct {
	size int
}

// NewBoundedPool creates a pool running at most size tasks at once.
func NewBoundedPool(size int) *BoundedPool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &BoundedPool{size: size}
}

// Size returns the maximum number of concurrently running tasks.
func (p *BoundedPool) Size() int {
	return p.size
}

// Run starts every task, waiting for a free slot when all are busy.
func (p *BoundedPool) Run(ctx context.Context, n int, task func(context.Context, int)) {
	var g errgroup.Group
	g.SetLimit(p.size)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			task(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}

// NewPool returns Sequential for a parallelism of 0 and a bounded pool of
// that size otherwise. Negative values are rejected.
func NewPool(parallelism int) (Pool, error) {
	if parallelism < 0 {
		return nil, ErrInvalidPoolSize
	}
	if parallelism == 0 {
		return Sequential(), nil
	}
	return NewBoundedPool(parallelism), nil
}

var (
	_ Pool = sequentialPool{}
	_ Pool = (*BoundedPool)(nil)
)
