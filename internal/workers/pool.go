package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool runs batches of tasks with a bounded number in flight.
type Pool struct {
	size int
}

// NewPool returns a pool running at most size tasks at once. A size below one
// is treated as one.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{size: size}
}

func (p *Pool) Size() int { return p.size }

// Run calls task for every index in [0, n). The first task error cancels the
// context passed to the remaining tasks and is returned once all have
// finished. Tasks that must not stop their siblings should return nil and
// report through their own results.
func (p *Pool) Run(ctx context.Context, n int, task func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i := range n {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return task(ctx, i)
		})
	}
	return g.Wait()
}
