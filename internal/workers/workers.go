package workers

import (
	"context"
	"sync"
	"time"
)

// Workers is an aggregate of background workers.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Add registers w. Workers added after Run are not started.
func (w *Workers) Add(worker Worker) {
	w.workers = append(w.workers, worker)
}

// Run starts every worker in its own goroutine and returns immediately.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}

// Every returns a worker that calls fn once per interval until ctx is done.
// The first call happens after one interval.
func Every(interval time.Duration, fn func(ctx context.Context)) Worker {
	return WorkerFunc(func(ctx context.Context) {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				fn(ctx)
			}
		}
	})
}
