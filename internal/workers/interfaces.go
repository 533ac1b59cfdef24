// Package workers runs the client's background jobs and bounds the
// parallelism of batch work.
//
// A [Worker] is a long-running job: it blocks in Run until its context is
// cancelled. [Workers] starts a set of them and waits for all to return.
// [Pool] fans a fixed number of tasks out over a bounded number of
// goroutines.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is done.
type Worker interface {
	Run(ctx context.Context)
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context)

func (f WorkerFunc) Run(ctx context.Context) { f(ctx) }
