package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/workers"
)

const defaultSyncInterval = 5 * time.Minute

type syncJob struct {
	orchestrator SyncOrchestrator
	logger       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a job that calls SyncAll on a ticker. The job is idle
// until Start is called.
func NewSyncJob(orchestrator SyncOrchestrator, log *logger.Logger) SyncJob {
	return &syncJob{orchestrator: orchestrator, logger: log}
}

// Start stops any previously running loop, then launches a goroutine that
// syncs every interval. The goroutine exits when ctx is cancelled or Stop is
// called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		workers.Every(interval, j.tick).Run(jobCtx)
	}()
}

func (j *syncJob) tick(ctx context.Context) {
	outcomes := j.orchestrator.SyncAll(ctx)

	failed := 0
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
		}
	}
	j.logger.Debug().Str("func", "*syncJob.tick").
		Int("layers", len(outcomes)).
		Int("failed", failed).
		Msg("periodic sync finished")
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
