// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/cache"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/internal/utils"
	"github.com/MKhiriev/go-geo-sync/internal/validators"
	"github.com/MKhiriev/go-geo-sync/internal/workers"
	"github.com/MKhiriev/go-geo-sync/models"
)

// ContainerOpener opens the container at path, creating it when missing.
type ContainerOpener func(ctx context.Context, path, layerID string, log *logger.Logger) (store.ContainerStore, error)

func openContainer(ctx context.Context, path, layerID string, log *logger.Logger) (store.ContainerStore, error) {
	c, err := store.OpenOrCreate(ctx, path, layerID, log)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// layerEntry is one attached layer. syncing and editors are mutually
// exclusive; replica is the last committed state for lock-free reads.
type layerEntry struct {
	id    string
	store store.ContainerStore

	mu      sync.Mutex
	syncing bool
	editors int
	cancel  context.CancelFunc

	replica atomic.Pointer[models.LayerReplica]
}

func (e *layerEntry) beginSync(cancel context.CancelFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.syncing {
		return syncerr.LayerBusy(e.id, "sync session running")
	}
	if e.editors > 0 {
		return syncerr.LayerBusy(e.id, "edit session open")
	}
	e.syncing, e.cancel = true, cancel
	return nil
}

func (e *layerEntry) endSync() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.syncing, e.cancel = false, nil
}

func (e *layerEntry) cancelSync() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel == nil {
		return false
	}
	e.cancel()
	return true
}

func (e *layerEntry) beginEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.syncing {
		return syncerr.LayerBusy(e.id, "sync session running")
	}
	e.editors++
	return nil
}

func (e *layerEntry) endEdit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editors > 0 {
		e.editors--
	}
}

func (e *layerEntry) snapshot() models.LayerReplica {
	if rep := e.replica.Load(); rep != nil {
		return *rep
	}
	return models.LayerReplica{LayerID: e.id}
}

type orchestrator struct {
	location   cache.Location
	open       ContainerOpener
	reconciler Reconciler
	fetcher    Fetcher
	applier    Applier
	uploader   Uploader
	validator  validators.Validator

	pool     *workers.Pool
	progress *ProgressHub
	metrics  *Metrics
	flight   singleflight.Group
	ids      *utils.UUIDGenerator
	now      func() time.Time

	mu     sync.RWMutex
	layers map[string]*layerEntry

	logger *logger.Logger
}

func NewSyncOrchestrator(
	location cache.Location,
	remote adapter.RemoteAdapter,
	cfg config.ClientSync,
	metrics *Metrics,
	progress *ProgressHub,
	log *logger.Logger,
) SyncOrchestrator {
	retry := NewRetryPolicy(cfg)

	return &orchestrator{
		location:   location,
		open:       openContainer,
		reconciler: NewReconciler(remote, retry),
		fetcher:    NewFetcher(remote, retry, cfg.PageSize),
		applier:    NewApplier(),
		uploader:   NewUploader(remote, retry, cfg.UploadBatchSize),
		validator:  validators.NewDeltaValidator(),
		pool:       workers.NewPool(cfg.Workers),
		progress:   progress,
		metrics:    metrics,
		ids:        utils.NewUUIDGenerator(),
		now:        time.Now,
		layers:     make(map[string]*layerEntry),
		logger:     log,
	}
}

func (o *orchestrator) entry(layerID string) (*layerEntry, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	e, ok := o.layers[layerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLayerNotAttached, layerID)
	}
	return e, nil
}

func (o *orchestrator) refresh(ctx context.Context, e *layerEntry) {
	rep, err := e.store.Replica(ctx)
	if err != nil {
		o.logger.Err(err).Str("func", "*orchestrator.refresh").Str("layer_id", e.id).Msg("failed to read replica state")
		return
	}
	e.replica.Store(&rep)
}

// ── Layers ──

func (o *orchestrator) Attach(ctx context.Context, layerID string) (models.LayerReplica, error) {
	if layerID == "" {
		return models.LayerReplica{}, ErrInvalidDataProvided
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if e, ok := o.layers[layerID]; ok {
		return e.snapshot(), nil
	}

	c, err := o.open(ctx, o.location.ContainerPath(layerID), layerID, o.logger)
	if err != nil {
		o.logger.Err(err).Str("func", "*orchestrator.Attach").Str("layer_id", layerID).Msg("failed to open container")
		return models.LayerReplica{}, mapStoreError(layerID, models.StageReconcile, err)
	}

	rep, err := c.Replica(ctx)
	if err != nil {
		_ = c.Close()
		return models.LayerReplica{}, mapStoreError(layerID, models.StageReconcile, err)
	}

	o.location.Pin(layerID)
	e := &layerEntry{id: layerID, store: c}
	e.replica.Store(&rep)
	o.layers[layerID] = e

	o.logger.Info().Str("func", "*orchestrator.Attach").
		Str("layer_id", layerID).
		Stringer("status", rep.Status).
		Msg("layer attached")
	return rep, nil
}

func (o *orchestrator) Detach(ctx context.Context, layerID string) error {
	o.mu.Lock()
	e, ok := o.layers[layerID]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrLayerNotAttached, layerID)
	}
	if err := e.beginSync(func() {}); err != nil {
		o.mu.Unlock()
		return err
	}
	delete(o.layers, layerID)
	o.mu.Unlock()

	closeErr := e.store.Close()
	o.location.Unpin(layerID)
	o.progress.Forget(layerID)
	removeErr := o.location.Remove(layerID)

	if err := errors.Join(closeErr, removeErr); err != nil {
		o.logger.Err(err).Str("func", "*orchestrator.Detach").Str("layer_id", layerID).Msg("failed to remove container")
		return err
	}

	o.logger.Info().Str("func", "*orchestrator.Detach").Str("layer_id", layerID).Msg("layer detached")
	return nil
}

func (o *orchestrator) Layers() []models.LayerReplica {
	o.mu.RLock()
	out := make([]models.LayerReplica, 0, len(o.layers))
	for _, e := range o.layers {
		out = append(out, e.snapshot())
	}
	o.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].LayerID < out[j].LayerID })
	return out
}

func (o *orchestrator) layerIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	ids := make([]string, 0, len(o.layers))
	for id := range o.layers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o *orchestrator) GetSyncStatus(layerID string) (models.SyncStatus, error) {
	e, err := o.entry(layerID)
	if err != nil {
		return 0, err
	}
	return e.snapshot().Status, nil
}

func (o *orchestrator) Replica(layerID string) (models.LayerReplica, error) {
	e, err := o.entry(layerID)
	if err != nil {
		return models.LayerReplica{}, err
	}
	return e.snapshot(), nil
}

func (o *orchestrator) SubscribeProgress(layerID string) (<-chan models.Progress, func(), error) {
	if _, err := o.entry(layerID); err != nil {
		return nil, nil, err
	}
	ch, cancel := o.progress.Subscribe(layerID)
	return ch, cancel, nil
}

func (o *orchestrator) RequestReset(ctx context.Context, layerID string) error {
	e, err := o.entry(layerID)
	if err != nil {
		return err
	}
	if err = e.beginSync(func() {}); err != nil {
		return err
	}
	defer e.endSync()

	if err = e.store.Purge(ctx); err != nil {
		return mapStoreError(layerID, models.StageReconcile, err)
	}
	o.refresh(ctx, e)

	o.logger.Info().Str("func", "*orchestrator.RequestReset").Str("layer_id", layerID).Msg("replica reset")
	return nil
}

func (o *orchestrator) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	var errs []error
	for id, e := range o.layers {
		e.cancelSync()
		errs = append(errs, e.store.Close())
		o.location.Unpin(id)
	}
	clear(o.layers)
	return errors.Join(errs...)
}

// ── Sessions ──

func (o *orchestrator) Sync(ctx context.Context, layerID string) (models.SyncOutcome, error) {
	e, err := o.entry(layerID)
	if err != nil {
		return models.SyncOutcome{LayerID: layerID, Err: err}, err
	}

	v, _, _ := o.flight.Do(layerID, func() (any, error) {
		return o.runSession(ctx, e), nil
	})
	out := v.(models.SyncOutcome)
	return out, out.Err
}

func (o *orchestrator) SyncAll(ctx context.Context) map[string]models.SyncOutcome {
	ids := o.layerIDs()
	results := make([]models.SyncOutcome, len(ids))

	_ = o.pool.Run(ctx, len(ids), func(ctx context.Context, i int) error {
		// a failed layer must not cancel the others
		results[i], _ = o.Sync(ctx, ids[i])
		return nil
	})

	out := make(map[string]models.SyncOutcome, len(ids))
	for i, id := range ids {
		if results[i].LayerID == "" {
			results[i] = models.SyncOutcome{LayerID: id, Err: ctx.Err()}
		}
		out[id] = results[i]
	}
	return out
}

func (o *orchestrator) Cancel(layerID string) bool {
	e, err := o.entry(layerID)
	if err != nil {
		return false
	}
	return e.cancelSync()
}

func (o *orchestrator) runSession(ctx context.Context, e *layerEntry) models.SyncOutcome {
	sessionID := o.ids.Generate()
	log := o.logger.WithSession(e.id, sessionID)
	ctx = log.WithContext(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := o.now()
	out := models.SyncOutcome{LayerID: e.id, SessionID: sessionID}

	if err := e.beginSync(cancel); err != nil {
		rep := e.snapshot()
		out.Status, out.LocalVersion, out.RemoteVersion = rep.Status, rep.LocalVersion, rep.RemoteVersion
		out.Err = err
		o.metrics.observe(out)
		return out
	}
	defer e.endSync()

	progress := newSessionProgress(o.progress, e.id, sessionID)
	err := o.pipeline(ctx, e, progress, &out)

	// local writes below must not be skipped by a cancelled session
	persistCtx := context.WithoutCancel(ctx)
	if err != nil {
		if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
			err = fmt.Errorf("%w: %w", ErrSessionCancelled, err)
		}
		if serr := e.store.SetStatus(persistCtx, models.StatusError, err.Error()); serr != nil {
			log.Err(serr).Str("func", "*orchestrator.runSession").Msg("failed to persist error status")
		}
	}
	o.refresh(persistCtx, e)

	rep := e.snapshot()
	out.Status, out.LocalVersion, out.RemoteVersion = rep.Status, rep.LocalVersion, rep.RemoteVersion
	out.Duration = o.now().Sub(start)
	out.Err = err

	progress.finish(err == nil)
	o.metrics.observe(out)

	if err != nil {
		log.Err(err).Str("func", "*orchestrator.runSession").
			Stringer("decision", out.Decision).
			Int("applied", out.Applied).
			Int("uploaded", out.Uploaded).
			Strs("rejected", out.Rejected).
			Strs("discarded", out.Discarded).
			Msg("sync session failed")
	} else {
		log.Info().Str("func", "*orchestrator.runSession").
			Stringer("decision", out.Decision).
			Int("applied", out.Applied).
			Int("uploaded", out.Uploaded).
			Int64("remote_version", out.RemoteVersion).
			Dur("duration", out.Duration).
			Msg("sync session converged")
	}
	return out
}

// pipeline runs reconcile, fetch, apply, upload and commit. Cancellation is
// observed between stages and between pages.
func (o *orchestrator) pipeline(ctx context.Context, e *layerEntry, progress *sessionProgress, out *models.SyncOutcome) error {
	c := e.store

	if err := c.SetStatus(ctx, models.StatusSynchronizing, ""); err != nil {
		return mapStoreError(e.id, models.StageReconcile, err)
	}
	rep, err := c.Replica(ctx)
	if err != nil {
		return mapStoreError(e.id, models.StageReconcile, err)
	}
	e.replica.Store(&rep)

	plan, err := o.reconciler.Gate(withStage(ctx, progress, models.StageReconcile), rep)
	if err != nil {
		return err
	}
	out.Decision = plan.Decision
	progress.report(models.StageReconcile, 1)

	if err = ctx.Err(); err != nil {
		return err
	}

	if plan.Decision == models.DecisionSnapshot {
		err = o.loadSnapshot(ctx, e, progress, plan, out)
	} else {
		err = o.catchUp(ctx, e, progress, rep.RemoteVersion, out)
	}
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}
	if rep, err = c.Replica(ctx); err != nil {
		return mapStoreError(e.id, models.StageUpload, err)
	}

	report, err := o.uploader.Upload(withStage(ctx, progress, models.StageUpload), c, rep)
	out.Uploaded = report.Uploaded
	out.Rejected = report.RejectedIDs()
	if err != nil {
		return err
	}
	progress.report(models.StageUpload, 1)

	if err = ctx.Err(); err != nil {
		return err
	}

	withStage(ctx, progress, models.StageCommit)
	return o.reconciler.Commit(ctx, c, models.SessionCommit{
		RemoteVersion: max(report.RemoteVersion, rep.RemoteVersion),
		Versioning:    plan.Versioning,
	})
}

func (o *orchestrator) loadSnapshot(ctx context.Context, e *layerEntry, progress *sessionProgress, plan ReconcilePlan, out *models.SyncOutcome) error {
	log := logger.FromContext(ctx)

	snap, err := o.fetcher.Snapshot(withStage(ctx, progress, models.StageFetch), e.id)
	if err != nil {
		return err
	}
	if snap.Fingerprint != plan.Remote.Fingerprint || snap.Versioning != plan.Versioning {
		return syncerr.Structural(models.StageFetch, "remote layer changed while the snapshot was taken")
	}
	progress.report(models.StageFetch, 1)

	if err = ctx.Err(); err != nil {
		return err
	}

	if err = o.applier.LoadSnapshot(withStage(ctx, progress, models.StageApply), e.store, snap); err != nil {
		return err
	}
	out.Applied = len(snap.Features)
	progress.report(models.StageApply, 1)

	log.Info().Str("func", "*orchestrator.loadSnapshot").
		Str("reason", plan.Reason).
		Int64("version", snap.Version).
		Int("features", len(snap.Features)).
		Msg("replica rebuilt from snapshot")
	return nil
}

func (o *orchestrator) catchUp(ctx context.Context, e *layerEntry, progress *sessionProgress, since int64, out *models.SyncOutcome) error {
	fetchCtx := withStage(ctx, progress, models.StageFetch)

	for pages := 1; ; pages++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		page, err := o.fetcher.FetchPage(fetchCtx, e.id, since)
		if err != nil {
			return err
		}
		if page.HasMore && page.ToVersion <= since {
			return syncerr.Structural(models.StageFetch,
				fmt.Sprintf("remote page after %d does not advance the version", since))
		}

		res, err := o.applier.Apply(ctx, e.store, page)
		out.Applied += res.Count
		if err != nil {
			if res.Kind == models.ApplyDataConflict {
				out.Discarded = res.FeatureIDs
			}
			return err
		}

		since = max(since, page.ToVersion)
		if !page.HasMore {
			break
		}
		reportProgress(fetchCtx, float64(pages)/float64(pages+1))
	}

	progress.report(models.StageFetch, 1)
	progress.report(models.StageApply, 1)
	return nil
}
