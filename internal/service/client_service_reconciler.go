package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/models"
)

type reconciler struct {
	adapter adapter.RemoteAdapter
	retry   RetryPolicy
}

func NewReconciler(remote adapter.RemoteAdapter, retry RetryPolicy) Reconciler {
	return &reconciler{adapter: remote, retry: retry}
}

func (r *reconciler) Gate(ctx context.Context, replica models.LayerReplica) (ReconcilePlan, error) {
	log := logger.FromContext(ctx)

	var plan ReconcilePlan
	err := r.retry.do(ctx, func(ctx context.Context) error {
		var err error
		if plan.Remote, err = r.adapter.Schema(ctx, replica.LayerID); err != nil {
			return err
		}
		plan.Versioning, err = r.adapter.VersioningState(ctx, replica.LayerID)
		return err
	})
	if err != nil {
		return ReconcilePlan{}, mapAdapterError(models.StageReconcile, err)
	}

	if !replica.Initialized() {
		if !plan.Versioning.Enabled {
			return ReconcilePlan{}, syncerr.Structural(models.StageReconcile, "remote layer versioning is disabled")
		}
		plan.Decision = models.DecisionSnapshot
		plan.Reason = "replica has no snapshot"
		return plan, nil
	}

	if err = r.structuralDrift(replica, plan); err != nil {
		log.Warn().Str("func", "*reconciler.Gate").
			Str("layer_id", replica.LayerID).
			Str("local_fingerprint", replica.SchemaFingerprint).
			Str("remote_fingerprint", plan.Remote.Fingerprint).
			Int64("local_epoch", replica.Versioning.Epoch).
			Int64("remote_epoch", plan.Versioning.Epoch).
			Msg("structural drift detected")
		return ReconcilePlan{}, err
	}

	if plan.Versioning.Epoch == replica.Versioning.Epoch+1 {
		// one reconfiguration and nothing to lose: rebuild from a snapshot
		plan.Decision = models.DecisionSnapshot
		plan.Reason = "remote versioning epoch changed"
		return plan, nil
	}

	plan.Decision = models.DecisionContinue
	return plan, nil
}

func (r *reconciler) structuralDrift(replica models.LayerReplica, plan ReconcilePlan) error {
	local, remote := replica.Versioning, plan.Versioning

	switch diff := remote.Epoch - local.Epoch; {
	case plan.Remote.Fingerprint != replica.SchemaFingerprint:
		return syncerr.Structural(models.StageReconcile, "remote schema fingerprint changed")
	case remote.Enabled != local.Enabled:
		return syncerr.Structural(models.StageReconcile,
			fmt.Sprintf("remote versioning flag changed to %t", remote.Enabled))
	case diff < 0:
		return syncerr.Structural(models.StageReconcile,
			fmt.Sprintf("remote epoch went back from %d to %d", local.Epoch, remote.Epoch))
	case diff > 1:
		return syncerr.Structural(models.StageReconcile,
			fmt.Sprintf("remote epoch changed %d times since last sync", diff))
	case diff == 1 && replica.PendingCount > 0:
		return syncerr.Structural(models.StageReconcile,
			fmt.Sprintf("remote epoch changed with %d local edits pending", replica.PendingCount))
	}
	return nil
}

func (r *reconciler) Commit(ctx context.Context, c store.ContainerStore, commit models.SessionCommit) error {
	if err := c.CommitSession(ctx, commit); err != nil {
		return mapStoreError(c.LayerID(), models.StageCommit, err)
	}
	return nil
}
