package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-geo-sync/internal/store"
	"github.com/MKhiriev/go-geo-sync/internal/syncerr"
	"github.com/MKhiriev/go-geo-sync/models"
)

type applier struct{}

func NewApplier() Applier {
	return &applier{}
}

func (a *applier) Apply(ctx context.Context, c store.ContainerStore, page models.DeltaPage) (models.ApplyResult, error) {
	res, err := c.ApplyRemoteDeltas(ctx, page)
	if err != nil {
		return models.ApplyResult{}, mapStoreError(c.LayerID(), models.StageApply, err)
	}

	switch res.Kind {
	case models.ApplyStructuralConflict:
		return res, syncerr.Structural(models.StageApply, res.Reason)
	case models.ApplyDataConflict:
		return res, syncerr.Data(models.StageApply,
			fmt.Sprintf("remote changes replaced %d locally edited features", len(res.FeatureIDs)),
			res.FeatureIDs)
	}
	return res, nil
}

func (a *applier) LoadSnapshot(ctx context.Context, c store.ContainerStore, snapshot models.Snapshot) error {
	if err := c.LoadSnapshot(ctx, snapshot); err != nil {
		return mapStoreError(c.LayerID(), models.StageApply, err)
	}
	return nil
}
