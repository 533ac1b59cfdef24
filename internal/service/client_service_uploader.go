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

const defaultUploadBatchSize = 200

type uploader struct {
	adapter   adapter.RemoteAdapter
	retry     RetryPolicy
	batchSize int
}

func NewUploader(remote adapter.RemoteAdapter, retry RetryPolicy, batchSize int) Uploader {
	if batchSize <= 0 {
		batchSize = defaultUploadBatchSize
	}
	return &uploader{adapter: remote, retry: retry, batchSize: batchSize}
}

func (u *uploader) Upload(ctx context.Context, c store.ContainerStore, replica models.LayerReplica) (UploadReport, error) {
	log := logger.FromContext(ctx)
	report := UploadReport{RemoteVersion: replica.RemoteVersion}

	pending, err := c.ListPendingLocalDeltas(ctx)
	if err != nil {
		return report, mapStoreError(c.LayerID(), models.StageUpload, err)
	}
	if len(pending) == 0 {
		return report, nil
	}

	// base only moves while the remote log holds nothing but our own records
	base, converged := replica.RemoteVersion, true

	for start := 0; start < len(pending); start += u.batchSize {
		if err = ctx.Err(); err != nil {
			return report, err
		}

		batch := pending[start:min(start+u.batchSize, len(pending))]

		var result models.UploadResult
		err = u.retry.do(ctx, func(ctx context.Context) error {
			var err error
			result, err = u.adapter.UploadDeltas(ctx, c.LayerID(), base, replica.SourceID, batch)
			return err
		})
		if err != nil {
			log.Err(err).Str("func", "*uploader.Upload").
				Int64("base", base).
				Int("batch", len(batch)).
				Msg("failed to upload delta batch")
			return report, mapAdapterError(models.StageUpload, err)
		}

		accepted := result.Accepted()
		acks := make([]models.UploadAck, 0, len(accepted))
		for _, o := range accepted {
			acks = append(acks, models.UploadAck{Seq: o.Seq, FeatureID: o.FeatureID, RemoteID: o.RemoteID})
		}
		if len(acks) > 0 {
			if err = c.MarkUploaded(ctx, acks); err != nil {
				return report, mapStoreError(c.LayerID(), models.StageUpload, err)
			}
		}

		report.Uploaded += len(acks)
		report.Rejected = append(report.Rejected, result.Rejected()...)

		if converged && result.Version == base+int64(len(acks)) {
			base = result.Version
		} else {
			converged = false
		}

		reportProgress(ctx, float64(start+len(batch))/float64(len(pending)))
	}

	if converged {
		report.RemoteVersion = base
	}

	if len(report.Rejected) > 0 {
		ids := report.RejectedIDs()
		log.Warn().Str("func", "*uploader.Upload").
			Strs("rejected", ids).
			Int("uploaded", report.Uploaded).
			Msg("remote rejected local edits")
		return report, syncerr.Data(models.StageUpload,
			fmt.Sprintf("remote rejected %d of %d local edits: %s",
				len(report.Rejected), len(pending), report.Rejected[0].Reason),
			ids)
	}
	return report, nil
}
