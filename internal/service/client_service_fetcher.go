package service

import (
	"context"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/models"
)

const defaultPageSize = 500

type fetcher struct {
	adapter  adapter.RemoteAdapter
	retry    RetryPolicy
	pageSize int
}

func NewFetcher(remote adapter.RemoteAdapter, retry RetryPolicy, pageSize int) Fetcher {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &fetcher{adapter: remote, retry: retry, pageSize: pageSize}
}

func (f *fetcher) FetchPage(ctx context.Context, layerID string, since int64) (models.DeltaPage, error) {
	var page models.DeltaPage
	err := f.retry.do(ctx, func(ctx context.Context) error {
		var err error
		page, err = f.adapter.FetchDeltas(ctx, layerID, since, f.pageSize)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fetcher.FetchPage").
			Int64("since", since).
			Msg("failed to fetch delta page")
		return models.DeltaPage{}, mapAdapterError(models.StageFetch, err)
	}
	return page, nil
}

func (f *fetcher) Snapshot(ctx context.Context, layerID string) (models.Snapshot, error) {
	var snap models.Snapshot
	err := f.retry.do(ctx, func(ctx context.Context) error {
		var err error
		snap, err = f.adapter.Snapshot(ctx, layerID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fetcher.Snapshot").Msg("failed to fetch snapshot")
		return models.Snapshot{}, mapAdapterError(models.StageFetch, err)
	}
	return snap, nil
}
