package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/cache"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

type ClientServices struct {
	Orchestrator SyncOrchestrator
	SyncJob      SyncJob
	Progress     *ProgressHub
	Metrics      *Metrics
}

func NewClientServices(location cache.Location, remote adapter.RemoteAdapter, cfg config.ClientSync, reg prometheus.Registerer, log *logger.Logger) *ClientServices {
	progress := NewProgressHub()
	metrics := NewMetrics(reg)
	orchestrator := NewSyncOrchestrator(location, remote, cfg, metrics, progress, log)

	return &ClientServices{
		Orchestrator: orchestrator,
		SyncJob:      NewSyncJob(orchestrator, log),
		Progress:     progress,
		Metrics:      metrics,
	}
}
