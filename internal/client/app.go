package client

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MKhiriev/go-geo-sync/internal/adapter"
	"github.com/MKhiriev/go-geo-sync/internal/cache"
	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/handler"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/server"
	"github.com/MKhiriev/go-geo-sync/internal/service"
	"github.com/MKhiriev/go-geo-sync/internal/workers"
)

type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	server   server.Server
	workers  *workers.Workers
	logger   *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	remote, err := adapter.NewHTTPRemoteAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create remote adapter: %w", err)
	}

	dir, err := cache.NewDir(cfg.Containers, log)
	if err != nil {
		return nil, fmt.Errorf("create container cache: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	services := service.NewClientServices(dir, remote, cfg.Sync, reg, log)

	handlers, err := handler.NewClientHandlers(services, reg, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("create control handlers: %w", err)
	}

	srv, err := server.NewServer(handlers.Control.Init(), cfg.ControlAddress, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		return nil, fmt.Errorf("create control server: %w", err)
	}

	return &App{
		cfg:      cfg,
		services: services,
		server:   srv,
		workers:  workers.NewWorkers(dir.SweepWorker(cfg.Containers.SweepInterval)),
		logger:   log,
	}, nil
}

// Run attaches the configured layers and serves the control API until ctx
// is done or a stop signal arrives. Layers that fail to attach are logged
// and skipped; the host can attach them later.
func (a *App) Run(ctx context.Context) error {
	for _, layerID := range a.cfg.Sync.Layers {
		replica, err := a.services.Orchestrator.Attach(ctx, layerID)
		if err != nil {
			a.logger.Err(err).Str("func", "*App.Run").Str("layer_id", layerID).Msg("failed to attach layer")
			continue
		}
		a.logger.Info().Str("layer_id", layerID).
			Stringer("status", replica.Status).
			Int("pending", replica.PendingCount).
			Msg("layer attached")
	}

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// first sync right away, then on the job interval
	a.workers.Add(workers.WorkerFunc(func(ctx context.Context) {
		a.services.Orchestrator.SyncAll(ctx)
	}))
	a.workers.Run(bgCtx)
	a.services.SyncJob.Start(bgCtx, a.cfg.Sync.Interval)

	err := a.server.RunServer(ctx)

	cancel()
	a.services.SyncJob.Stop()
	a.workers.Wait()

	if cerr := a.services.Orchestrator.Close(); cerr != nil {
		a.logger.Err(cerr).Str("func", "*App.Run").Msg("failed to close containers")
	}
	return err
}
