package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-geo-sync/internal/config"
	"github.com/MKhiriev/go-geo-sync/internal/handler/http"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/service"
)

// Handlers holds the HTTP handlers of one binary. The Web GIS server fills
// HTTP, the sync client fills Control.
type Handlers struct {
	HTTP    *http.Handler
	Control *http.ControlHandler
}

func NewServerHandlers(services *service.Services, cfg *config.ServerConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if services == nil || cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, cfg.HashKey, logger)}, nil
}

func NewClientHandlers(client *service.ClientServices, gatherer prometheus.Gatherer, cfg *config.ClientConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating control handlers...")

	if client == nil || cfg.ControlAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{Control: http.NewControlHandler(client, gatherer, logger)}, nil
}
