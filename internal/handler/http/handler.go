package http

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-geo-sync/internal/crypto"
	"github.com/MKhiriev/go-geo-sync/internal/logger"
	"github.com/MKhiriev/go-geo-sync/internal/service"
)

// Handler serves the Web GIS delta API.
type Handler struct {
	services *service.Services
	signer   crypto.Signer

	logger *logger.Logger
}

// NewHandler builds the server handler. Uploads are checked against an HMAC
// of hashKey; an empty key disables the check.
func NewHandler(services *service.Services, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		signer:   crypto.NewSigner(hashKey),
		logger:   logger,
	}
}

// ControlHandler serves the host control API of the sync client.
type ControlHandler struct {
	client   *service.ClientServices
	gatherer prometheus.Gatherer

	logger *logger.Logger
}

// NewControlHandler builds the control handler. gatherer backs /metrics.
func NewControlHandler(client *service.ClientServices, gatherer prometheus.Gatherer, logger *logger.Logger) *ControlHandler {
	logger.Info().Msg("control handler created")
	return &ControlHandler{
		client:   client,
		gatherer: gatherer,
		logger:   logger,
	}
}
