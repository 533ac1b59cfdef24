package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may finish.
const shutdownTimeout = 15 * time.Second

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

// newHTTPServer wraps handler. A positive timeout bounds reading headers and
// the request body; writes are not limited because sync requests and the
// progress stream run for the length of a session.
func newHTTPServer(handler http.Handler, addr string, timeout time.Duration, log *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: timeout,
			ReadTimeout:       timeout,
			IdleTimeout:       2 * timeout,
		},
		logger: log,
	}
}

func (h *httpServer) RunServer() error {
	h.logger.Info().Str("address", h.server.Addr).Msg("HTTP server listening")
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *httpServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "*httpServer.Shutdown").Msg("HTTP server shutdown")
	}
}
