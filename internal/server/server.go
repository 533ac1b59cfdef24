package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-geo-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer serves handler on addr.
func NewServer(handler http.Handler, addr string, timeout time.Duration, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handler == nil || addr == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler, addr, timeout, logger),
		logger:     logger,
	}, nil
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	select {
	case err := <-serveErr:
		// listener failed before any stop request
		return err
	case <-ctx.Done():
	}

	s.Shutdown()
	if err := <-serveErr; err != nil {
		return err
	}
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
