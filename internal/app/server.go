package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/packing-report/config"
	"github.com/rs/zerolog/log"
)

const (
	baseReadTimeout   = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 60 * time.Second
	// writeMargin is added to the request timeout so a 504 can still be sent.
	writeMargin            = 30 * time.Second
	defaultWriteTimeout    = 90 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	// minUploadRate is the slowest client an upload of MaxUploadBytes is
	// given time for, in bytes per second.
	minUploadRate = 1 << 20
)

// Server wraps http.Server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer creates a Server whose timeouts follow the upload limit and the
// analysis request timeout.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout(cfg.MaxUploadBytes),
			WriteTimeout:      writeTimeout(cfg.RequestTimeout),
			IdleTimeout:       idleTimeout,
			MaxHeaderBytes:    1 << 20,
		},
		shutdownTimeout: max(defaultShutdownTimeout, cfg.RequestTimeout),
	}
}

// readTimeout allows a base64 encoded upload of maxUpload bytes to arrive
// at minUploadRate.
func readTimeout(maxUpload int64) time.Duration {
	if maxUpload <= 0 {
		return baseReadTimeout
	}
	encoded := (maxUpload + 2) / 3 * 4
	return baseReadTimeout + time.Duration(encoded/minUploadRate)*time.Second
}

func writeTimeout(requestTimeout time.Duration) time.Duration {
	if requestTimeout <= 0 {
		return defaultWriteTimeout
	}
	return requestTimeout + writeMargin
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", s.httpServer.Addr).
			Dur("read_timeout", s.httpServer.ReadTimeout).
			Dur("write_timeout", s.httpServer.WriteTimeout).
			Msg("Server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		log.Info().Msg("Received signal, draining in-flight analyses")
	}
	return s.Shutdown()
}

// Shutdown waits up to the shutdown timeout for in-flight requests.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server stopped gracefully")
	return nil
}
