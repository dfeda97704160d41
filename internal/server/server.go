// Package server wraps http.Server with graceful shutdown for the demo
// host.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Server runs an http.Server until SIGTERM/SIGINT, then drains in-flight
// requests before returning.
type Server struct {
	httpServer   *http.Server
	drainTimeout time.Duration
	logger       *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Addr         string // listen address, e.g. ":8080"
	Handler      http.Handler
	DrainTimeout time.Duration // max time to wait for in-flight requests
	Logger       *slog.Logger
}

// New creates a server with graceful shutdown support.
func New(cfg Config) *Server {
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Addr,
			Handler: cfg.Handler,
		},
		drainTimeout: cfg.DrainTimeout,
		logger:       cfg.Logger,
	}
}

// ListenAndServe starts the server and blocks until shutdown completes:
// wait for a signal, stop accepting connections, let in-flight requests
// finish up to the drain timeout, return.
func (s *Server) ListenAndServe() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-errCh:
		return err // server failed to start
	case sig := <-sigCh:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	}

	s.logger.Info("draining connections", "timeout", s.drainTimeout.String())

	ctx, cancel := context.WithTimeout(context.Background(), s.drainTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error, forcing close", "error", err)
		s.httpServer.Close()
	}

	s.logger.Info("shutdown complete")
	return nil
}
