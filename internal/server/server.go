// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool (postgres storage driver only)
//   - Prometheus registry
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/database"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/metrics"
	"github.com/rs/zerolog"

	loggerPkg "github.com/HarshiV3008/Assignment-2-Backend/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger(s)
//   - the database pool, when storage runs on postgres
//   - the metrics registry
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application.
	// If New Relic is disabled it exists but holds a nil application.
	LoggerService *loggerPkg.LoggerService

	// DB is nil unless storage.driver is "postgres".
	DB *database.Database

	Metrics *metrics.Metrics

	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server. That is done in SetupHTTPServer + Start.
// The database pool is only opened (and pinged) for the postgres driver;
// the postgrest and memory drivers need no connection at startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		Metrics:       metrics.New(),
	}

	if cfg.Storage.Driver == config.DriverPostgres {
		db, err := database.New(cfg, logger, loggerService)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		server.DB = db
	}

	return server, nil
}

// SetupHTTPServer configures the internal net/http server.
// Config timeouts are whole seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server and blocks until it stops.
//
// It requires SetupHTTPServer to be called first. A clean Shutdown makes
// Start return http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("storage", s.Config.Storage.Driver).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// until ctx expires, then closes the database pool and the New Relic
// application.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	if s.LoggerService != nil {
		s.LoggerService.Shutdown()
	}

	return nil
}
