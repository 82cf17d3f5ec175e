package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/handler"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/logger"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/repository"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/router"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/server"
	"github.com/HarshiV3008/Assignment-2-Backend/internal/service"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// The logger is configured from cfg, so use a bare one here.
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Fatal().Err(err).Msg("failed to initialize New Relic")
	}

	log := logger.NewLogger(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repositories")
	}

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
