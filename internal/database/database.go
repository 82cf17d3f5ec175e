// Package database contains the logic for establishing
// connections to the PostgreSQL database used by the postgres storage
// driver.
//
// It handles:
//   - building a DSN from config
//   - creating a pgx connection pool (pgxpool) with the configured limits
//   - wiring query tracing/logging (pgx tracelog)
//   - optional New Relic instrumentation (nrpgx5)
package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	loggerConfig "github.com/HarshiV3008/Assignment-2-Backend/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the pgx connection pool and a logger.
type Database struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans each query trace out to several pgx tracers.
//
// pgx has a single Tracer slot; this lets the New Relic tracer and the
// local tracelog tracer both run.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		ctx = tracer.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		tracer.TraceQueryEnd(ctx, conn, data)
	}
}

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// DSN builds the postgres URL for cfg. The password is escaped so
// characters like ':' and '@' survive.
func DSN(cfg *config.DatabaseConfig) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		cfg.SSLMode,
	)
}

// poolConfig parses the DSN and applies the pool limits from cfg.
func poolConfig(cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.MaxIdleConns, cfg.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleTime) * time.Second

	return pgxPoolConfig, nil
}

// New creates a PostgreSQL connection pool with instrumentation and pings it.
//
//   - New Relic tracing is attached when the agent is enabled
//   - in the local env every query is also logged through pgx-zerolog
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("database config is missing")
	}

	pgxPoolConfig, err := poolConfig(cfg.Database)
	if err != nil {
		return nil, err
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Int32("max_conns", pgxPoolConfig.MaxConns).
		Msg("connected to the database")

	return &Database{Pool: pool, log: logger}, nil
}

// Close closes the database connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
