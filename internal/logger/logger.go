// Package logger configures the application's logging,
// monitoring, and observability.
//
// It uses *ZeroLog* for logging and integrates with
// *New Relic* to instrument the codebase, forwarding logs,
// metrics, and traces for debugging
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HarshiV3008/Assignment-2-Backend/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// LoggerService owns the optional New Relic application.
//
// A nil application means New Relic is disabled; every caller checks
// GetApplication() != nil before instrumenting.
type LoggerService struct {
	nrApp *newrelic.Application
}

// NewLoggerService starts the New Relic application when a license key is
// configured. Without a key it returns a service with no application.
func NewLoggerService(cfg *config.ObservabilityConfig) (*LoggerService, error) {
	service := &LoggerService{}

	if !cfg.NewRelicEnabled() {
		return service, nil
	}

	options := []newrelic.ConfigOption{
		newrelic.ConfigAppName(cfg.ServiceName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigAppLogForwardingEnabled(cfg.NewRelic.AppLogForwardingEnabled),
		newrelic.ConfigDistributedTracerEnabled(cfg.NewRelic.DistributedTracingEnabled),
		newrelic.ConfigEnabled(true),
	}

	// Agent debug output goes to stdout; only useful while diagnosing the agent itself.
	if cfg.NewRelic.DebugLogging {
		options = append(options, newrelic.ConfigDebugLogger(os.Stdout))
	}

	app, err := newrelic.NewApplication(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize New Relic: %w", err)
	}

	service.nrApp = app
	return service, nil
}

// GetApplication returns the New Relic application, or nil when disabled.
func (ls *LoggerService) GetApplication() *newrelic.Application {
	if ls == nil {
		return nil
	}
	return ls.nrApp
}

// Shutdown flushes and stops the New Relic application, if any.
func (ls *LoggerService) Shutdown() {
	if app := ls.GetApplication(); app != nil {
		app.Shutdown(10 * time.Second)
	}
}

// NewLogger builds the root application logger.
//
//   - level comes from cfg.GetLogLevel()
//   - production (or format=json) writes JSON, otherwise a console writer
//   - when New Relic is enabled, JSON output is routed through the
//     zerolog writer so logs are forwarded and decorated with linking metadata
func NewLogger(cfg *config.ObservabilityConfig, loggerService *LoggerService) zerolog.Logger {
	return NewLoggerWithWriter(cfg, loggerService, os.Stdout)
}

// NewLoggerWithWriter is NewLogger with an explicit output, used by tests.
func NewLoggerWithWriter(cfg *config.ObservabilityConfig, loggerService *LoggerService, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var writer io.Writer = out
	switch {
	case cfg.Logging.Format == "console" && !cfg.IsProduction():
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	case loggerService.GetApplication() != nil:
		writer = zerologWriter.New(out, loggerService.GetApplication())
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()
}

// WithTraceContext adds New Relic trace.id and span.id to the logger so log
// lines can be correlated with distributed traces.
func WithTraceContext(logger zerolog.Logger, txn *newrelic.Transaction) zerolog.Logger {
	if txn == nil {
		return logger
	}

	metadata := txn.GetLinkingMetadata()
	return logger.With().
		Str("trace.id", metadata.TraceID).
		Str("span.id", metadata.SpanID).
		Logger()
}

// NewPgxLogger builds the console logger used for pgx query tracing in local env.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("component", "database").
		Logger()
}

// GetPgxTraceLogLevel converts a zerolog level to the matching pgx tracelog level.
func GetPgxTraceLogLevel(level zerolog.Level) int {
	switch level {
	case zerolog.TraceLevel:
		return int(tracelog.LogLevelTrace)
	case zerolog.DebugLevel:
		return int(tracelog.LogLevelDebug)
	case zerolog.InfoLevel:
		return int(tracelog.LogLevelInfo)
	case zerolog.WarnLevel:
		return int(tracelog.LogLevelWarn)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return int(tracelog.LogLevelError)
	default:
		return int(tracelog.LogLevelNone)
	}
}
