package config

import (
	"fmt"
	"time"
)

// ServiceName identifies this service in logs, traces and APM dashboards.
const ServiceName = "shopping"

// HealthCheckStorage pings the configured item store. It is the only
// health check the service knows.
const HealthCheckStorage = "storage"

// ObservabilityConfig groups all configuration related to telemetry and runtime visibility:
//   - logging settings (format, level, thresholds)
//   - APM/tracing provider settings (New Relic)
//   - health check settings
type ObservabilityConfig struct {
	// ServiceName is forced to ServiceName by LoadConfig.
	ServiceName string `koanf:"service_name" validate:"required"`

	// Environment is forced to primary.env by LoadConfig.
	Environment string `koanf:"environment" validate:"required"`

	Logging      LoggingConfig      `koanf:"logging" validate:"required"`
	NewRelic     NewRelicConfig     `koanf:"new_relic"`
	HealthChecks HealthChecksConfig `koanf:"health_checks"`
}

// LoggingConfig holds application logging configuration.
type LoggingConfig struct {
	// Level is the verbosity threshold (debug/info/warn/error).
	Level string `koanf:"level" validate:"required"`

	// Format selects the output format for logs ("json" or "console").
	Format string `koanf:"format" validate:"required"`

	// SlowQueryThreshold marks store calls slower than this as slow in logs.
	// Env values are duration strings like "100ms" or "1s".
	SlowQueryThreshold time.Duration `koanf:"slow_query_threshold"`
}

// NewRelicConfig holds configuration for New Relic APM and tracing.
//
// An empty LicenseKey disables New Relic entirely.
type NewRelicConfig struct {
	LicenseKey                string `koanf:"license_key"`
	AppLogForwardingEnabled   bool   `koanf:"app_log_forwarding_enabled"`
	DistributedTracingEnabled bool   `koanf:"distributed_tracing_enabled"`
	DebugLogging              bool   `koanf:"debug_logging"`
}

// HealthChecksConfig controls the /status endpoint.
type HealthChecksConfig struct {
	Enabled bool `koanf:"enabled"`

	// Timeout bounds each dependency ping.
	Timeout time.Duration `koanf:"timeout" validate:"min=1s"`

	// Checks names the dependencies to probe. Only "storage" is known.
	Checks []string `koanf:"checks"`
}

// DefaultObservabilityConfig provides the defaults used when nothing is configured.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		ServiceName: ServiceName,
		Environment: "development",
		Logging: LoggingConfig{
			Level:              "info",
			Format:             "json",
			SlowQueryThreshold: 100 * time.Millisecond,
		},
		NewRelic: NewRelicConfig{
			LicenseKey:                "",
			AppLogForwardingEnabled:   true,
			DistributedTracingEnabled: true,
			DebugLogging:              false,
		},
		HealthChecks: HealthChecksConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Checks:  []string{HealthCheckStorage},
		},
	}
}

// Validate applies rules that go beyond struct tags (enums, ranges).
func (c *ObservabilityConfig) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s (must be one of: json, console)", c.Logging.Format)
	}

	if c.Logging.SlowQueryThreshold < 0 {
		return fmt.Errorf("logging slow_query_threshold must be non-negative")
	}

	if c.HealthChecks.Enabled {
		if c.HealthChecks.Timeout <= 0 {
			return fmt.Errorf("health_checks timeout must be positive")
		}
		for _, name := range c.HealthChecks.Checks {
			if name != HealthCheckStorage {
				return fmt.Errorf("unknown health check: %s (must be one of: %s)", name, HealthCheckStorage)
			}
		}
	}

	return nil
}

// GetLogLevel returns the effective log level to use at runtime.
//
// An unset level defaults to "info" in production and "debug" in development.
func (c *ObservabilityConfig) GetLogLevel() string {
	switch c.Environment {
	case "production":
		if c.Logging.Level == "" {
			return "info"
		}
	case "development":
		if c.Logging.Level == "" {
			return "debug"
		}
	}
	return c.Logging.Level
}

// IsProduction reports whether the application is running in production mode.
func (c *ObservabilityConfig) IsProduction() bool {
	return c.Environment == "production"
}

// NewRelicEnabled reports whether a New Relic license key is configured.
func (c *ObservabilityConfig) NewRelicEnabled() bool {
	return c.NewRelic.LicenseKey != ""
}
