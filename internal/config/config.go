// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the service fails fast on bad or missing config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Accept the storage credentials under their original names
//     (SUPABASE_URL, SUPABASE_SERVICE_ROLE_KEY).
//   - Validate required values, including driver-specific blocks.
//   - Provide defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the SHOPPING_ prefix. Keys are lowercased, the
	prefix is removed and a double underscore marks nesting:

	  SHOPPING_SERVER__PORT           -> server.port
	  SHOPPING_STORAGE__DRIVER        -> storage.driver
	  SHOPPING_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	Single underscores stay inside a key name (read_timeout, ssl_mode).
*/

const (
	envPrefix      = "SHOPPING_"
	supabasePrefix = "SUPABASE_"
)

// Storage drivers.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverMemory    = "memory"
)

// Config is the root configuration object for the application.
//
// Database is only required when Storage.Driver is "postgres".
// Observability starts from DefaultObservabilityConfig, so env vars only
// need to name the keys they change.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Storage       StorageConfig        `koanf:"storage" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database" validate:"-"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the allowed requests per second per client IP.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// StorageConfig selects and configures the item store.
//
// URL and ServiceRoleKey address the managed table store (PostgREST) and
// are only required for the "postgrest" driver.
type StorageConfig struct {
	Driver         string        `koanf:"driver" validate:"required,oneof=postgrest postgres memory"`
	URL            string        `koanf:"url" validate:"required_if=Driver postgrest"`
	ServiceRoleKey string        `koanf:"service_role_key" validate:"required_if=Driver postgrest"`
	Table          string        `koanf:"table" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// defaultConfig returns the values used for every key the environment
// leaves unset. koanf only overwrites fields it finds a key for.
func defaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Storage: StorageConfig{
			Driver:  DriverPostgREST,
			Table:   "shopping",
			Timeout: 10 * time.Second,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey maps SHOPPING_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
}

// envValue maps a SHOPPING_ variable to its koanf key and value.
// Comma separated values become lists (e.g. cors_allowed_origins).
func envValue(key, value string) (string, interface{}) {
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return envKey(key), parts
	}
	return envKey(key), value
}

// supabaseKey maps the original storage variables onto storage.* keys.
// Any other SUPABASE_ variable is dropped.
func supabaseKey(s string) string {
	switch s {
	case "SUPABASE_URL":
		return "storage.url"
	case "SUPABASE_SERVICE_ROLE_KEY":
		return "storage.service_role_key"
	default:
		return ""
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies observability defaults, and returns it.
//
// Behavior summary:
//   - Loads SUPABASE_URL / SUPABASE_SERVICE_ROLE_KEY first
//   - Loads SHOPPING_ vars on top, so they win on conflict
//   - Unmarshals into Config pre-filled with defaults
//   - Validates struct tags and driver-specific blocks
//   - Sets default observability if missing and validates it
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(supabasePrefix, ".", supabaseKey), nil); err != nil {
		return nil, fmt.Errorf("could not load storage env variables: %w", err)
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := defaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The database block is only meaningful for the postgres driver.
	if mainConfig.Storage.Driver == DriverPostgres {
		if mainConfig.Database == nil {
			return nil, fmt.Errorf("config validation failed: database config is required for the %q driver", DriverPostgres)
		}
		if err := validate.Struct(mainConfig.Database); err != nil {
			return nil, fmt.Errorf("database config validation failed: %w", err)
		}
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed and environment always follows primary.env so
	// logs and traces are tagged consistently.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
