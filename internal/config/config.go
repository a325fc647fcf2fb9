// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Export   ExportConfig
	Schedule ScheduleConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 0,
	// disabled, since large report downloads can take a while)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 120s,
	// since an export run fetches 17 tables before responding)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

// StoreConfig holds remote data-store settings.
type StoreConfig struct {
	// Backend selects the fetcher implementation: "supabase" or "postgres"
	Backend string `env:"STORE_BACKEND" default:"supabase"`

	// SupabaseURL is the project base URL (required for the supabase backend)
	SupabaseURL string `env:"SUPABASE_URL"`

	// SupabaseKey is the service-role or anon API key
	SupabaseKey string `env:"SUPABASE_KEY" envAlt:"SUPABASE_API_KEY"`

	// FetchTimeout bounds a single table fetch HTTP call (default: 30s)
	FetchTimeout time.Duration `env:"STORE_FETCH_TIMEOUT" default:"30s"`

	// DatabaseURL is the Postgres connection string (required for the
	// postgres backend). Supports both DATABASE_URL and DB_URL.
	DatabaseURL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of pooled connections (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`
}

// ExportConfig holds export pipeline settings.
type ExportConfig struct {
	// OutputDir is where server-side export runs write artifacts (default: ./exports)
	OutputDir string `env:"EXPORT_OUTPUT_DIR" default:"exports"`

	// ProductPrefix names the exporting product in artifact filenames (default: karobar)
	ProductPrefix string `env:"EXPORT_PRODUCT_PREFIX" default:"karobar"`

	// Currency is the display symbol reports render amounts with (default: ₹)
	Currency string `env:"EXPORT_CURRENCY" default:"₹"`

	// MaxUploadSize caps re-hydration uploads in bytes (default: 50MB)
	MaxUploadSize int64 `env:"EXPORT_MAX_UPLOAD_SIZE" default:"52428800"`
}

// ScheduleConfig holds settings for unattended periodic backups.
type ScheduleConfig struct {
	// Enabled turns the background backup scheduler on (default: false)
	Enabled bool `env:"SCHEDULE_ENABLED" default:"false"`

	// Interval is how often a scheduled backup runs (default: 24h)
	Interval time.Duration `env:"SCHEDULE_INTERVAL" default:"24h"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 60)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"60"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
