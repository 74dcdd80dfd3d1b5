// Package config loads service configuration from the environment, with
// optional .env file support.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Timeouts  TimeoutConfig
	Logging   LoggingConfig
	App       AppConfig
	Amadeus   AmadeusConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig bounds a whole search and each upstream round trip.
type TimeoutConfig struct {
	Search   time.Duration `env:"TIMEOUT_SEARCH" envDefault:"10s"`
	Upstream time.Duration `env:"TIMEOUT_UPSTREAM" envDefault:"8s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`

	// UseMockData skips the Amadeus API entirely.
	UseMockData bool `env:"USE_MOCK_DATA" envDefault:"false"`

	// MockLatency delays mock responses to mimic a network round trip.
	MockLatency time.Duration `env:"MOCK_LATENCY" envDefault:"0s"`
}

// AmadeusConfig holds the upstream API endpoint and credentials.
// Empty credentials make the service run on mock data.
type AmadeusConfig struct {
	BaseURL   string `env:"AMADEUS_BASE_URL" envDefault:"https://test.api.amadeus.com"`
	APIKey    string `env:"AMADEUS_API_KEY"`
	APISecret string `env:"AMADEUS_API_SECRET"`
}

// RateLimitConfig is the outbound token bucket for the upstream API.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"UPSTREAM_RPS" envDefault:"10"`
	Burst             int     `env:"UPSTREAM_BURST" envDefault:"10"`
}

// CacheConfig holds the search-result cache settings.
type CacheConfig struct {
	Enabled       bool          `env:"CACHE_ENABLED" envDefault:"false"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "console": true}
	validEnvs    = map[string]bool{"development": true, "staging": true, "production": true}
)

// validate reports every invalid setting at once.
func validate(cfg *Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(cfg.Server.Port >= 1 && cfg.Server.Port <= 65535,
		"SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	check(cfg.Server.ReadTimeout > 0, "SERVER_READ_TIMEOUT must be positive")
	check(cfg.Server.WriteTimeout > 0, "SERVER_WRITE_TIMEOUT must be positive")
	check(cfg.Server.ShutdownTimeout > 0, "SERVER_SHUTDOWN_TIMEOUT must be positive")

	check(cfg.Timeouts.Search > 0, "TIMEOUT_SEARCH must be positive")
	check(cfg.Timeouts.Upstream > 0, "TIMEOUT_UPSTREAM must be positive")
	if cfg.Timeouts.Search > 0 && cfg.Timeouts.Upstream > 0 {
		check(cfg.Timeouts.Upstream <= cfg.Timeouts.Search,
			"TIMEOUT_UPSTREAM (%s) must not exceed TIMEOUT_SEARCH (%s)", cfg.Timeouts.Upstream, cfg.Timeouts.Search)
	}

	check(validLevels[cfg.Logging.Level],
		"LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	check(validFormats[cfg.Logging.Format],
		"LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	check(validEnvs[cfg.App.Env],
		"APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	check(cfg.App.MockLatency >= 0, "MOCK_LATENCY cannot be negative")

	check(cfg.Amadeus.BaseURL != "", "AMADEUS_BASE_URL is required")
	check((cfg.Amadeus.APIKey == "") == (cfg.Amadeus.APISecret == ""),
		"AMADEUS_API_KEY and AMADEUS_API_SECRET must be set together")

	check(cfg.RateLimit.RequestsPerSecond >= 0, "UPSTREAM_RPS cannot be negative")
	check(cfg.RateLimit.Burst >= 1, "UPSTREAM_BURST must be at least 1, got %d", cfg.RateLimit.Burst)

	if cfg.Cache.Enabled {
		check(cfg.Cache.RedisAddr != "", "REDIS_ADDR is required when CACHE_ENABLED is true")
		check(cfg.Cache.RedisDB >= 0 && cfg.Cache.RedisDB <= 15, "REDIS_DB must be between 0 and 15, got %d", cfg.Cache.RedisDB)
		check(cfg.Cache.TTL > 0, "CACHE_TTL must be positive")
	}

	return errors.Join(errs...)
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// UseAmadeus reports whether searches should try the Amadeus API first.
func (c *Config) UseAmadeus() bool {
	return !c.App.UseMockData && c.Amadeus.APIKey != "" && c.Amadeus.APISecret != ""
}
