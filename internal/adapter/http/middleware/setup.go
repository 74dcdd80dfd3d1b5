package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// Config holds the middleware settings applied by SetupWithConfig.
type Config struct {
	Recovery RecoveryConfig

	// AllowOrigins lists CORS origins; empty disables CORS handling
	AllowOrigins []string

	// BodyLimit caps request bodies (e.g., "2M"); empty disables the limit
	BodyLimit string
}

// DefaultConfig returns the middleware configuration used by Setup.
func DefaultConfig() Config {
	return Config{
		Recovery:  DefaultRecoveryConfig(),
		BodyLimit: "2M",
	}
}

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Recover - Third, catches panics and returns 500 (wraps handlers)
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithConfig(e, log, DefaultConfig())
}

// SetupWithConfig registers middleware with custom configuration.
// CORS and the body limit, when enabled, run after recovery.
func SetupWithConfig(e *echo.Echo, log zerolog.Logger, cfg Config) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(RecoverWithConfig(log, cfg.Recovery))

	if len(cfg.AllowOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:  cfg.AllowOrigins,
			AllowHeaders:  []string{echo.HeaderContentType, RequestIDHeader},
			ExposeHeaders: []string{RequestIDHeader},
		}))
	}
	if cfg.BodyLimit != "" {
		e.Use(echomw.BodyLimit(cfg.BodyLimit))
	}
}
