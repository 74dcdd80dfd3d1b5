// Package main is the entry point for the flight offer explorer service.
//
//	@title						Flight Offer Explorer API
//	@version					1.0.0
//	@description				Searches flight offers through the Amadeus API, with a deterministic mock fallback, and filters, sorts and summarises them for display.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-offer-explorer/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/flight-search/flight-offer-explorer/docs"

	offerhttp "github.com/flight-search/flight-offer-explorer/internal/adapter/http"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/provider/amadeus"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/provider/fallback"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/provider/mockdata"
	"github.com/flight-search/flight-offer-explorer/internal/config"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/cache"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

func main() {
	cfg := config.MustLoad()

	appLog := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Bool("amadeus", cfg.UseAmadeus()).
		Bool("cache", cfg.Cache.Enabled).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resultCache := setupCache(ctx, cfg)
	defer func() {
		if err := resultCache.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing cache")
		}
	}()

	provider, status := setupProvider(cfg, appLog)
	offerUseCase := usecase.NewOfferSearchUseCase(provider, resultCache, appLog, &usecase.Config{
		SearchTimeout: cfg.Timeouts.Search,
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	setupMiddleware(e, cfg, appLog)
	setupRoutes(e, offerhttp.NewOfferHandler(offerUseCase, status))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Str("provider", provider.Name()).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start server")
			stop()
		}
	}()

	<-ctx.Done()
	gracefulShutdown(e, cfg)
}

// setupLogger configures the global zerolog logger and returns the service logger.
func setupLogger(cfg *config.Config) *logger.Logger {
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.Logging.Level))

	appLog := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: logger.DefaultConfig().ServiceName,
	})
	log.Logger = appLog.Logger
	return appLog
}

// setupCache connects to Redis when caching is enabled. A failed connection
// degrades to no caching rather than stopping the service.
func setupCache(ctx context.Context, cfg *config.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.NewNoOpCache()
	}

	redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		TTL:      cfg.Cache.TTL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, search caching disabled")
		return cache.NewNoOpCache()
	}

	log.Info().Str("addr", cfg.Cache.RedisAddr).Dur("ttl", cfg.Cache.TTL).Msg("Search cache enabled")
	return redisCache
}

// setupProvider builds the offer provider chain: Amadeus falling back to mock
// data, or mock data alone when USE_MOCK_DATA is set.
func setupProvider(cfg *config.Config, appLog *logger.Logger) (domain.OfferProvider, offerhttp.ProviderStatus) {
	mock := mockdata.New(cfg.App.MockLatency)
	if cfg.App.UseMockData {
		log.Info().Msg("USE_MOCK_DATA set, serving mock offers")
		return mock, nil
	}

	limiter := ratelimit.New(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
	})

	client := amadeus.NewClient(amadeus.Config{
		BaseURL:   cfg.Amadeus.BaseURL,
		APIKey:    cfg.Amadeus.APIKey,
		APISecret: cfg.Amadeus.APISecret,
		Timeout:   cfg.Timeouts.Upstream,
	}, amadeus.WithLimiter(limiter), amadeus.WithLogger(appLog))

	chain := fallback.New(client, mock, appLog)
	return chain, chain
}

// setupMiddleware configures the Echo middleware stack.
func setupMiddleware(e *echo.Echo, cfg *config.Config, appLog *logger.Logger) {
	mwConfig := middleware.DefaultConfig()
	if cfg.IsDevelopment() {
		mwConfig.AllowOrigins = []string{"*"}
	}
	middleware.SetupWithConfig(e, appLog.WithComponent("http").Logger, mwConfig)
}

// setupRoutes configures the HTTP routes.
func setupRoutes(e *echo.Echo, h *offerhttp.OfferHandler) {
	offerhttp.RegisterRoutes(e, h)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown drains in-flight requests within the configured timeout.
func gracefulShutdown(e *echo.Echo, cfg *config.Config) {
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
