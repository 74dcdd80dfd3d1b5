package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all flight offer API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *OfferHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no group middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchOffers)
	flights.POST("/refine", h.RefineOffers)

	api.GET("/airports", h.SearchAirports)
}
