// Package middleware provides HTTP middleware for cross-cutting concerns.
package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// requestIDKey is the echo context key for storing request ID.
	requestIDKey = "request_id"
	// maxRequestIDLength bounds client-supplied IDs.
	maxRequestIDLength = 128
)

// RequestID returns middleware that generates or propagates request IDs.
// If the incoming request has a usable X-Request-ID header, it uses that value.
// Otherwise, it generates a new UUID.
// The ID is stored on the echo context, on the request's context.Context for
// logger.For, and in the response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqID := c.Request().Header.Get(RequestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLength {
				reqID = uuid.New().String()
			}

			c.Set(requestIDKey, reqID)

			req := c.Request()
			c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), reqID)))

			c.Response().Header().Set(RequestIDHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the echo context.
// Returns an empty string if no request ID is set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok {
		return id
	}
	return ""
}
