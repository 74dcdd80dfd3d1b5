package response

import (
	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return OK(c, &HealthResponse{Status: "ok"})
}

// SearchResults writes a 200 OK response with search results.
func SearchResults(c echo.Context, results any) error {
	return OK(c, results)
}
