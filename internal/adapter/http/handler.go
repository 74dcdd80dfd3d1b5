// Package http provides the HTTP handler layer for the flight offer API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// ProviderStatus reports which upstream is answering. The fallback provider
// implements it.
type ProviderStatus interface {
	Name() string
	Degraded() bool
	Reason() string
}

// OfferHandler handles HTTP requests for flight offer endpoints.
type OfferHandler struct {
	useCase usecase.OfferSearchUseCase
	status  ProviderStatus
}

// NewOfferHandler creates a new OfferHandler with the given use case.
// status may be nil, in which case /health reports only liveness.
func NewOfferHandler(uc usecase.OfferSearchUseCase, status ProviderStatus) *OfferHandler {
	return &OfferHandler{
		useCase: uc,
		status:  status,
	}
}

// SearchOffers handles POST /api/v1/flights/search
//
// @Summary Search flight offers
// @Description Fetch offers for a route and date, then filter, sort and summarise them
// @Tags flights
// @Accept json
// @Produce json
// @Param request body SearchOffersRequest true "Search criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/flights/search [post]
func (h *OfferHandler) SearchOffers(c echo.Context) error {
	var req SearchOffersRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToSearchParams(&req), ToSearchOptions(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(result))
}

// RefineOffers handles POST /api/v1/flights/refine
//
// @Summary Refine flight offers
// @Description Re-run filter, sort and histogram over offers from a previous search, without an upstream call
// @Tags flights
// @Accept json
// @Produce json
// @Param request body RefineRequest true "Offers and filter criteria"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/flights/refine [post]
func (h *OfferHandler) RefineOffers(c echo.Context) error {
	var req RefineRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	result, opts := ToRefineInput(&req)
	resp, err := h.useCase.Refine(c.Request().Context(), result, opts)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.SearchResults(c, ToSearchResponseDTO(resp))
}

// SearchAirports handles GET /api/v1/airports
//
// @Summary Search airports
// @Description Look up airports and cities by IATA code, name or city; keywords under two characters return an empty list
// @Tags airports
// @Produce json
// @Param keyword query string true "Search keyword" example(lon)
// @Success 200 {object} AirportsResponseDTO
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/airports [get]
func (h *OfferHandler) SearchAirports(c echo.Context) error {
	keyword := strings.TrimSpace(c.QueryParam("keyword"))

	airports, err := h.useCase.SearchAirports(c.Request().Context(), keyword)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, &AirportsResponseDTO{Keyword: keyword, Airports: airports})
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponseDTO
// @Router /health [get]
func (h *OfferHandler) Health(c echo.Context) error {
	if h.status == nil {
		return response.Health(c)
	}
	return response.OK(c, &HealthResponseDTO{
		Status:   "ok",
		Provider: h.status.Name(),
		Degraded: h.status.Degraded(),
		Reason:   h.status.Reason(),
	})
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *OfferHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *OfferHandler) handleError(c echo.Context, err error) error {
	switch {
	case domain.IsInvalidRequest(err):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	case errors.Is(err, context.DeadlineExceeded) || domain.IsProviderTimeout(err):
		return response.GatewayTimeout(c)
	case domain.IsProviderUnavailable(err), errors.Is(err, domain.ErrNotConfigured):
		return response.ServiceUnavailable(c)
	default:
		return response.InternalServerError(c)
	}
}
