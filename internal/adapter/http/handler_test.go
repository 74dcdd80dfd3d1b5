package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// mockUseCase is a mock implementation of OfferSearchUseCase for testing.
type mockUseCase struct {
	searchFunc   func(ctx context.Context, params domain.SearchParams, opts usecase.SearchOptions) (*domain.SearchResponse, error)
	refineFunc   func(ctx context.Context, result *domain.SearchResult, opts usecase.SearchOptions) (*domain.SearchResponse, error)
	airportsFunc func(ctx context.Context, keyword string) ([]domain.Airport, error)
}

func (m *mockUseCase) Search(ctx context.Context, params domain.SearchParams, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, params, opts)
	}
	return domain.NewSearchResponse(nil, domain.SearchMetadata{Source: "mock"}), nil
}

func (m *mockUseCase) Refine(ctx context.Context, result *domain.SearchResult, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
	if m.refineFunc != nil {
		return m.refineFunc(ctx, result, opts)
	}
	return domain.NewSearchResponse(result.Offers, domain.SearchMetadata{}), nil
}

func (m *mockUseCase) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	if m.airportsFunc != nil {
		return m.airportsFunc(ctx, keyword)
	}
	return []domain.Airport{}, nil
}

type fakeStatus struct {
	degraded bool
}

func (f fakeStatus) Name() string {
	if f.degraded {
		return "mock"
	}
	return "amadeus"
}
func (f fakeStatus) Degraded() bool { return f.degraded }
func (f fakeStatus) Reason() string {
	if f.degraded {
		return "provider not configured"
	}
	return ""
}

// setupTestHandler creates a test Echo instance with routes registered.
func setupTestHandler(uc usecase.OfferSearchUseCase) *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, NewOfferHandler(uc, nil))
	return e
}

// makeRequest is a helper to make test requests.
func makeRequest(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		reqBody, _ = json.Marshal(b)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func validSearchBody() map[string]any {
	return map[string]any{
		"origin":        "jfk",
		"destination":   "lhr",
		"departureDate": futureDate(30),
	}
}

func decodeErrorDetail(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	return detail
}

func testOffer(id, carrier, total string, stops int, depart string, minutes int) domain.FlightOffer {
	dep, _ := time.Parse("2006-01-02T15:04:05", depart)
	arr := dep.Add(time.Duration(minutes) * time.Minute)

	segments := make([]domain.Segment, stops+1)
	for i := range segments {
		segments[i] = domain.Segment{CarrierCode: carrier, Number: fmt.Sprint(100 + i)}
	}
	segments[0].Departure = domain.Endpoint{IATACode: "JFK", At: depart}
	segments[stops].Arrival = domain.Endpoint{IATACode: "LHR", At: arr.Format("2006-01-02T15:04:05")}

	return domain.FlightOffer{
		ID: id,
		Itineraries: []domain.Itinerary{{
			Duration: fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60),
			Segments: segments,
		}},
		Price:                  domain.Price{Currency: "USD", Total: total},
		ValidatingAirlineCodes: []string{carrier},
		TravelerPricings: []domain.TravelerPricing{{
			FareDetailsBySegment: []domain.FareDetailBySegment{{Cabin: "ECONOMY", IncludedCheckedBags: domain.CheckedBags{Quantity: 1}}},
		}},
	}
}

// =====================================================
// Search Tests
// =====================================================

func TestSearchOffers_Success(t *testing.T) {
	offer := testOffer("1", "BA", "452.10", 1, "2025-06-01T08:30:00", 455)

	var gotParams domain.SearchParams
	var gotOpts usecase.SearchOptions
	mock := &mockUseCase{
		searchFunc: func(_ context.Context, params domain.SearchParams, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			gotParams, gotOpts = params, opts
			resp := domain.NewSearchResponse([]domain.FlightOffer{offer}, domain.SearchMetadata{Source: "amadeus", UnfilteredResults: 3})
			resp.Carriers = map[string]string{"BA": "British Airways"}
			resp.PriceRange = domain.PriceRange{Min: 452, Max: 453}
			resp.SortBy = opts.SortBy
			resp.Currency = "USD"
			return resp, nil
		},
	}
	e := setupTestHandler(mock)

	body := validSearchBody()
	body["adults"] = 2
	body["travelClass"] = "business"
	body["sortBy"] = "Duration"
	body["histogramScope"] = "filtered"
	body["filters"] = map[string]any{
		"stops":         []int{0, 1},
		"priceRange":    map[string]any{"min": 300, "max": 800},
		"airlines":      []string{"ba"},
		"departureTime": []string{"morning"},
		"maxDuration":   600,
	}

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "JFK", gotParams.Origin)
	assert.Equal(t, "LHR", gotParams.Destination)
	assert.Equal(t, 2, gotParams.Adults)
	assert.Equal(t, "BUSINESS", gotParams.TravelClass)
	assert.Equal(t, "USD", gotParams.CurrencyCode)
	assert.Equal(t, domain.DefaultMaxOffers, gotParams.Max)

	assert.Equal(t, domain.SortByDuration, gotOpts.SortBy)
	assert.Equal(t, usecase.HistogramFiltered, gotOpts.HistogramScope)
	require.NotNil(t, gotOpts.Filters)
	assert.Equal(t, []int{0, 1}, gotOpts.Filters.Stops)
	assert.Equal(t, domain.PriceRange{Min: 300, Max: 800}, gotOpts.Filters.PriceRange)
	assert.Equal(t, []string{"BA"}, gotOpts.Filters.Airlines)
	assert.Equal(t, []domain.TimeOfDay{domain.Morning}, gotOpts.Filters.DepartureTime)
	assert.Equal(t, 600, *gotOpts.Filters.MaxDuration)

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Offers, 1)

	card := resp.Offers[0]
	assert.Equal(t, "1", card.ID)
	assert.Equal(t, CarrierDTO{Code: "BA", Name: "British Airways"}, card.Carrier)
	assert.Equal(t, "$452", card.Price.Display)
	require.NotNil(t, card.Price.Amount)
	assert.InDelta(t, 452.10, *card.Price.Amount, 0.001)
	assert.Equal(t, 1, card.Stops)
	assert.Equal(t, "1 stop", card.StopsLabel)
	assert.Equal(t, DurationDTO{Minutes: 455, Label: "7h 35m"}, card.Duration)
	assert.Equal(t, EndpointDTO{Airport: "JFK", At: "2025-06-01T08:30:00", Time: "08:30", Day: "Jun 01, 2025"}, card.Departure)
	assert.Equal(t, "16:05", card.Arrival.Time)
	assert.Equal(t, "ECONOMY", card.Cabin)
	assert.Equal(t, 1, card.CheckedBags)
	assert.Equal(t, offer.ID, card.Offer.ID, "raw offer is returned for refine")

	assert.Equal(t, domain.SortByDuration, resp.SortBy)
	assert.Equal(t, 1, resp.Metadata.TotalResults)
	assert.Equal(t, 3, resp.Metadata.UnfilteredResults)
	assert.Equal(t, "amadeus", resp.Metadata.Source)
}

func TestSearchOffers_EmptyResultsSerialiseAsArrays(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"offers":[]`)
	assert.Contains(t, body, `"priceBuckets":[]`)
	assert.Contains(t, body, `"airlines":[]`)
}

func TestSearchOffers_UnparseablePriceOmitsAmount(t *testing.T) {
	offer := testOffer("x", "AA", "n/a", 0, "2025-06-01T08:00:00", 60)
	mock := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams, usecase.SearchOptions) (*domain.SearchResponse, error) {
			return domain.NewSearchResponse([]domain.FlightOffer{offer}, domain.SearchMetadata{}), nil
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Offers[0].Price.Amount)
	assert.Equal(t, "$NaN", resp.Offers[0].Price.Display)
	assert.Equal(t, "AA", resp.Offers[0].Carrier.Name, "unknown carrier falls back to its code")
}

func TestSearchOffers_InvalidBody(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", `{"origin": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeErrorDetail(t, rec)
	assert.Equal(t, response.CodeInvalidRequest, detail.Code)
}

func TestSearchOffers_ValidationErrors(t *testing.T) {
	called := false
	mock := &mockUseCase{
		searchFunc: func(context.Context, domain.SearchParams, usecase.SearchOptions) (*domain.SearchResponse, error) {
			called = true
			return nil, nil
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", map[string]any{
		"origin":        "JF",
		"destination":   "",
		"departureDate": "01-06-2025",
		"adults":        12,
		"sortBy":        "best",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called, "use case must not run on invalid input")

	detail := decodeErrorDetail(t, rec)
	assert.Equal(t, response.CodeValidationError, detail.Code)
	assert.Contains(t, detail.Details, "origin")
	assert.Contains(t, detail.Details, "destination")
	assert.Contains(t, detail.Details, "departureDate")
	assert.Contains(t, detail.Details, "adults")
	assert.Contains(t, detail.Details, "sortBy")
}

func TestSearchOffers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "invalid request",
			err:    domain.WrapInvalidRequest("returnDate cannot be before departureDate"),
			status: http.StatusBadRequest,
			code:   response.CodeValidationError,
		},
		{
			name:   "provider unavailable",
			err:    domain.NewProviderError("mock", fmt.Errorf("%w: down", domain.ErrProviderUnavailable)),
			status: http.StatusServiceUnavailable,
			code:   response.CodeServiceUnavailable,
		},
		{
			name:   "not configured",
			err:    domain.NewProviderError("amadeus", domain.ErrNotConfigured),
			status: http.StatusServiceUnavailable,
			code:   response.CodeServiceUnavailable,
		},
		{
			name:   "provider timeout",
			err:    domain.NewProviderTimeoutError("amadeus"),
			status: http.StatusGatewayTimeout,
			code:   response.CodeTimeout,
		},
		{
			name:   "deadline",
			err:    context.DeadlineExceeded,
			status: http.StatusGatewayTimeout,
			code:   response.CodeTimeout,
		},
		{
			name:   "cancelled",
			err:    context.Canceled,
			status: http.StatusGatewayTimeout,
			code:   response.CodeTimeout,
		},
		{
			name:   "unexpected",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   response.CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockUseCase{
				searchFunc: func(context.Context, domain.SearchParams, usecase.SearchOptions) (*domain.SearchResponse, error) {
					return nil, tt.err
				},
			}
			e := setupTestHandler(mock)

			rec := makeRequest(e, http.MethodPost, "/api/v1/flights/search", validSearchBody())

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeErrorDetail(t, rec).Code)
			assert.NotContains(t, rec.Body.String(), "boom", "internal errors must not leak")
		})
	}
}

// =====================================================
// Refine Tests
// =====================================================

func TestRefineOffers_Success(t *testing.T) {
	offers := []domain.FlightOffer{
		testOffer("1", "AA", "320.50", 0, "2025-06-01T07:00:00", 420),
		testOffer("2", "DL", "410.00", 1, "2025-06-01T19:00:00", 540),
	}

	var gotResult *domain.SearchResult
	var gotOpts usecase.SearchOptions
	mock := &mockUseCase{
		refineFunc: func(_ context.Context, result *domain.SearchResult, opts usecase.SearchOptions) (*domain.SearchResponse, error) {
			gotResult, gotOpts = result, opts
			return domain.NewSearchResponse(result.Offers[:1], domain.SearchMetadata{UnfilteredResults: 2}), nil
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", map[string]any{
		"offers":   offers,
		"carriers": map[string]string{"AA": "American Airlines"},
		"currency": "eur",
		"filters":  map[string]any{"stops": []int{0}},
		"sortBy":   "departure",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.NotNil(t, gotResult)
	assert.Len(t, gotResult.Offers, 2)
	assert.Equal(t, "American Airlines", gotResult.Carriers["AA"])
	assert.Equal(t, "EUR", gotOpts.Currency)
	assert.Equal(t, domain.SortByDeparture, gotOpts.SortBy)
	assert.Equal(t, usecase.HistogramUnfiltered, gotOpts.HistogramScope)
	assert.Equal(t, []int{0}, gotOpts.Filters.Stops)
	assert.True(t, gotOpts.Filters.PriceRange.IsZero(), "omitted priceRange defers to the observed range")

	var resp SearchResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Offers, 1)
	assert.Equal(t, 2, resp.Metadata.UnfilteredResults)
}

func TestRefineOffers_Validation(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", map[string]any{
		"offers":  []any{},
		"filters": map[string]any{"priceRange": map[string]any{"min": 900, "max": 100}, "arrivalTime": []string{"dawn"}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeErrorDetail(t, rec)
	assert.Contains(t, detail.Details, "filters.priceRange")
	assert.Contains(t, detail.Details, "filters.arrivalTime[0]")
}

func TestRefineOffers_Cancelled(t *testing.T) {
	mock := &mockUseCase{
		refineFunc: func(context.Context, *domain.SearchResult, usecase.SearchOptions) (*domain.SearchResponse, error) {
			return nil, context.Canceled
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodPost, "/api/v1/flights/refine", map[string]any{"offers": []any{}})

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, response.MsgRequestCancelled, decodeErrorDetail(t, rec).Message)
}

// =====================================================
// Airport and Health Tests
// =====================================================

func TestSearchAirports(t *testing.T) {
	var gotKeyword string
	mock := &mockUseCase{
		airportsFunc: func(_ context.Context, keyword string) ([]domain.Airport, error) {
			gotKeyword = keyword
			return []domain.Airport{{IATACode: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom"}}, nil
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodGet, "/api/v1/airports?keyword=+lon+", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "lon", gotKeyword)

	var resp AirportsResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "lon", resp.Keyword)
	require.Len(t, resp.Airports, 1)
	assert.Equal(t, "LHR", resp.Airports[0].IATACode)
}

func TestSearchAirports_ProviderDown(t *testing.T) {
	mock := &mockUseCase{
		airportsFunc: func(context.Context, string) ([]domain.Airport, error) {
			return nil, domain.NewProviderUnavailableError("mock")
		},
	}
	e := setupTestHandler(mock)

	rec := makeRequest(e, http.MethodGet, "/api/v1/airports?keyword=par", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Run("liveness only", func(t *testing.T) {
		e := setupTestHandler(&mockUseCase{})

		rec := makeRequest(e, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("with provider status", func(t *testing.T) {
		e := echo.New()
		RegisterRoutes(e, NewOfferHandler(&mockUseCase{}, fakeStatus{degraded: true}))

		rec := makeRequest(e, http.MethodGet, "/health", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponseDTO
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, HealthResponseDTO{Status: "ok", Provider: "mock", Degraded: true, Reason: "provider not configured"}, resp)
	})
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	e := setupTestHandler(&mockUseCase{})

	rec := makeRequest(e, http.MethodGet, "/api/v1/flights/search", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
