// Package integration provides helpers and integration tests for the flight offer explorer.
// Integration tests verify that components work together correctly, including
// HTTP handlers, middleware, use cases, the fallback chain and the Amadeus client
// against a stub upstream.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	offerhttp "github.com/flight-search/flight-offer-explorer/internal/adapter/http"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/middleware"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/http/response"
	"github.com/flight-search/flight-offer-explorer/internal/adapter/provider/amadeus"
	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
	"github.com/flight-search/flight-offer-explorer/test/testutil"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *offerhttp.OfferHandler
}

// NewTestServer creates a test server around uc with the full middleware stack.
// status may be nil.
func NewTestServer(uc usecase.OfferSearchUseCase, status offerhttp.ProviderStatus) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop())

	handler := offerhttp.NewOfferHandler(uc, status)
	offerhttp.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts body to the search endpoint.
func (ts *TestServer) SearchRequest(body any) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/flights/search", Body: body})
}

// RefineRequest posts body to the refine endpoint.
func (ts *TestServer) RefineRequest(body any) Response {
	return ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/flights/refine", Body: body})
}

// AirportsRequest looks up airports by keyword.
func (ts *TestServer) AirportsRequest(keyword string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/airports?keyword=" + url.QueryEscape(keyword)})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// ParseSearchResponse parses the response body as a SearchResponseDTO.
func (r *Response) ParseSearchResponse() (*offerhttp.SearchResponseDTO, error) {
	var resp offerhttp.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error envelope.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// DefaultSearchRequest returns a valid JFK to LHR search request body.
func DefaultSearchRequest() offerhttp.SearchOffersRequest {
	return offerhttp.SearchOffersRequest{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-06-01",
	}
}

// DefaultSearchParams returns valid search params for calling the use case directly.
func DefaultSearchParams() domain.SearchParams {
	return domain.SearchParams{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2025-06-01",
		Adults:        1,
	}
}

// CreateUseCase creates a use case over provider with no cache and default configuration.
func CreateUseCase(provider domain.OfferProvider) usecase.OfferSearchUseCase {
	return usecase.NewOfferSearchUseCase(provider, nil, nil, nil)
}

// CreateUseCaseWithConfig creates a use case with custom configuration.
func CreateUseCaseWithConfig(provider domain.OfferProvider, cache usecase.ResultCache, config *usecase.Config) usecase.OfferSearchUseCase {
	return usecase.NewOfferSearchUseCase(provider, cache, nil, config)
}

// Upstream is a stub Amadeus API serving the testdata offers fixture.
type Upstream struct {
	Server *httptest.Server

	tokenCalls  atomic.Int32
	offerCalls  atomic.Int32
	offerStatus atomic.Int32
}

// NewUpstream starts a stub upstream. It is closed when the test ends.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	fixture := testutil.LoadTestJSON(t, "amadeus_flight_offers.json")
	u := &Upstream{}
	u.offerStatus.Store(http.StatusOK)

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		u.tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"amadeusOAuth2Token","access_token":"stub-token","expires_in":1799,"state":"approved"}`))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		u.offerCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer stub-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		status := int(u.offerStatus.Load())
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"errors":[{"status":500,"code":141,"title":"SYSTEM ERROR HAS OCCURRED"}]}`))
			return
		}
		w.Header().Set("Content-Type", "application/vnd.amadeus+json")
		_, _ = w.Write(fixture)
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Server.Close)
	return u
}

// FailOffers makes the offers endpoint answer with status.
func (u *Upstream) FailOffers(status int) {
	u.offerStatus.Store(int32(status))
}

// TokenCalls returns how many tokens were issued.
func (u *Upstream) TokenCalls() int {
	return int(u.tokenCalls.Load())
}

// OfferCalls returns how many offer searches reached the upstream.
func (u *Upstream) OfferCalls() int {
	return int(u.offerCalls.Load())
}

// Client returns an Amadeus client pointed at the stub with a single attempt
// per call and a generous rate limit.
func (u *Upstream) Client() *amadeus.Client {
	return amadeus.NewClient(amadeus.Config{
		BaseURL:   u.Server.URL,
		APIKey:    "key",
		APISecret: "secret",
	},
		amadeus.WithHTTPClient(u.Server.Client()),
		amadeus.WithRetry(retry.UpstreamConfig.WithMaxAttempts(1)),
		amadeus.WithLimiter(ratelimit.New(ratelimit.Config{RequestsPerSecond: 1000, Burst: 100})),
	)
}
