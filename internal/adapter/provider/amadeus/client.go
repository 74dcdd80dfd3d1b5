// Package amadeus implements domain.OfferProvider against the Amadeus self-service REST API.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/ratelimit"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/retry"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// ProviderName is the unique identifier for the Amadeus provider.
const ProviderName = "amadeus"

// DefaultBaseURL is the Amadeus self-service test environment.
const DefaultBaseURL = "https://test.api.amadeus.com"

const (
	tokenPath     = "/v1/security/oauth2/token"
	offersPath    = "/v2/shopping/flight-offers"
	locationsPath = "/v1/reference-data/locations"

	// tokenEarlyExpiry is subtracted from expires_in before a token is reused.
	tokenEarlyExpiry = 300 * time.Second

	airportPageLimit = 10
	maxErrorBody     = 4 << 10
)

// Config holds the Amadeus credentials and endpoint.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string

	// Timeout bounds each HTTP round trip.
	Timeout time.Duration
}

// Client is an Amadeus API client. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	clock      timeutil.Clock
	limiter    *ratelimit.Limiter
	retry      retry.Config
	log        *logger.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock sets the clock used for token expiry.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithLimiter sets the shared upstream rate limiter.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithRetry sets the retry policy for upstream calls.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithLogger sets the client's logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates an Amadeus client.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	c := &Client{
		cfg:   cfg,
		clock: timeutil.NewRealClock(),
		retry: retry.UpstreamConfig,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if c.limiter == nil {
		c.limiter = ratelimit.New(ratelimit.DefaultConfig())
	}

	c.log = c.log.WithProvider(ProviderName)
	c.retry = c.retry.WithOnRetry(func(attempt int, err error, wait time.Duration) {
		c.log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("retrying upstream call")
	})

	return c
}

// Name implements domain.OfferProvider.
func (c *Client) Name() string {
	return ProviderName
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

// SearchOffers implements domain.OfferProvider.
func (c *Client) SearchOffers(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	if !c.Configured() {
		return nil, domain.NewProviderError(ProviderName, domain.ErrNotConfigured)
	}

	var body offersResponse
	if err := c.getJSON(ctx, offersPath, offerQuery(params), &body); err != nil {
		return nil, c.wrapError(err)
	}

	offers := body.Data
	if offers == nil {
		offers = []domain.FlightOffer{}
	}

	return &domain.SearchResult{
		Offers:   offers,
		Carriers: carrierNames(body.Dictionaries.Carriers),
		Source:   ProviderName,
	}, nil
}

// SearchAirports implements domain.OfferProvider.
func (c *Client) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	if !c.Configured() {
		return nil, domain.NewProviderError(ProviderName, domain.ErrNotConfigured)
	}

	query := url.Values{}
	query.Set("subType", "AIRPORT,CITY")
	query.Set("keyword", strings.ToUpper(keyword))
	query.Set("page[limit]", strconv.Itoa(airportPageLimit))

	var body locationsResponse
	if err := c.getJSON(ctx, locationsPath, query, &body); err != nil {
		return nil, c.wrapError(err)
	}

	airports := make([]domain.Airport, 0, len(body.Data))
	seen := make(map[string]struct{}, len(body.Data))
	for _, loc := range body.Data {
		if loc.IATACode == "" {
			continue
		}
		if _, dup := seen[loc.IATACode]; dup {
			continue
		}
		seen[loc.IATACode] = struct{}{}
		airports = append(airports, domain.Airport{
			IATACode:    loc.IATACode,
			Name:        titleCase(loc.Name),
			City:        titleCase(loc.Address.CityName),
			Country:     titleCase(loc.Address.CountryName),
			CountryCode: loc.Address.CountryCode,
		})
	}
	return airports, nil
}

// offerQuery maps search params to flight-offers query parameters.
// Optional parameters are sent only when set.
func offerQuery(p domain.SearchParams) url.Values {
	q := url.Values{}
	q.Set("originLocationCode", p.Origin)
	q.Set("destinationLocationCode", p.Destination)
	q.Set("departureDate", p.DepartureDate)
	q.Set("adults", strconv.Itoa(max(p.Adults, 1)))

	if p.ReturnDate != "" {
		q.Set("returnDate", p.ReturnDate)
	}
	if p.Children > 0 {
		q.Set("children", strconv.Itoa(p.Children))
	}
	if p.Infants > 0 {
		q.Set("infants", strconv.Itoa(p.Infants))
	}
	if p.TravelClass != "" {
		q.Set("travelClass", p.TravelClass)
	}
	if p.NonStop {
		q.Set("nonStop", "true")
	}
	if p.MaxPrice > 0 {
		q.Set("maxPrice", strconv.Itoa(p.MaxPrice))
	}

	currency := p.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	q.Set("currencyCode", currency)

	limit := p.Max
	if limit <= 0 {
		limit = domain.DefaultMaxOffers
	}
	q.Set("max", strconv.Itoa(limit))

	return q
}

// getJSON performs an authenticated GET and decodes the JSON body into out.
// Each attempt waits on the rate limiter and reuses the cached token.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.cfg.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return retry.Do(ctx, func() error {
		if err := c.limiter.Wait(ctx, ProviderName); err != nil {
			return err
		}

		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retry.NewPermanent(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateToken()
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return statusError(resp)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return retry.NewPermanent(fmt.Errorf("decode %s response: %w", path, err))
		}
		return nil
	}, c.retry)
}

// accessToken returns a cached bearer token, fetching a new one when the
// cached token is missing or within tokenEarlyExpiry of expiring.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.clock.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.APIKey)
	form.Set("client_secret", c.cfg.APISecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", retry.NewPermanent(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch access token: %w", statusError(resp))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", retry.NewPermanent(fmt.Errorf("decode access token: %w", err))
	}
	if tok.AccessToken == "" {
		return "", retry.NewPermanent(errors.New("access token missing from response"))
	}

	c.token = tok.AccessToken
	c.tokenExpiry = c.clock.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenEarlyExpiry)

	c.log.Debug().Int("expires_in", tok.ExpiresIn).Msg("access token refreshed")
	return c.token, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

// statusError builds a retry.StatusError from a non-2xx response, using the
// first upstream error detail as the message when one is present.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	se := &retry.StatusError{StatusCode: resp.StatusCode}

	var envelope errorResponse
	if json.Unmarshal(raw, &envelope) == nil {
		switch {
		case len(envelope.Errors) > 0:
			e := envelope.Errors[0]
			parts := make([]string, 0, 2)
			for _, p := range []string{e.Title, e.Detail} {
				if p = strings.TrimSpace(p); p != "" {
					parts = append(parts, p)
				}
			}
			se.Body = strings.Join(parts, ": ")
		case envelope.ErrorDescription != "":
			se.Body = envelope.ErrorDescription
		case envelope.Error != "":
			se.Body = envelope.Error
		}
	}
	if se.Body == "" {
		se.Body = strings.TrimSpace(string(raw))
	}

	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
		se.RetryAfter = time.Duration(secs) * time.Second
	}
	return se
}

// wrapError classifies a failed call. Context errors pass through unchanged so
// callers can tell timeouts and cancellation apart from upstream failures.
func (c *Client) wrapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	wrapped := fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	if retry.IsRetryableHTTP(err) {
		return domain.NewRetryableProviderError(ProviderName, wrapped)
	}
	return domain.NewProviderError(ProviderName, wrapped)
}

var _ domain.OfferProvider = (*Client)(nil)
