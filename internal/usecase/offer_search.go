package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/logger"
)

// Default timeout values.
const (
	DefaultSearchTimeout = 10 * time.Second

	// minAirportKeyword is the shortest keyword sent upstream.
	minAirportKeyword = 2
)

// OfferSearchUseCase defines the flight offer search operations.
type OfferSearchUseCase interface {
	// Search fetches offers for params and runs them through the filter, sort
	// and histogram pipeline.
	Search(ctx context.Context, params domain.SearchParams, opts SearchOptions) (*domain.SearchResponse, error)

	// Refine runs the pipeline over an offer collection the caller already holds.
	Refine(ctx context.Context, result *domain.SearchResult, opts SearchOptions) (*domain.SearchResponse, error)

	// SearchAirports looks up airports by keyword.
	SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error)
}

// ResultCache stores raw provider results between searches.
type ResultCache interface {
	Get(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, bool, error)
	Set(ctx context.Context, params domain.SearchParams, result *domain.SearchResult) error
}

// Config contains configuration options for the use case.
type Config struct {
	SearchTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{SearchTimeout: DefaultSearchTimeout}
}

type offerSearchUseCase struct {
	provider domain.OfferProvider
	cache    ResultCache
	log      *logger.Logger
	timeout  time.Duration
}

// NewOfferSearchUseCase creates an OfferSearchUseCase.
// A nil cache disables caching, a nil log discards logs and a nil config uses DefaultConfig.
func NewOfferSearchUseCase(provider domain.OfferProvider, cache ResultCache, log *logger.Logger, config *Config) OfferSearchUseCase {
	cfg := DefaultConfig()
	if config != nil && config.SearchTimeout > 0 {
		cfg.SearchTimeout = config.SearchTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &offerSearchUseCase{
		provider: provider,
		cache:    cache,
		log:      log.WithComponent("offer_search"),
		timeout:  cfg.SearchTimeout,
	}
}

// Search implements OfferSearchUseCase.Search.
func (uc *offerSearchUseCase) Search(ctx context.Context, params domain.SearchParams, opts SearchOptions) (*domain.SearchResponse, error) {
	start := time.Now()

	params.SetDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if uc.provider == nil {
		return nil, domain.ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	log := uc.log.For(ctx)

	result, cacheHit := uc.cached(ctx, params)
	if !cacheHit {
		var err error
		result, err = uc.provider.SearchOffers(ctx, params)
		if err != nil {
			log.Error().Err(err).
				Str("provider", uc.provider.Name()).
				Str("origin", params.Origin).
				Str("destination", params.Destination).
				Msg("offer search failed")
			return nil, uc.providerError(ctx, err)
		}
		if result == nil {
			result = &domain.SearchResult{}
		}
		if result.Source == "" {
			result.Source = uc.provider.Name()
		}
		uc.store(ctx, params, result)
	}

	if opts.Currency == "" {
		opts.Currency = params.CurrencyCode
	}

	resp := runPipeline(result, opts, domain.SearchMetadata{
		Source:   result.Source,
		CacheHit: cacheHit,
	})
	resp.Metadata.SearchTimeMs = time.Since(start).Milliseconds()

	log.Info().
		Str("origin", params.Origin).
		Str("destination", params.Destination).
		Str("date", params.DepartureDate).
		Str("source", resp.Metadata.Source).
		Bool("cache_hit", cacheHit).
		Int("unfiltered", resp.Metadata.UnfilteredResults).
		Int("results", resp.Metadata.TotalResults).
		Int64("duration_ms", resp.Metadata.SearchTimeMs).
		Msg("offer search completed")

	return resp, nil
}

// Refine implements OfferSearchUseCase.Refine.
func (uc *offerSearchUseCase) Refine(ctx context.Context, result *domain.SearchResult, opts SearchOptions) (*domain.SearchResponse, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		result = &domain.SearchResult{}
	}

	resp := runPipeline(result, opts, domain.SearchMetadata{Source: result.Source})
	resp.Metadata.SearchTimeMs = time.Since(start).Milliseconds()

	uc.log.For(ctx).Debug().
		Int("unfiltered", resp.Metadata.UnfilteredResults).
		Int("results", resp.Metadata.TotalResults).
		Int("active_filters", resp.Metadata.ActiveFilters).
		Msg("offers refined")

	return resp, nil
}

// SearchAirports implements OfferSearchUseCase.SearchAirports.
// Keywords shorter than two characters return an empty list without an upstream call.
func (uc *offerSearchUseCase) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if len([]rune(keyword)) < minAirportKeyword {
		return []domain.Airport{}, nil
	}
	if uc.provider == nil {
		return nil, domain.ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	airports, err := uc.provider.SearchAirports(ctx, keyword)
	if err != nil {
		uc.log.For(ctx).Error().Err(err).Str("keyword", keyword).Msg("airport search failed")
		return nil, uc.providerError(ctx, err)
	}
	if airports == nil {
		airports = []domain.Airport{}
	}
	return airports, nil
}

func (uc *offerSearchUseCase) cached(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, bool) {
	if uc.cache == nil {
		return nil, false
	}
	result, ok, err := uc.cache.Get(ctx, params)
	if err != nil {
		uc.log.For(ctx).Warn().Err(err).Msg("cache read failed")
		return nil, false
	}
	if !ok || result == nil {
		return nil, false
	}
	return result, true
}

func (uc *offerSearchUseCase) store(ctx context.Context, params domain.SearchParams, result *domain.SearchResult) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, params, result); err != nil {
		uc.log.For(ctx).Warn().Err(err).Msg("cache write failed")
	}
}

// providerError classifies a provider failure as cancellation, timeout or unavailability.
func (uc *offerSearchUseCase) providerError(ctx context.Context, err error) error {
	name := uc.provider.Name()
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return context.Canceled
	case errors.Is(err, context.DeadlineExceeded) || domain.IsProviderTimeout(err):
		return domain.NewRetryableProviderError(name, fmt.Errorf("%w: %w", domain.ErrProviderTimeout, err))
	case domain.IsProviderUnavailable(err):
		return err
	default:
		return domain.NewProviderError(name, fmt.Errorf("%w: %w", domain.ErrProviderUnavailable, err))
	}
}

// runPipeline filters, sorts and buckets result.Offers.
//
// The filter price range defaults to the observed range of the unfiltered
// offers when the caller leaves it zero.
func runPipeline(result *domain.SearchResult, opts SearchOptions, meta domain.SearchMetadata) *domain.SearchResponse {
	offers := result.Offers
	observed := ObservedPriceRange(offers)

	spec := domain.NewFilterSpec(observed)
	if opts.Filters != nil {
		spec = *opts.Filters
		if spec.PriceRange.IsZero() {
			spec.PriceRange = observed
		}
	}

	sortKey := opts.SortBy
	if !sortKey.IsValid() {
		sortKey = domain.SortByPrice
	}

	filtered := FilterOffers(offers, spec)
	sorted := SortOffers(filtered, sortKey)

	histogramInput := offers
	if opts.HistogramScope == HistogramFiltered {
		histogramInput = filtered
	}
	currencyCode := displayCurrency(opts.Currency, offers)

	carriers := result.Carriers
	if carriers == nil {
		carriers = map[string]string{}
	}

	meta.UnfilteredResults = len(offers)
	meta.ActiveFilters = spec.ActiveCount()

	resp := domain.NewSearchResponse(sorted, meta)
	resp.Carriers = carriers
	resp.Airlines = AvailableAirlines(offers, carriers)
	resp.PriceRange = observed
	resp.PriceBuckets = BuildPriceBuckets(histogramInput, currencyCode)
	resp.Filters = spec
	resp.SortBy = sortKey
	resp.Currency = currencyCode
	return resp
}

// displayCurrency prefers the requested code, then the first offer's currency.
func displayCurrency(requested string, offers []domain.FlightOffer) string {
	if requested != "" {
		return strings.ToUpper(requested)
	}
	for _, o := range offers {
		if o.Price.Currency != "" {
			return o.Price.Currency
		}
	}
	return domain.DefaultCurrency
}

var _ OfferSearchUseCase = (*offerSearchUseCase)(nil)
