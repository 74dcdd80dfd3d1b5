// Package mock provides test doubles for the flight offer explorer.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// Provider is a configurable implementation of domain.OfferProvider.
// It supports delays, errors and canned responses for testing timeouts,
// fallbacks and pipeline behavior end to end.
type Provider struct {
	name     string
	offers   []domain.FlightOffer
	carriers map[string]string
	airports []domain.Airport
	err      error
	delay    time.Duration

	mu        sync.Mutex
	callCount int
	lastQuery domain.SearchParams
}

// NewProvider creates a new mock provider with the given name.
// The provider is configured using the builder methods.
func NewProvider(name string) *Provider {
	return &Provider{name: name}
}

// WithOffers configures the provider to return the given offers.
func (p *Provider) WithOffers(offers []domain.FlightOffer) *Provider {
	p.offers = offers
	return p
}

// WithCarriers configures the carrier dictionary returned with offers.
func (p *Provider) WithCarriers(carriers map[string]string) *Provider {
	p.carriers = carriers
	return p
}

// WithAirports configures the airport lookup result.
func (p *Provider) WithAirports(airports []domain.Airport) *Provider {
	p.airports = airports
	return p
}

// WithError configures the provider to fail every call with err.
func (p *Provider) WithError(err error) *Provider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait d before responding.
func (p *Provider) WithDelay(d time.Duration) *Provider {
	p.delay = d
	return p
}

// Name implements domain.OfferProvider.
func (p *Provider) Name() string {
	return p.name
}

// SearchOffers implements domain.OfferProvider.
// Each call gets its own copy of the offer slice.
func (p *Provider) SearchOffers(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	p.mu.Lock()
	p.lastQuery = params
	p.mu.Unlock()

	if err := p.call(ctx); err != nil {
		return nil, err
	}

	offers := make([]domain.FlightOffer, len(p.offers))
	copy(offers, p.offers)
	return &domain.SearchResult{
		Offers:   offers,
		Carriers: p.carriers,
		Source:   p.name,
	}, nil
}

// SearchAirports implements domain.OfferProvider.
func (p *Provider) SearchAirports(ctx context.Context, _ string) ([]domain.Airport, error) {
	if err := p.call(ctx); err != nil {
		return nil, err
	}
	return p.airports, nil
}

func (p *Provider) call(ctx context.Context) error {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return p.err
}

// CallCount returns the number of calls made to the provider.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// LastQuery returns the parameters of the most recent offer search.
func (p *Provider) LastQuery() domain.SearchParams {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastQuery
}

// Reset resets the call count to zero.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount = 0
}

var _ domain.OfferProvider = (*Provider)(nil)

// SampleCarriers is the carrier dictionary matching SampleOffers.
var SampleCarriers = map[string]string{
	"AA": "American Airlines",
	"BA": "British Airways",
	"VS": "Virgin Atlantic",
}

// SampleOffers returns count JFK to LHR offers on 2025-06-01.
//
// Offer i departs at 06:00 + 2i hours, costs 300 + 50i USD and is non-stop
// when i is even, one-stop via BOS otherwise. Carriers rotate AA, BA, VS.
// Flight time is 7 hours plus one hour per stop.
func SampleOffers(count int) []domain.FlightOffer {
	codes := []string{"AA", "BA", "VS"}
	base := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	offers := make([]domain.FlightOffer, count)
	for i := range offers {
		carrier := codes[i%len(codes)]
		stops := i % 2
		hours := 7 + stops
		dep := base.Add(time.Duration(2*i) * time.Hour)
		arr := dep.Add(time.Duration(hours) * time.Hour)

		offers[i] = NewOffer(OfferSpec{
			ID:       strconv.Itoa(i + 1),
			Carrier:  carrier,
			Total:    fmt.Sprintf("%.2f", 300+50*float64(i)),
			Departed: dep,
			Arrived:  arr,
			Stops:    stops,
		})
	}
	return offers
}

// OfferSpec describes a synthetic offer for NewOffer.
type OfferSpec struct {
	ID       string
	Carrier  string
	Total    string
	Currency string
	Departed time.Time
	Arrived  time.Time
	Stops    int
	Bags     int
}

// NewOffer builds a JFK to LHR offer with s.Stops connections through BOS.
func NewOffer(s OfferSpec) domain.FlightOffer {
	currency := s.Currency
	if currency == "" {
		currency = "USD"
	}
	const layout = "2006-01-02T15:04:05"

	airports := []string{"JFK"}
	for n := 0; n < s.Stops; n++ {
		airports = append(airports, "BOS")
	}
	airports = append(airports, "LHR")

	legs := len(airports) - 1
	step := s.Arrived.Sub(s.Departed) / time.Duration(legs)
	segments := make([]domain.Segment, legs)
	for i := range segments {
		dep := s.Departed.Add(time.Duration(i) * step)
		arr := dep.Add(step)
		if i == legs-1 {
			arr = s.Arrived
		}
		segments[i] = domain.Segment{
			Departure:   domain.Endpoint{IATACode: airports[i], At: dep.Format(layout)},
			Arrival:     domain.Endpoint{IATACode: airports[i+1], At: arr.Format(layout)},
			CarrierCode: s.Carrier,
			Number:      strconv.Itoa(100 + i),
		}
	}

	minutes := int(s.Arrived.Sub(s.Departed).Minutes())
	return domain.FlightOffer{
		ID:   s.ID,
		Type: "flight-offer",
		Itineraries: []domain.Itinerary{{
			Duration: fmt.Sprintf("PT%dH%dM", minutes/60, minutes%60),
			Segments: segments,
		}},
		Price:                  domain.Price{Currency: currency, Total: s.Total},
		ValidatingAirlineCodes: []string{s.Carrier},
		TravelerPricings: []domain.TravelerPricing{{
			TravelerID:   "1",
			TravelerType: "ADULT",
			FareDetailsBySegment: []domain.FareDetailBySegment{{
				SegmentID:           "1",
				Cabin:               "ECONOMY",
				IncludedCheckedBags: domain.CheckedBags{Quantity: s.Bags},
			}},
		}},
	}
}
