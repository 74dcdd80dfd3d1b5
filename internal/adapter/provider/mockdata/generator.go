// Package mockdata provides a deterministic offline offer provider.
//
// Offers are generated from a pseudo-random source seeded by the route and
// date, so repeated searches for the same route return the same offers.
package mockdata

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// ProviderName is the unique identifier for the mock provider.
const ProviderName = "mock"

const (
	offersPerSearch = 25
	connectionCode  = "XYZ"
	directShare     = 0.7
	minPrice        = 300.0
	priceSpread     = 1000.0
	minHours        = 2
	hourSpread      = 12
	timestampLayout = "2006-01-02T15:04:05"
)

// Carriers names the mock carriers, keyed by IATA code.
var Carriers = map[string]string{
	"AA": "American Airlines",
	"BA": "British Airways",
	"DL": "Delta Air Lines",
	"EK": "Emirates",
	"SQ": "Singapore Airlines",
	"JL": "Japan Airlines",
	"QF": "Qantas",
	"AF": "Air France",
	"LH": "Lufthansa",
	"UA": "United Airlines",
}

// carrierCodes fixes the draw order, since map iteration is random.
var carrierCodes = []string{"AA", "BA", "DL", "EK", "SQ", "JL", "QF", "AF", "LH", "UA"}

// Provider generates offers and airports without any network access.
type Provider struct {
	latency time.Duration
}

// New creates a mock provider. A positive latency delays every call to
// mimic a network round trip.
func New(latency time.Duration) *Provider {
	return &Provider{latency: latency}
}

// Name implements domain.OfferProvider.
func (p *Provider) Name() string {
	return ProviderName
}

// SearchOffers implements domain.OfferProvider.
func (p *Provider) SearchOffers(ctx context.Context, params domain.SearchParams) (*domain.SearchResult, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	carriers := make(map[string]string, len(Carriers))
	for code, name := range Carriers {
		carriers[code] = name
	}

	return &domain.SearchResult{
		Offers:   GenerateOffers(params),
		Carriers: carriers,
		Source:   ProviderName,
	}, nil
}

// SearchAirports implements domain.OfferProvider.
func (p *Provider) SearchAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return FindAirports(keyword), nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// GenerateOffers returns the offers for params. The output depends only on
// the origin, destination and departure date.
//
// Each offer flies one carrier, departs on the hour and lasts 2 to 13 hours.
// About 30% connect once through XYZ, splitting the flight time in two.
// Prices are 300 to 1300 in the search currency with two decimals.
func GenerateOffers(params domain.SearchParams) []domain.FlightOffer {
	rng := rand.New(rand.NewSource(seed(params)))

	day, err := time.Parse("2006-01-02", params.DepartureDate)
	if err != nil {
		day = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	currency := params.CurrencyCode
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	cabin := params.TravelClass
	if cabin == "" {
		cabin = "ECONOMY"
	}

	offers := make([]domain.FlightOffer, offersPerSearch)
	for i := range offers {
		carrier := carrierCodes[rng.Intn(len(carrierCodes))]
		price := minPrice + rng.Float64()*priceSpread
		direct := rng.Float64() < directShare
		hours := minHours + rng.Intn(hourSpread)
		departure := day.Add(time.Duration(rng.Intn(24)) * time.Hour)
		arrival := departure.Add(time.Duration(hours) * time.Hour)

		var segments []domain.Segment
		if direct {
			segments = []domain.Segment{
				segment(params.Origin, params.Destination, departure, arrival, carrier, rng),
			}
		} else {
			stopover := departure.Add(time.Duration(hours/2) * time.Hour)
			segments = []domain.Segment{
				segment(params.Origin, connectionCode, departure, stopover, carrier, rng),
				segment(connectionCode, params.Destination, stopover, arrival, carrier, rng),
			}
		}

		total := money(price)
		bags := rng.Intn(2)

		offers[i] = domain.FlightOffer{
			ID:                    strconv.Itoa(i + 1),
			Type:                  "flight-offer",
			Source:                "GDS",
			NonStop:               direct,
			OneWay:                params.ReturnDate == "",
			LastTicketingDate:     day.Format("2006-01-02"),
			NumberOfBookableSeats: 1 + rng.Intn(9),
			Itineraries: []domain.Itinerary{{
				Duration: fmt.Sprintf("PT%dH", hours),
				Segments: segments,
			}},
			Price: domain.Price{
				Currency:   currency,
				Total:      total,
				Base:       money(price * 0.8),
				GrandTotal: total,
			},
			PricingOptions: domain.PricingOptions{
				FareType:                []string{"PUBLISHED"},
				IncludedCheckedBagsOnly: bags > 0,
			},
			ValidatingAirlineCodes: []string{carrier},
			TravelerPricings: []domain.TravelerPricing{{
				TravelerID:   "1",
				FareOption:   "STANDARD",
				TravelerType: "ADULT",
				Price:        domain.Price{Currency: currency, Total: total},
				FareDetailsBySegment: []domain.FareDetailBySegment{{
					SegmentID:           "1",
					Cabin:               cabin,
					FareBasis:           "Y",
					Class:               "Y",
					IncludedCheckedBags: domain.CheckedBags{Quantity: bags},
				}},
			}},
		}
	}
	return offers
}

func segment(from, to string, dep, arr time.Time, carrier string, rng *rand.Rand) domain.Segment {
	return domain.Segment{
		Departure:   domain.Endpoint{IATACode: from, At: dep.Format(timestampLayout)},
		Arrival:     domain.Endpoint{IATACode: to, At: arr.Format(timestampLayout)},
		CarrierCode: carrier,
		Number:      strconv.Itoa(1000 + rng.Intn(9000)),
		Aircraft:    domain.Aircraft{Code: "737"},
		Duration:    fmt.Sprintf("PT%dH", int(arr.Sub(dep).Hours())),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// seed hashes the route and date so each search has its own stable sequence.
func seed(params domain.SearchParams) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToUpper(params.Origin) + "|" + strings.ToUpper(params.Destination) + "|" + params.DepartureDate))
	return int64(h.Sum64())
}
