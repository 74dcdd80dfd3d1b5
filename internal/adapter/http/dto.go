package http

import (
	"math"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
	"github.com/flight-search/flight-offer-explorer/pkg/currency"
)

// SearchResponseDTO is the data transfer object for search and refine responses.
type SearchResponseDTO struct {
	Offers       []OfferDTO             `json:"offers"`
	Carriers     map[string]string      `json:"carriers"`
	Airlines     []domain.AirlineOption `json:"airlines"`
	PriceRange   domain.PriceRange      `json:"priceRange"`
	PriceBuckets []domain.PriceBucket   `json:"priceBuckets"`
	Filters      domain.FilterSpec      `json:"filters"`
	SortBy       domain.SortKey         `json:"sortBy"`
	Currency     string                 `json:"currency"`
	Metadata     domain.SearchMetadata  `json:"metadata"`
}

// OfferDTO is one offer card: display fields plus the raw offer, which the
// client sends back to the refine endpoint.
type OfferDTO struct {
	ID          string      `json:"id"`
	Carrier     CarrierDTO  `json:"carrier"`
	Price       PriceDTO    `json:"price"`
	Stops       int         `json:"stops"`
	StopsLabel  string      `json:"stopsLabel"`
	Duration    DurationDTO `json:"duration"`
	Departure   EndpointDTO `json:"departure"`
	Arrival     EndpointDTO `json:"arrival"`
	Cabin       string      `json:"cabin,omitempty"`
	CheckedBags int         `json:"checkedBags"`

	Offer domain.FlightOffer `json:"offer"`
}

// CarrierDTO names the primary validating carrier.
type CarrierDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// PriceDTO represents price information.
// Amount is omitted when the upstream total is not a number.
type PriceDTO struct {
	Total    string   `json:"total"`
	Currency string   `json:"currency"`
	Amount   *float64 `json:"amount,omitempty"`
	Display  string   `json:"display"`
}

// DurationDTO represents the outbound flight duration.
type DurationDTO struct {
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}

// EndpointDTO represents a departure or arrival point.
type EndpointDTO struct {
	Airport string `json:"airport"`
	At      string `json:"at"`
	Time    string `json:"time"`
	Day     string `json:"day"`
}

// ToSearchResponseDTO converts a domain SearchResponse to a SearchResponseDTO.
func ToSearchResponseDTO(resp *domain.SearchResponse) *SearchResponseDTO {
	if resp == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		Offers:       make([]OfferDTO, len(resp.Offers)),
		Carriers:     resp.Carriers,
		Airlines:     resp.Airlines,
		PriceRange:   resp.PriceRange,
		PriceBuckets: resp.PriceBuckets,
		Filters:      resp.Filters,
		SortBy:       resp.SortBy,
		Currency:     resp.Currency,
		Metadata:     resp.Metadata,
	}
	if dto.Carriers == nil {
		dto.Carriers = map[string]string{}
	}
	if dto.Airlines == nil {
		dto.Airlines = []domain.AirlineOption{}
	}
	if dto.PriceBuckets == nil {
		dto.PriceBuckets = []domain.PriceBucket{}
	}

	for i, offer := range resp.Offers {
		dto.Offers[i] = ToOfferDTO(offer, resp.Carriers)
	}
	return dto
}

// ToOfferDTO converts a domain FlightOffer to an OfferDTO.
func ToOfferDTO(offer domain.FlightOffer, carriers map[string]string) OfferDTO {
	code := offer.PrimaryCarrier()
	first, last := offer.FirstSegment(), offer.LastSegment()
	stops := offer.StopCount()

	var durationToken string
	if it, ok := offer.Outbound(); ok {
		durationToken = it.Duration
	}

	dto := OfferDTO{
		ID: offer.ID,
		Carrier: CarrierDTO{
			Code: code,
			Name: usecase.CarrierName(code, carriers),
		},
		Price: PriceDTO{
			Total:    offer.Price.Total,
			Currency: offer.Price.Currency,
			Display:  currency.FormatPriceString(offer.Price.Total, offer.Price.Currency),
		},
		Stops:      stops,
		StopsLabel: domain.StopsLabel(stops),
		Duration: DurationDTO{
			Minutes: timeutil.ElapsedMinutes(first.Departure.At, last.Arrival.At),
			Label:   timeutil.ParseDurationLabel(durationToken),
		},
		Departure:   toEndpointDTO(first.Departure),
		Arrival:     toEndpointDTO(last.Arrival),
		Cabin:       cabinOf(offer),
		CheckedBags: offer.CheckedBags(),
		Offer:       offer,
	}

	if amount := offer.Price.Amount(); !math.IsNaN(amount) && !math.IsInf(amount, 0) {
		dto.Price.Amount = &amount
	}
	return dto
}

func toEndpointDTO(e domain.Endpoint) EndpointDTO {
	return EndpointDTO{
		Airport: e.IATACode,
		At:      e.At,
		Time:    timeutil.FormatClock(e.At),
		Day:     timeutil.FormatDay(e.At),
	}
}

func cabinOf(offer domain.FlightOffer) string {
	if len(offer.TravelerPricings) == 0 || len(offer.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return ""
	}
	return offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin
}

// AirportsResponseDTO wraps an airport lookup.
type AirportsResponseDTO struct {
	Keyword  string           `json:"keyword"`
	Airports []domain.Airport `json:"airports"`
}

// HealthResponseDTO reports which provider is answering searches.
type HealthResponseDTO struct {
	Status   string `json:"status"`
	Provider string `json:"provider,omitempty"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}
