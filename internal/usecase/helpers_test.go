package usecase

import (
	"fmt"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// leg is a segment's departure and arrival timestamps.
type leg struct {
	dep string
	arr string
}

// newOffer builds an offer whose outbound itinerary has one segment per leg.
func newOffer(id, total string, carriers []string, legs ...leg) domain.FlightOffer {
	segments := make([]domain.Segment, len(legs))
	for i, l := range legs {
		carrier := ""
		if len(carriers) > 0 {
			carrier = carriers[0]
		}
		segments[i] = domain.Segment{
			Departure:   domain.Endpoint{IATACode: fmt.Sprintf("A%02d", i), At: l.dep},
			Arrival:     domain.Endpoint{IATACode: fmt.Sprintf("A%02d", i+1), At: l.arr},
			CarrierCode: carrier,
			Number:      fmt.Sprintf("%d", 100+i),
		}
	}
	return domain.FlightOffer{
		ID:                     id,
		Type:                   "flight-offer",
		Itineraries:            []domain.Itinerary{{Duration: "PT2H", Segments: segments}},
		Price:                  domain.Price{Currency: "USD", Total: total},
		ValidatingAirlineCodes: carriers,
	}
}

// priced builds a non-stop AA offer departing at 08:00 with the given total.
func priced(id, total string) domain.FlightOffer {
	return newOffer(id, total, []string{"AA"}, leg{"2025-06-01T08:00:00", "2025-06-01T10:00:00"})
}

// withStops builds an offer with stops+1 consecutive one-hour segments.
func withStops(id string, stops int) domain.FlightOffer {
	legs := make([]leg, stops+1)
	for i := range legs {
		legs[i] = leg{
			dep: fmt.Sprintf("2025-06-01T%02d:00:00", 8+2*i),
			arr: fmt.Sprintf("2025-06-01T%02d:00:00", 9+2*i),
		}
	}
	return newOffer(id, "100", []string{"AA"}, legs...)
}

func ids(offers []domain.FlightOffer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.ID
	}
	return out
}

func openSpec() domain.FilterSpec {
	return domain.NewFilterSpec(domain.PriceRange{Min: 0, Max: 1e9})
}

func intPtr(v int) *int { return &v }
