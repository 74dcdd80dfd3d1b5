package usecase

import (
	"math"
	"sort"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// SortOffers returns a copy of offers ordered by key; the input is not modified.
//
// Sort keys:
//   - SortByPrice: total price ascending; unparseable prices go last
//   - SortByDuration: outbound elapsed minutes ascending
//   - SortByDeparture: outbound departure instant ascending; unparseable
//     timestamps sort as the zero instant
//
// Equal keys keep their input order. Unknown keys fall back to price.
func SortOffers(offers []domain.FlightOffer, key domain.SortKey) []domain.FlightOffer {
	result := make([]domain.FlightOffer, len(offers))
	copy(result, offers)

	if len(result) < 2 {
		return result
	}

	switch key {
	case domain.SortByDuration:
		sortByDuration(result)
	case domain.SortByDeparture:
		sortByDeparture(result)
	default:
		sortByPrice(result)
	}

	return result
}

// sortByPrice keys are computed once; NaN compares as greater than every number.
func sortByPrice(offers []domain.FlightOffer) {
	keys := make([]float64, len(offers))
	for i, o := range offers {
		keys[i] = o.Price.Amount()
	}
	stableSortBy(offers, keys, func(a, b float64) bool {
		if math.IsNaN(a) {
			return false
		}
		return math.IsNaN(b) || a < b
	})
}

func sortByDuration(offers []domain.FlightOffer) {
	keys := make([]int, len(offers))
	for i, o := range offers {
		keys[i] = offerMinutes(o)
	}
	stableSortBy(offers, keys, func(a, b int) bool { return a < b })
}

func sortByDeparture(offers []domain.FlightOffer) {
	keys := make([]time.Time, len(offers))
	for i, o := range offers {
		keys[i], _ = timeutil.ParseTimestamp(o.DepartureAt())
	}
	stableSortBy(offers, keys, func(a, b time.Time) bool { return a.Before(b) })
}

// stableSortBy sorts offers and keys together, ordered by less over keys.
func stableSortBy[K any](offers []domain.FlightOffer, keys []K, less func(a, b K) bool) {
	sort.Stable(&keyedOffers[K]{offers: offers, keys: keys, less: less})
}

type keyedOffers[K any] struct {
	offers []domain.FlightOffer
	keys   []K
	less   func(a, b K) bool
}

func (k *keyedOffers[K]) Len() int           { return len(k.offers) }
func (k *keyedOffers[K]) Less(i, j int) bool { return k.less(k.keys[i], k.keys[j]) }
func (k *keyedOffers[K]) Swap(i, j int) {
	k.offers[i], k.offers[j] = k.offers[j], k.offers[i]
	k.keys[i], k.keys[j] = k.keys[j], k.keys[i]
}
