// Package usecase provides the business logic for flight offer search operations.
package usecase

import (
	"math"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/infrastructure/timeutil"
)

// FilterOffers returns the offers that match every active dimension of spec.
//
// Behavior:
//   - Dimensions combine with AND; values within a dimension combine with OR
//   - Empty dimensions impose no constraint; the price range is always applied
//   - Matching offers keep their original relative order
//   - Does NOT mutate the original offers slice
//   - Malformed prices (NaN) fail the price range and are excluded
//   - Performance is O(n) where n = number of offers
//
// Example usage:
//
//	spec := domain.NewFilterSpec(usecase.ObservedPriceRange(offers))
//	spec.Stops = []int{0}
//	nonStop := FilterOffers(offers, spec)
func FilterOffers(offers []domain.FlightOffer, spec domain.FilterSpec) []domain.FlightOffer {
	return filterWith(offers, newMatcher(spec, true))
}

func filterWith(offers []domain.FlightOffer, m *matcher) []domain.FlightOffer {
	result := make([]domain.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if m.matches(o) {
			result = append(result, o)
		}
	}
	return result
}

// matcher holds the lookup sets for one FilterOffers call.
type matcher struct {
	spec       domain.FilterSpec
	checkPrice bool
	stops      map[int]struct{}
	airlines   map[string]struct{}
	departures map[domain.TimeOfDay]struct{}
	arrivals   map[domain.TimeOfDay]struct{}
}

func newMatcher(spec domain.FilterSpec, checkPrice bool) *matcher {
	return &matcher{
		spec:       spec,
		checkPrice: checkPrice,
		stops:      buildSet(spec.Stops),
		airlines:   buildSet(spec.Airlines),
		departures: buildSet(spec.DepartureTime),
		arrivals:   buildSet(spec.ArrivalTime),
	}
}

func (m *matcher) matches(o domain.FlightOffer) bool {
	if m.stops != nil && !contains(m.stops, o.StopCount()) {
		return false
	}

	if m.checkPrice && !m.spec.PriceRange.Contains(o.Price.Amount()) {
		return false
	}

	if m.airlines != nil && !anyAirlineIn(o.ValidatingAirlineCodes, m.airlines) {
		return false
	}

	if m.departures != nil && !contains(m.departures, departureSlot(o)) {
		return false
	}

	if m.arrivals != nil && !contains(m.arrivals, arrivalSlot(o)) {
		return false
	}

	if m.spec.HasMaxDuration() && offerMinutes(o) > *m.spec.MaxDuration {
		return false
	}

	return true
}

// buildSet returns nil for an empty selection so callers can skip the dimension.
func buildSet[T comparable](values []T) map[T]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func contains[T comparable](set map[T]struct{}, v T) bool {
	_, ok := set[v]
	return ok
}

// anyAirlineIn is an exact, case-sensitive match on carrier codes.
func anyAirlineIn(codes []string, set map[string]struct{}) bool {
	for _, c := range codes {
		if contains(set, c) {
			return true
		}
	}
	return false
}

func departureSlot(o domain.FlightOffer) domain.TimeOfDay {
	return domain.TimeOfDayForHour(timeutil.HourOf(o.DepartureAt()))
}

func arrivalSlot(o domain.FlightOffer) domain.TimeOfDay {
	return domain.TimeOfDayForHour(timeutil.HourOf(o.ArrivalAt()))
}

// offerMinutes is the outbound elapsed time from first departure to last arrival.
func offerMinutes(o domain.FlightOffer) int {
	return timeutil.ElapsedMinutes(o.DepartureAt(), o.ArrivalAt())
}

// FilterByStops keeps offers whose outbound stop count is one of stops.
// Returns all offers if stops is empty.
func FilterByStops(offers []domain.FlightOffer, stops []int) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{Stops: stops}, false))
}

// FilterByPriceRange keeps offers priced within the closed range r.
// Unparseable prices are excluded.
func FilterByPriceRange(offers []domain.FlightOffer, r domain.PriceRange) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{PriceRange: r}, true))
}

// FilterByAirlines keeps offers with at least one validating code in airlines.
// Returns all offers if airlines is empty.
func FilterByAirlines(offers []domain.FlightOffer, airlines []string) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{Airlines: airlines}, false))
}

// FilterByDepartureTime keeps offers whose first departure falls in one of slots.
func FilterByDepartureTime(offers []domain.FlightOffer, slots []domain.TimeOfDay) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{DepartureTime: slots}, false))
}

// FilterByArrivalTime keeps offers whose last arrival falls in one of slots.
func FilterByArrivalTime(offers []domain.FlightOffer, slots []domain.TimeOfDay) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{ArrivalTime: slots}, false))
}

// FilterByMaxDuration keeps offers whose outbound elapsed time is at most maxMinutes.
// Returns all offers if maxMinutes is zero.
func FilterByMaxDuration(offers []domain.FlightOffer, maxMinutes int) []domain.FlightOffer {
	return filterWith(offers, newMatcher(domain.FilterSpec{MaxDuration: &maxMinutes}, false))
}

// ObservedPriceRange returns [floor(min), ceil(max)] over the parseable prices,
// or domain.DefaultPriceRange when none parse.
func ObservedPriceRange(offers []domain.FlightOffer) domain.PriceRange {
	lo, hi, ok := priceBounds(offers)
	if !ok {
		return domain.DefaultPriceRange
	}
	return domain.PriceRange{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

// priceBounds returns the min and max parseable price, and false if there are none.
func priceBounds(offers []domain.FlightOffer) (lo, hi float64, ok bool) {
	for _, o := range offers {
		p := o.Price.Amount()
		if math.IsNaN(p) {
			continue
		}
		if !ok {
			lo, hi, ok = p, p, true
			continue
		}
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	return lo, hi, ok
}

// AvailableAirlines returns the distinct validating carrier codes in first-seen
// order, named from carriers when a name is known.
func AvailableAirlines(offers []domain.FlightOffer, carriers map[string]string) []domain.AirlineOption {
	seen := make(map[string]struct{})
	result := make([]domain.AirlineOption, 0)
	for _, o := range offers {
		for _, code := range o.ValidatingAirlineCodes {
			if _, ok := seen[code]; ok || code == "" {
				continue
			}
			seen[code] = struct{}{}
			result = append(result, domain.AirlineOption{Code: code, Name: CarrierName(code, carriers)})
		}
	}
	return result
}

// CarrierName returns the display name for code, or code itself when unknown.
func CarrierName(code string, carriers map[string]string) string {
	if name, ok := carriers[code]; ok && name != "" {
		return name
	}
	return code
}
