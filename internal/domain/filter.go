package domain

import "strings"

// SortKey defines the available orderings for flight offers.
type SortKey string

// Available sort keys.
const (
	// SortByPrice sorts by total price ascending (cheapest first, default)
	SortByPrice SortKey = "price"

	// SortByDuration sorts by outbound elapsed time ascending (shortest first)
	SortByDuration SortKey = "duration"

	// SortByDeparture sorts by outbound departure instant ascending (earliest first)
	SortByDeparture SortKey = "departure"
)

// IsValid checks if the sort key is a known value.
func (s SortKey) IsValid() bool {
	switch s {
	case SortByPrice, SortByDuration, SortByDeparture:
		return true
	default:
		return false
	}
}

// ParseSortKey converts a string to a SortKey.
// Returns SortByPrice if the string is empty or invalid.
func ParseSortKey(s string) SortKey {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key.IsValid() {
		return key
	}
	return SortByPrice
}

// TimeOfDay is a coarse bucket of the local wall-clock hour.
type TimeOfDay string

// Time-of-day buckets.
const (
	Morning   TimeOfDay = "morning"   // [05:00, 12:00)
	Afternoon TimeOfDay = "afternoon" // [12:00, 17:00)
	Evening   TimeOfDay = "evening"   // [17:00, 21:00)
	Night     TimeOfDay = "night"     // everything else
)

// AllTimesOfDay lists the buckets in display order.
var AllTimesOfDay = []TimeOfDay{Morning, Afternoon, Evening, Night}

// IsValid checks if t is one of the four known buckets.
func (t TimeOfDay) IsValid() bool {
	switch t {
	case Morning, Afternoon, Evening, Night:
		return true
	default:
		return false
	}
}

// ParseTimeOfDay converts a label to a TimeOfDay, reporting whether it is known.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	t := TimeOfDay(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}

// TimeOfDayForHour classifies an hour of the day (0-23).
// Out-of-range hours fall through to Night.
func TimeOfDayForHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// PriceRange is an inclusive [Min, Max] price interval in offer currency units.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceRange is used before any offers have been observed.
var DefaultPriceRange = PriceRange{Min: 0, Max: 10000}

// IsZero reports whether the range was left unset.
func (r PriceRange) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// Contains reports whether price lies within the closed range.
// NaN is never contained.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSpec describes the active filters for a flight offer collection.
// Across dimensions the filters combine with AND; within a dimension the
// selected values combine with OR. Empty dimensions impose no constraint.
type FilterSpec struct {
	// Stops selects exact outbound stop counts (0 = non-stop).
	// Matching is exact: selecting 2 does not match 3-stop offers.
	Stops []int `json:"stops,omitempty"`

	// PriceRange is always applied
	PriceRange PriceRange `json:"priceRange"`

	// Airlines matches when any of the offer's validating codes is selected
	Airlines []string `json:"airlines,omitempty"`

	// DepartureTime selects buckets for the outbound first-segment departure hour
	DepartureTime []TimeOfDay `json:"departureTime,omitempty"`

	// ArrivalTime selects buckets for the outbound last-segment arrival hour
	ArrivalTime []TimeOfDay `json:"arrivalTime,omitempty"`

	// MaxDuration caps outbound elapsed minutes; nil or zero means no cap
	MaxDuration *int `json:"maxDuration,omitempty"`

	// IncludedBaggage is carried for the UI but not enforced by the filter
	IncludedBaggage *bool `json:"includedBaggage,omitempty"`
}

// NewFilterSpec returns a spec with no active selections over the given price range.
func NewFilterSpec(priceRange PriceRange) FilterSpec {
	return FilterSpec{PriceRange: priceRange}
}

// ActiveCount returns the number of active selections, as shown on the filter badge.
func (f *FilterSpec) ActiveCount() int {
	if f == nil {
		return 0
	}
	n := len(f.Stops) + len(f.Airlines) + len(f.DepartureTime) + len(f.ArrivalTime)
	if f.IncludedBaggage != nil && *f.IncludedBaggage {
		n++
	}
	return n
}

// HasMaxDuration reports whether a non-zero duration cap is set.
func (f *FilterSpec) HasMaxDuration() bool {
	return f != nil && f.MaxDuration != nil && *f.MaxDuration != 0
}

// PriceBucket is one bar of the price histogram.
type PriceBucket struct {
	// PriceFloor is the inclusive lower bound of the bucket
	PriceFloor float64 `json:"priceFloor"`

	// Price is PriceFloor rounded to a whole unit, used as the chart x value
	Price int64 `json:"price"`

	// Count is the number of offers whose price falls in the bucket
	Count int `json:"count"`

	// Label is the formatted floor price (e.g., "$450")
	Label string `json:"label"`
}
