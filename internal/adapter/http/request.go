package http

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// SearchOffersRequest represents the request body for a flight offer search.
type SearchOffersRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin" example:"JFK"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination" example:"LHR"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" example:"2025-06-01"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult travelers (1-9, default 1)
	Adults int `json:"adults,omitempty" example:"1"`

	// Children is the number of child travelers (0-9)
	Children int `json:"children,omitempty"`

	// Infants is the number of infants (0-9, at most one per adult)
	Infants int `json:"infants,omitempty"`

	// TravelClass is ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST (optional)
	TravelClass string `json:"travelClass,omitempty" example:"ECONOMY"`

	// NonStop restricts the upstream query to non-stop flights
	NonStop bool `json:"nonStop,omitempty"`

	// MaxPrice is an upstream price ceiling in whole currency units
	MaxPrice int `json:"maxPrice,omitempty"`

	// CurrencyCode is the pricing currency (default USD)
	CurrencyCode string `json:"currencyCode,omitempty" example:"USD"`

	// Max is the upstream result limit (1-250, default 50)
	Max int `json:"max,omitempty"`

	// Filters contains optional filtering criteria
	Filters *FilterDTO `json:"filters,omitempty"`

	// SortBy specifies how to sort results: price, duration, departure
	SortBy string `json:"sortBy,omitempty" example:"price"`

	// HistogramScope selects the histogram input: unfiltered (default) or filtered
	HistogramScope string `json:"histogramScope,omitempty" example:"unfiltered"`
}

// RefineRequest represents the request body for re-running the pipeline over
// offers the client already holds.
type RefineRequest struct {
	// Offers is the raw offer collection from a previous search
	Offers []domain.FlightOffer `json:"offers"`

	// Carriers maps carrier codes to display names
	Carriers map[string]string `json:"carriers,omitempty"`

	// Currency is the display currency for histogram labels
	Currency string `json:"currency,omitempty" example:"USD"`

	Filters        *FilterDTO `json:"filters,omitempty"`
	SortBy         string     `json:"sortBy,omitempty" example:"duration"`
	HistogramScope string     `json:"histogramScope,omitempty" example:"filtered"`
}

// FilterDTO represents optional filters for an offer collection.
// Example: {"stops": [0], "priceRange": {"min": 300, "max": 800}, "departureTime": ["morning"]}
type FilterDTO struct {
	// Stops selects exact stop counts (0 = non-stop)
	Stops []int `json:"stops,omitempty" example:"0,1"`

	// PriceRange bounds the offer total; omitted means the observed range
	PriceRange *PriceRangeDTO `json:"priceRange,omitempty"`

	// Airlines selects validating carrier codes
	Airlines []string `json:"airlines,omitempty" example:"AA,BA"`

	// DepartureTime selects morning, afternoon, evening or night departures
	DepartureTime []string `json:"departureTime,omitempty" example:"morning"`

	// ArrivalTime selects morning, afternoon, evening or night arrivals
	ArrivalTime []string `json:"arrivalTime,omitempty" example:"evening"`

	// MaxDuration caps the outbound elapsed time in minutes; 0 means no cap
	MaxDuration *int `json:"maxDuration,omitempty" example:"600"`

	// IncludedBaggage is echoed back but not enforced
	IncludedBaggage *bool `json:"includedBaggage,omitempty"`
}

// PriceRangeDTO is an inclusive price interval.
type PriceRangeDTO struct {
	Min float64 `json:"min" example:"300"`
	Max float64 `json:"max" example:"800"`
}

// Validation regex patterns.
var (
	airportCodePattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	airlineCodePattern  = regexp.MustCompile(`^[A-Z0-9]{2,3}$`)
)

const (
	maxTravelers = 9
	maxOffers    = 250
)

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// When a field fails more than once, the first message wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; !ok {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Validate validates the search request, normalising codes to upper case.
func (r *SearchOffersRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Origin = validateAirportCode(errs, "origin", r.Origin)
	r.Destination = validateAirportCode(errs, "destination", r.Destination)
	if r.Origin != "" && r.Origin == r.Destination {
		errs.Add("destination", "origin and destination must be different")
	}

	r.validateDates(errs)
	r.validateTravelers(errs)

	r.TravelClass = strings.ToUpper(strings.TrimSpace(r.TravelClass))
	if r.TravelClass != "" && !domain.ValidTravelClasses[r.TravelClass] {
		errs.Add("travelClass", "travelClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST")
	}

	if r.MaxPrice < 0 {
		errs.Add("maxPrice", "maxPrice cannot be negative")
	}
	if r.Max < 0 || r.Max > maxOffers {
		errs.Add("max", fmt.Sprintf("max must be between 1 and %d", maxOffers))
	}

	r.CurrencyCode = validateCurrency(errs, "currencyCode", r.CurrencyCode)
	validateSortBy(errs, r.SortBy)
	validateHistogramScope(errs, r.HistogramScope)
	validateFilters(errs, r.Filters)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates the refine request.
func (r *RefineRequest) Validate() error {
	errs := &ValidationErrors{}

	r.Currency = validateCurrency(errs, "currency", r.Currency)
	validateSortBy(errs, r.SortBy)
	validateHistogramScope(errs, r.HistogramScope)
	validateFilters(errs, r.Filters)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateAirportCode(errs *ValidationErrors, field, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		errs.Add(field, field+" is required")
		return code
	}
	if !airportCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
	}
	return code
}

func (r *SearchOffersRequest) validateDates(errs *ValidationErrors) {
	departure, ok := validateDate(errs, "departureDate", r.DepartureDate, true)
	if r.ReturnDate == "" {
		return
	}
	ret, retOK := validateDate(errs, "returnDate", r.ReturnDate, false)
	if ok && retOK && ret.Before(departure) {
		errs.Add("returnDate", "returnDate cannot be before departureDate")
	}
}

func validateDate(errs *ValidationErrors, field, value string, required bool) (time.Time, bool) {
	if value == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return time.Time{}, false
	}
	if !datePattern.MatchString(value) {
		errs.Add(field, field+" must be in YYYY-MM-DD format")
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		errs.Add(field, field+" is not a valid date")
		return time.Time{}, false
	}
	return t, true
}

func (r *SearchOffersRequest) validateTravelers(errs *ValidationErrors) {
	adults := r.Adults
	if adults == 0 {
		adults = 1
	}
	switch {
	case adults < 1:
		errs.Add("adults", "adults must be at least 1")
	case adults > maxTravelers:
		errs.Add("adults", fmt.Sprintf("adults cannot exceed %d", maxTravelers))
	}

	if r.Children < 0 || r.Children > maxTravelers {
		errs.Add("children", fmt.Sprintf("children must be between 0 and %d", maxTravelers))
	}
	if r.Infants < 0 || r.Infants > maxTravelers {
		errs.Add("infants", fmt.Sprintf("infants must be between 0 and %d", maxTravelers))
	} else if adults >= 1 && r.Infants > adults {
		errs.Add("infants", "infants cannot exceed adults")
	}
}

func validateCurrency(errs *ValidationErrors, field, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" && !currencyCodePattern.MatchString(code) {
		errs.Add(field, field+" must be a 3-letter ISO 4217 code")
	}
	return code
}

func validateSortBy(errs *ValidationErrors, sortBy string) {
	s := strings.TrimSpace(sortBy)
	if s != "" && !domain.SortKey(strings.ToLower(s)).IsValid() {
		errs.Add("sortBy", "sortBy must be one of: price, duration, departure")
	}
}

func validateHistogramScope(errs *ValidationErrors, scope string) {
	s := strings.TrimSpace(scope)
	if s != "" && !usecase.HistogramScope(strings.ToLower(s)).IsValid() {
		errs.Add("histogramScope", "histogramScope must be one of: unfiltered, filtered")
	}
}

// validateFilters checks the filter block and upper-cases airline codes in place.
func validateFilters(errs *ValidationErrors, f *FilterDTO) {
	if f == nil {
		return
	}

	for i, s := range f.Stops {
		if s < 0 {
			errs.Add(fmt.Sprintf("filters.stops[%d]", i), "stops must be a non-negative number")
		}
	}

	if pr := f.PriceRange; pr != nil {
		if pr.Min < 0 || pr.Max < 0 {
			errs.Add("filters.priceRange", "priceRange bounds cannot be negative")
		} else if pr.Min > pr.Max {
			errs.Add("filters.priceRange", "priceRange min must be less than or equal to max")
		}
	}

	for i, code := range f.Airlines {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if !airlineCodePattern.MatchString(normalized) {
			errs.Add(fmt.Sprintf("filters.airlines[%d]", i), "airline code must be 2 or 3 characters")
		}
		f.Airlines[i] = normalized
	}

	validateTimesOfDay(errs, "filters.departureTime", f.DepartureTime)
	validateTimesOfDay(errs, "filters.arrivalTime", f.ArrivalTime)

	if f.MaxDuration != nil && *f.MaxDuration < 0 {
		errs.Add("filters.maxDuration", "maxDuration must be a non-negative number")
	}
}

func validateTimesOfDay(errs *ValidationErrors, field string, labels []string) {
	for i, label := range labels {
		if _, ok := domain.ParseTimeOfDay(label); !ok {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), "time of day must be one of: morning, afternoon, evening, night")
		}
	}
}
