package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Default search parameters.
const (
	DefaultCurrency  = "USD"
	DefaultMaxOffers = 50
	maxTravelers     = 9
)

// SearchParams defines the parameters for a flight offer search.
type SearchParams struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LHR")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the optional return date in YYYY-MM-DD format
	ReturnDate string `json:"returnDate,omitempty"`

	// Adults is the number of adult travelers (default: 1)
	Adults int `json:"adults"`

	// Children is the number of child travelers
	Children int `json:"children,omitempty"`

	// Infants is the number of infants; each must travel with an adult
	Infants int `json:"infants,omitempty"`

	// TravelClass is ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST (optional)
	TravelClass string `json:"travelClass,omitempty"`

	// NonStop restricts upstream results to non-stop flights
	NonStop bool `json:"nonStop,omitempty"`

	// MaxPrice is an upstream price ceiling, whole currency units
	MaxPrice int `json:"maxPrice,omitempty"`

	// CurrencyCode is the pricing currency (default: USD)
	CurrencyCode string `json:"currencyCode,omitempty"`

	// Max is the upstream result limit (default: 50)
	Max int `json:"max,omitempty"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidTravelClasses defines the allowed upstream travel classes.
var ValidTravelClasses = map[string]bool{
	"ECONOMY":         true,
	"PREMIUM_ECONOMY": true,
	"BUSINESS":        true,
	"FIRST":           true,
}

// Validate checks if the search parameters are valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (s *SearchParams) Validate() error {
	if s.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Origin)
	}

	if s.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !airportCodeRegex.MatchString(s.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, s.Destination)
	}

	if s.Origin == s.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	departure, err := parseSearchDate("departureDate", s.DepartureDate)
	if err != nil {
		return err
	}

	if s.ReturnDate != "" {
		ret, err := parseSearchDate("returnDate", s.ReturnDate)
		if err != nil {
			return err
		}
		if ret.Before(departure) {
			return fmt.Errorf("%w: returnDate cannot be before departureDate", ErrInvalidRequest)
		}
	}

	if s.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidRequest)
	}
	if s.Adults > maxTravelers {
		return fmt.Errorf("%w: adults cannot exceed %d", ErrInvalidRequest, maxTravelers)
	}
	if s.Children < 0 || s.Infants < 0 {
		return fmt.Errorf("%w: children and infants cannot be negative", ErrInvalidRequest)
	}
	if s.Adults+s.Children > maxTravelers {
		return fmt.Errorf("%w: seated travelers cannot exceed %d", ErrInvalidRequest, maxTravelers)
	}
	if s.Infants > s.Adults {
		return fmt.Errorf("%w: infants cannot exceed adults", ErrInvalidRequest)
	}

	if s.TravelClass != "" && !ValidTravelClasses[s.TravelClass] {
		return fmt.Errorf("%w: travelClass must be one of: ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST; got %q", ErrInvalidRequest, s.TravelClass)
	}

	if s.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice cannot be negative", ErrInvalidRequest)
	}

	return nil
}

func parseSearchDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
	}
	if !dateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, field, value)
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidRequest, field, value)
	}
	return t, nil
}

// SetDefaults applies default values to empty optional fields and normalizes codes.
func (s *SearchParams) SetDefaults() {
	s.Origin = strings.ToUpper(strings.TrimSpace(s.Origin))
	s.Destination = strings.ToUpper(strings.TrimSpace(s.Destination))
	s.TravelClass = strings.ToUpper(strings.TrimSpace(s.TravelClass))
	if s.Adults == 0 {
		s.Adults = 1
	}
	if s.CurrencyCode == "" {
		s.CurrencyCode = DefaultCurrency
	}
	if s.Max <= 0 {
		s.Max = DefaultMaxOffers
	}
}

// CacheKey returns a stable string identifying the upstream query.
func (s SearchParams) CacheKey() string {
	return fmt.Sprintf("%s|%s|%s|%s|%d|%d|%d|%s|%t|%d|%s|%d",
		s.Origin, s.Destination, s.DepartureDate, s.ReturnDate,
		s.Adults, s.Children, s.Infants, s.TravelClass,
		s.NonStop, s.MaxPrice, s.CurrencyCode, s.Max)
}

// SearchResult is a provider's answer to a flight offer search.
type SearchResult struct {
	// Offers is the raw offer collection
	Offers []FlightOffer `json:"offers"`

	// Carriers maps carrier codes to display names
	Carriers map[string]string `json:"carriers,omitempty"`

	// Source names the provider that produced the result
	Source string `json:"source"`
}

// Airport is a location returned by the airport lookup.
type Airport struct {
	IATACode    string `json:"iataCode"`
	Name        string `json:"name"`
	City        string `json:"city"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode,omitempty"`
}
