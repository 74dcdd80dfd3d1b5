package mockdata

import (
	"strings"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

var airports = []domain.Airport{
	{IATACode: "JFK", Name: "John F. Kennedy International", City: "New York", Country: "United States", CountryCode: "US"},
	{IATACode: "LHR", Name: "Heathrow", City: "London", Country: "United Kingdom", CountryCode: "GB"},
	{IATACode: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France", CountryCode: "FR"},
	{IATACode: "DXB", Name: "Dubai International", City: "Dubai", Country: "United Arab Emirates", CountryCode: "AE"},
	{IATACode: "SIN", Name: "Changi", City: "Singapore", Country: "Singapore", CountryCode: "SG"},
	{IATACode: "NRT", Name: "Narita", City: "Tokyo", Country: "Japan", CountryCode: "JP"},
	{IATACode: "HND", Name: "Haneda", City: "Tokyo", Country: "Japan", CountryCode: "JP"},
	{IATACode: "SYD", Name: "Kingsford Smith", City: "Sydney", Country: "Australia", CountryCode: "AU"},
	{IATACode: "LAX", Name: "Los Angeles International", City: "Los Angeles", Country: "United States", CountryCode: "US"},
	{IATACode: "SFO", Name: "San Francisco International", City: "San Francisco", Country: "United States", CountryCode: "US"},
}

// FindAirports returns the directory entries whose name, city or code
// contains keyword, ignoring case. It never returns nil.
func FindAirports(keyword string) []domain.Airport {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	result := make([]domain.Airport, 0)
	if kw == "" {
		return result
	}
	for _, a := range airports {
		if strings.Contains(strings.ToLower(a.Name), kw) ||
			strings.Contains(strings.ToLower(a.City), kw) ||
			strings.Contains(strings.ToLower(a.IATACode), kw) {
			result = append(result, a)
		}
	}
	return result
}
