package usecase

import (
	"strings"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// HistogramScope selects which collection the price histogram summarises.
type HistogramScope string

// Histogram scopes.
const (
	// HistogramUnfiltered summarises every offer the provider returned (default)
	HistogramUnfiltered HistogramScope = "unfiltered"

	// HistogramFiltered summarises only the offers that passed the filters
	HistogramFiltered HistogramScope = "filtered"
)

// IsValid checks if the scope is a known value.
func (s HistogramScope) IsValid() bool {
	return s == HistogramUnfiltered || s == HistogramFiltered
}

// ParseHistogramScope converts a string to a HistogramScope, defaulting to unfiltered.
func ParseHistogramScope(s string) HistogramScope {
	scope := HistogramScope(strings.ToLower(strings.TrimSpace(s)))
	if scope.IsValid() {
		return scope
	}
	return HistogramUnfiltered
}

// SearchOptions contains optional parameters for the offer pipeline.
type SearchOptions struct {
	// Filters contains optional filtering criteria; nil applies only the observed price range
	Filters *domain.FilterSpec

	// SortBy specifies how to sort the results (default: price)
	SortBy domain.SortKey

	// Currency is the display currency for histogram labels (default: the offers' currency)
	Currency string

	// HistogramScope selects the histogram input (default: unfiltered)
	HistogramScope HistogramScope
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		SortBy:         domain.SortByPrice,
		HistogramScope: HistogramUnfiltered,
	}
}
