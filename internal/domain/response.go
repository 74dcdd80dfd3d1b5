package domain

// SearchResponse is the filtered, sorted and summarised view of an offer collection.
type SearchResponse struct {
	// Offers contains the offers after filtering and sorting
	Offers []FlightOffer `json:"offers"`

	// Carriers maps carrier codes to display names
	Carriers map[string]string `json:"carriers"`

	// Airlines lists the carriers present in the unfiltered collection, for the filter panel
	Airlines []AirlineOption `json:"airlines"`

	// PriceRange is the observed [floor(min), ceil(max)] of the unfiltered collection
	PriceRange PriceRange `json:"priceRange"`

	// PriceBuckets is the price histogram
	PriceBuckets []PriceBucket `json:"priceBuckets"`

	// Filters echoes the filter spec that was applied
	Filters FilterSpec `json:"filters"`

	// SortBy echoes the sort key that was applied
	SortBy SortKey `json:"sortBy"`

	// Currency is the display currency
	Currency string `json:"currency"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`
}

// AirlineOption is a selectable carrier in the filter panel.
type AirlineOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the number of offers after filtering
	TotalResults int `json:"totalResults"`

	// UnfilteredResults is the number of offers before filtering
	UnfilteredResults int `json:"unfilteredResults"`

	// ActiveFilters is the filter badge count
	ActiveFilters int `json:"activeFilters"`

	// Source names the provider that produced the offers
	Source string `json:"source,omitempty"`

	// CacheHit indicates whether the offers came from cache
	CacheHit bool `json:"cacheHit"`

	// SearchTimeMs is the total time spent in milliseconds
	SearchTimeMs int64 `json:"searchTimeMs"`
}

// NewSearchResponse creates a SearchResponse around offers.
// TotalResults is set from the offer count; nil slices are replaced with empty ones
// so they serialise as [] rather than null.
func NewSearchResponse(offers []FlightOffer, metadata SearchMetadata) *SearchResponse {
	if offers == nil {
		offers = []FlightOffer{}
	}
	metadata.TotalResults = len(offers)
	return &SearchResponse{
		Offers:       offers,
		Carriers:     map[string]string{},
		Airlines:     []AirlineOption{},
		PriceBuckets: []PriceBucket{},
		Metadata:     metadata,
	}
}
