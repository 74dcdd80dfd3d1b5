package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// OfferProvider is the port to an upstream source of flight offers and airports.
// Implementations must be safe for concurrent use.
type OfferProvider interface {
	// Name returns the provider's unique identifier (e.g., "amadeus").
	Name() string

	// SearchOffers returns the raw offer collection for params.
	SearchOffers(ctx context.Context, params SearchParams) (*SearchResult, error)

	// SearchAirports returns airports matching keyword by code, name or city.
	SearchAirports(ctx context.Context, keyword string) ([]Airport, error)
}
