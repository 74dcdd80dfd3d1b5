package http

import (
	"strings"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/internal/usecase"
)

// ToSearchParams converts a validated SearchOffersRequest to domain.SearchParams.
func ToSearchParams(req *SearchOffersRequest) domain.SearchParams {
	params := domain.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Adults:        req.Adults,
		Children:      req.Children,
		Infants:       req.Infants,
		TravelClass:   req.TravelClass,
		NonStop:       req.NonStop,
		MaxPrice:      req.MaxPrice,
		CurrencyCode:  req.CurrencyCode,
		Max:           req.Max,
	}
	params.SetDefaults()
	return params
}

// ToFilterSpec converts a FilterDTO to a domain.FilterSpec.
// A nil DTO yields nil, leaving the use case to apply the observed price range only.
func ToFilterSpec(dto *FilterDTO) *domain.FilterSpec {
	if dto == nil {
		return nil
	}

	spec := &domain.FilterSpec{
		Stops:           dto.Stops,
		Airlines:        dto.Airlines,
		DepartureTime:   toTimesOfDay(dto.DepartureTime),
		ArrivalTime:     toTimesOfDay(dto.ArrivalTime),
		MaxDuration:     dto.MaxDuration,
		IncludedBaggage: dto.IncludedBaggage,
	}
	if dto.PriceRange != nil {
		spec.PriceRange = domain.PriceRange{Min: dto.PriceRange.Min, Max: dto.PriceRange.Max}
	}
	return spec
}

func toTimesOfDay(labels []string) []domain.TimeOfDay {
	if len(labels) == 0 {
		return nil
	}
	out := make([]domain.TimeOfDay, 0, len(labels))
	for _, l := range labels {
		if t, ok := domain.ParseTimeOfDay(l); ok {
			out = append(out, t)
		}
	}
	return out
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchOffersRequest) usecase.SearchOptions {
	return usecase.SearchOptions{
		Filters:        ToFilterSpec(req.Filters),
		SortBy:         domain.ParseSortKey(req.SortBy),
		Currency:       req.CurrencyCode,
		HistogramScope: usecase.ParseHistogramScope(req.HistogramScope),
	}
}

// ToRefineInput splits a RefineRequest into the offer collection and pipeline options.
func ToRefineInput(req *RefineRequest) (*domain.SearchResult, usecase.SearchOptions) {
	result := &domain.SearchResult{
		Offers:   req.Offers,
		Carriers: req.Carriers,
	}
	opts := usecase.SearchOptions{
		Filters:        ToFilterSpec(req.Filters),
		SortBy:         domain.ParseSortKey(req.SortBy),
		Currency:       strings.ToUpper(req.Currency),
		HistogramScope: usecase.ParseHistogramScope(req.HistogramScope),
	}
	return result, opts
}
