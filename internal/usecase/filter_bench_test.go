package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

// benchOffers builds n offers with alternating stops and spread departures.
func benchOffers(n int) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, n)
	base := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	carriers := []string{"AA", "BA", "DL", "EK", "SQ"}

	for i := 0; i < n; i++ {
		dep := base.Add(time.Duration(i*37) * time.Minute)
		legs := []leg{{dep.Format("2006-01-02T15:04:05"), dep.Add(2 * time.Hour).Format("2006-01-02T15:04:05")}}
		if i%2 == 1 {
			next := dep.Add(3 * time.Hour)
			legs = append(legs, leg{next.Format("2006-01-02T15:04:05"), next.Add(4 * time.Hour).Format("2006-01-02T15:04:05")})
		}
		offers[i] = newOffer(
			fmt.Sprintf("bench-%d", i),
			fmt.Sprintf("%.2f", 300+float64(i%100)*10.5),
			[]string{carriers[i%len(carriers)]},
			legs...,
		)
	}
	return offers
}

func BenchmarkFilterOffers(b *testing.B) {
	offers := benchOffers(250)
	observed := ObservedPriceRange(offers)

	b.Run("price_range_only", func(b *testing.B) {
		spec := domain.NewFilterSpec(observed)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			FilterOffers(offers, spec)
		}
	})

	b.Run("stops_and_airlines", func(b *testing.B) {
		spec := domain.NewFilterSpec(observed)
		spec.Stops = []int{0}
		spec.Airlines = []string{"AA", "EK"}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			FilterOffers(offers, spec)
		}
	})

	b.Run("all_dimensions", func(b *testing.B) {
		spec := domain.NewFilterSpec(domain.PriceRange{Min: 400, Max: 900})
		spec.Stops = []int{0, 1}
		spec.Airlines = []string{"AA", "BA", "DL"}
		spec.DepartureTime = []domain.TimeOfDay{domain.Morning, domain.Afternoon}
		spec.ArrivalTime = []domain.TimeOfDay{domain.Afternoon, domain.Evening}
		spec.MaxDuration = intPtr(600)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			FilterOffers(offers, spec)
		}
	})
}

func BenchmarkSortOffers(b *testing.B) {
	offers := benchOffers(250)

	for _, key := range []domain.SortKey{domain.SortByPrice, domain.SortByDuration, domain.SortByDeparture} {
		b.Run(string(key), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				SortOffers(offers, key)
			}
		})
	}
}

func BenchmarkBuildPriceBuckets(b *testing.B) {
	offers := benchOffers(250)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildPriceBuckets(offers, "USD")
	}
}
