package usecase

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

func TestSortOffers_ByPrice(t *testing.T) {
	offers := []domain.FlightOffer{priced("500", "500"), priced("100", "100"), priced("300", "300")}

	got := SortOffers(offers, domain.SortByPrice)

	assert.Equal(t, []string{"100", "300", "500"}, ids(got))
}

func TestSortOffers_PriceComparesNumerically(t *testing.T) {
	offers := []domain.FlightOffer{priced("a", "1000.00"), priced("b", "999.99"), priced("c", "99")}

	assert.Equal(t, []string{"c", "b", "a"}, ids(SortOffers(offers, domain.SortByPrice)))
}

func TestSortOffers_UnparseablePricesLast(t *testing.T) {
	offers := []domain.FlightOffer{
		priced("nan-1", "oops"),
		priced("300", "300"),
		priced("nan-2", ""),
		priced("100", "100"),
	}

	got := SortOffers(offers, domain.SortByPrice)

	assert.Equal(t, []string{"100", "300", "nan-1", "nan-2"}, ids(got))
}

func TestSortOffers_ByDuration(t *testing.T) {
	offers := []domain.FlightOffer{
		newOffer("5h", "1", []string{"AA"}, leg{"2025-06-01T08:00:00", "2025-06-01T13:00:00"}),
		newOffer("overnight-9h", "1", []string{"AA"}, leg{"2025-06-01T22:00:00", "2025-06-02T07:00:00"}),
		newOffer("2h", "1", []string{"AA"}, leg{"2025-06-01T10:00:00", "2025-06-01T12:00:00"}),
		newOffer("broken-0", "1", []string{"AA"}, leg{"bad", "2025-06-01T12:00:00"}),
	}

	got := SortOffers(offers, domain.SortByDuration)

	assert.Equal(t, []string{"broken-0", "2h", "5h", "overnight-9h"}, ids(got))
}

func TestSortOffers_ByDeparture(t *testing.T) {
	offers := []domain.FlightOffer{
		newOffer("next-day", "1", []string{"AA"}, leg{"2025-06-02T06:00:00", "2025-06-02T08:00:00"}),
		newOffer("evening", "1", []string{"AA"}, leg{"2025-06-01T19:00:00", "2025-06-01T21:00:00"}),
		newOffer("morning", "1", []string{"AA"}, leg{"2025-06-01T07:00:00", "2025-06-01T09:00:00"}),
		newOffer("unparseable", "1", []string{"AA"}, leg{"?", "?"}),
	}

	got := SortOffers(offers, domain.SortByDeparture)

	assert.Equal(t, []string{"unparseable", "morning", "evening", "next-day"}, ids(got))
}

func TestSortOffers_Stable(t *testing.T) {
	tests := []struct {
		name string
		key  domain.SortKey
	}{
		{name: "price", key: domain.SortByPrice},
		{name: "duration", key: domain.SortByDuration},
		{name: "departure", key: domain.SortByDeparture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pairs share every sort key; the letter suffix records input order.
			offers := []domain.FlightOffer{
				newOffer("2-a", "200", []string{"AA"}, leg{"2025-06-01T10:00:00", "2025-06-01T12:00:00"}),
				newOffer("1-a", "100", []string{"AA"}, leg{"2025-06-01T08:00:00", "2025-06-01T09:00:00"}),
				newOffer("2-b", "200", []string{"BA"}, leg{"2025-06-01T10:00:00", "2025-06-01T12:00:00"}),
				newOffer("1-b", "100", []string{"DL"}, leg{"2025-06-01T08:00:00", "2025-06-01T09:00:00"}),
				newOffer("2-c", "200", []string{"EK"}, leg{"2025-06-01T10:00:00", "2025-06-01T12:00:00"}),
			}

			got := SortOffers(offers, tt.key)

			assert.Equal(t, []string{"1-a", "1-b", "2-a", "2-b", "2-c"}, ids(got))
		})
	}
}

func TestSortOffers_IsPermutation(t *testing.T) {
	offers := sampleOffers()
	offers = append(offers, offers[0], offers[2])

	for _, key := range []domain.SortKey{domain.SortByPrice, domain.SortByDuration, domain.SortByDeparture} {
		got := SortOffers(offers, key)
		require.Len(t, got, len(offers))

		want := ids(offers)
		have := ids(got)
		sort.Strings(want)
		sort.Strings(have)
		assert.Equal(t, want, have, "key %s", key)
	}
}

func TestSortOffers_DoesNotMutateInput(t *testing.T) {
	offers := []domain.FlightOffer{priced("500", "500"), priced("100", "100"), priced("300", "300")}

	_ = SortOffers(offers, domain.SortByPrice)

	assert.Equal(t, []string{"500", "100", "300"}, ids(offers))
}

func TestSortOffers_EdgeCases(t *testing.T) {
	got := SortOffers(nil, domain.SortByPrice)
	require.NotNil(t, got)
	assert.Empty(t, got)

	single := []domain.FlightOffer{priced("only", "1")}
	got = SortOffers(single, domain.SortByDuration)
	assert.Equal(t, []string{"only"}, ids(got))

	got[0].ID = "changed"
	assert.Equal(t, "only", single[0].ID)
}

func TestSortOffers_UnknownKeyFallsBackToPrice(t *testing.T) {
	offers := []domain.FlightOffer{priced("500", "500"), priced("100", "100")}

	assert.Equal(t, []string{"100", "500"}, ids(SortOffers(offers, domain.SortKey("best"))))
}
