package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
)

func pricedOffers(totals ...string) []domain.FlightOffer {
	offers := make([]domain.FlightOffer, len(totals))
	for i, total := range totals {
		offers[i] = priced(fmt.Sprintf("o%d", i), total)
	}
	return offers
}

func bucketTotal(buckets []domain.PriceBucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}

func TestBuildPriceBuckets_Empty(t *testing.T) {
	got := BuildPriceBuckets(nil, "USD")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildPriceBuckets_AllEqualPrices(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("100", "100", "100"), "USD")

	require.Len(t, got, 1)
	assert.Equal(t, domain.PriceBucket{PriceFloor: 100, Price: 100, Count: 3, Label: "$100"}, got[0])
}

func TestBuildPriceBuckets_SingleOffer(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("452.10"), "USD")

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, "$452", got[0].Label)
	assert.Equal(t, int64(452), got[0].Price)
}

func TestBuildPriceBuckets_BucketCountAndWidth(t *testing.T) {
	// Three offers give three buckets of width (300-100)/3.
	got := BuildPriceBuckets(pricedOffers("100", "200", "300"), "USD")

	require.Len(t, got, 3)
	assert.InDelta(t, 100, got[0].PriceFloor, 1e-9)
	assert.InDelta(t, 166.6667, got[1].PriceFloor, 1e-3)
	assert.InDelta(t, 233.3333, got[2].PriceFloor, 1e-3)
	assert.Equal(t, []int{1, 1, 1}, []int{got[0].Count, got[1].Count, got[2].Count})
	assert.Equal(t, []string{"$100", "$167", "$233"}, []string{got[0].Label, got[1].Label, got[2].Label})
	assert.Equal(t, []int64{100, 167, 233}, []int64{got[0].Price, got[1].Price, got[2].Price})
}

func TestBuildPriceBuckets_CapsAtFifteen(t *testing.T) {
	totals := make([]string, 40)
	for i := range totals {
		totals[i] = fmt.Sprintf("%d", 300+i*25)
	}

	got := BuildPriceBuckets(pricedOffers(totals...), "USD")

	assert.Len(t, got, 15)
	assert.Equal(t, 40, bucketTotal(got))
}

func TestBuildPriceBuckets_MaxLandsInLastBucket(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("100", "150", "200", "1000"), "USD")

	require.Len(t, got, 4)
	assert.Equal(t, 1, got[len(got)-1].Count)
	assert.Equal(t, 3, got[0].Count)
	assert.Equal(t, 0, got[1].Count)
	assert.Equal(t, 0, got[2].Count)
}

func TestBuildPriceBuckets_HalfOpenBoundaries(t *testing.T) {
	// Width is 100: [0,100) [100,200) [200,300] and 100 belongs to the second bucket.
	got := BuildPriceBuckets(pricedOffers("0", "100", "300"), "USD")

	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 1, 1}, []int{got[0].Count, got[1].Count, got[2].Count})
}

func TestBuildPriceBuckets_Coverage(t *testing.T) {
	inputs := [][]string{
		{"10"},
		{"10", "10"},
		{"452.10", "320.50", "780.99", "1210.00", "99.99"},
		{"300.01", "1299.99", "812.45", "450.00", "450.00", "450.00", "1001.10", "733.33", "690.70", "500.50", "320.20", "1111.11", "999.99", "405.05", "888.88", "654.32", "777.77"},
	}

	for _, totals := range inputs {
		got := BuildPriceBuckets(pricedOffers(totals...), "USD")
		assert.Equal(t, len(totals), bucketTotal(got), "totals %v", totals)
	}
}

func TestBuildPriceBuckets_AscendingFloors(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("300.01", "1299.99", "812.45", "450.00", "1001.10", "733.33"), "USD")

	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].PriceFloor, got[i].PriceFloor)
	}
}

func TestBuildPriceBuckets_SkipsUnparseablePrices(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("100", "bad", "300"), "USD")

	// Three offers still give three buckets; only the two parseable prices are counted.
	require.Len(t, got, 3)
	assert.Equal(t, 2, bucketTotal(got))
}

func TestBuildPriceBuckets_NoParseablePrices(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("x", "y"), "USD")

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildPriceBuckets_CurrencyLabels(t *testing.T) {
	got := BuildPriceBuckets(pricedOffers("1500", "1500"), "EUR")
	require.Len(t, got, 1)
	assert.Equal(t, "€1,500", got[0].Label)

	got = BuildPriceBuckets(pricedOffers("1500"), "CHF")
	require.Len(t, got, 1)
	assert.Equal(t, "CHF 1,500", got[0].Label)
}

func TestBuildPriceBuckets_DoesNotMutateInput(t *testing.T) {
	offers := pricedOffers("300", "100", "200")

	_ = BuildPriceBuckets(offers, "USD")

	assert.Equal(t, []string{"o0", "o1", "o2"}, ids(offers))
	assert.Equal(t, "300", offers[0].Price.Total)
}
