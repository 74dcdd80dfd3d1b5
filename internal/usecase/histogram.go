package usecase

import (
	"math"

	"github.com/flight-search/flight-offer-explorer/internal/domain"
	"github.com/flight-search/flight-offer-explorer/pkg/currency"
)

// maxPriceBuckets caps the number of histogram bars.
const maxPriceBuckets = 15

// BuildPriceBuckets partitions offer prices into equal-width buckets.
//
// Behavior:
//   - Empty input, or input where no price parses, returns an empty slice
//   - Bucket count is min(15, len(offers))
//   - Bucket i covers [min+i*w, min+(i+1)*w); the last bucket also includes max
//   - When every price is equal a single bucket holds every offer
//   - Unparseable prices are not counted
//   - Labels are the bucket floor formatted in currencyCode with no decimals
func BuildPriceBuckets(offers []domain.FlightOffer, currencyCode string) []domain.PriceBucket {
	lo, hi, ok := priceBounds(offers)
	if !ok {
		return []domain.PriceBucket{}
	}

	count := len(offers)
	if count > maxPriceBuckets {
		count = maxPriceBuckets
	}

	width := (hi - lo) / float64(count)
	if width == 0 {
		count = 1
	}

	buckets := make([]domain.PriceBucket, count)
	for i := range buckets {
		floor := lo + float64(i)*width
		buckets[i] = domain.PriceBucket{
			PriceFloor: floor,
			Price:      int64(math.Round(floor)),
			Label:      currency.FormatPrice(floor, currencyCode),
		}
	}

	for _, o := range offers {
		p := o.Price.Amount()
		if math.IsNaN(p) {
			continue
		}
		buckets[bucketIndex(p, lo, width, count)].Count++
	}

	return buckets
}

// bucketIndex maps a price in [lo, hi] to its bucket, clamping the maximum
// (and any float rounding at the edges) into the last bucket.
func bucketIndex(price, lo, width float64, count int) int {
	if width == 0 {
		return 0
	}
	i := int((price - lo) / width)
	switch {
	case i < 0:
		return 0
	case i >= count:
		return count - 1
	default:
		return i
	}
}
