package segmentation

import (
	"math"
	"sort"
)

// PercentileThreshold returns the value at the given percentile of the
// distribution: sort ascending, index ceil(n*pct/100)-1, clamped to the
// array bounds. An empty distribution yields 0.
func PercentileThreshold(values []float64, pct float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(float64(len(sorted))*pct/100)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// percentileCount returns how many of n items fall inside pct percent.
func percentileCount(n int, pct float64) int {
	count := int(math.Ceil(float64(n) * pct / 100))
	if count < 0 {
		count = 0
	}
	if count > n {
		count = n
	}
	return count
}

// TopPercentile returns the items whose mapped value places them in the
// top pct percent, sorted descending by value. Ties keep input order.
func TopPercentile[T any](items []T, value func(*T) float64, pct float64) []T {
	sorted := sortedByValue(items, value, true)
	return sorted[:percentileCount(len(sorted), pct)]
}

// BottomPercentile returns the items whose mapped value places them in the
// bottom pct percent, sorted ascending by value. Ties keep input order.
func BottomPercentile[T any](items []T, value func(*T) float64, pct float64) []T {
	sorted := sortedByValue(items, value, false)
	return sorted[:percentileCount(len(sorted), pct)]
}

// MiddlePercentile returns the items between the lower and upper
// percentile cuts of the descending value order.
func MiddlePercentile[T any](items []T, value func(*T) float64, lowerPct, upperPct float64) []T {
	sorted := sortedByValue(items, value, true)
	from := percentileCount(len(sorted), lowerPct)
	to := percentileCount(len(sorted), upperPct)
	if from > to {
		from, to = to, from
	}
	return sorted[from:to]
}

// sortedByValue returns a fresh slice of items stably sorted by their
// mapped value; the input is never reordered.
func sortedByValue[T any](items []T, value func(*T) float64, descending bool) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return value(&sorted[i]) > value(&sorted[j])
		}
		return value(&sorted[i]) < value(&sorted[j])
	})
	return sorted
}
