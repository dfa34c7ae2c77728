// Package salary turns raw salary bounds into point estimates and reduces
// them into a per-language average.
package salary

import "sort"

const (
	// lowerBoundFactor inflates a lone lower bound towards a midpoint.
	lowerBoundFactor = 1.2
	// upperBoundFactor deflates a lone upper bound towards a midpoint.
	upperBoundFactor = 0.8
)

// Estimate returns a point salary for a listing with the given bounds.
// Only a nil bound counts as absent; a reported zero is used as is.
// The second return value is false when neither bound is present.
func Estimate(from, to *int64) (float64, bool) {
	switch {
	case from != nil && to != nil:
		return float64(*from+*to) / 2, true
	case from != nil:
		return float64(*from) * lowerBoundFactor, true
	case to != nil:
		return float64(*to) * upperBoundFactor, true
	default:
		return 0, false
	}
}

// Average returns the integer part of the mean of estimates, or 0 when
// there are none.
func Average(estimates []float64) int {
	if len(estimates) == 0 {
		return 0
	}

	// Summing in sorted order keeps the result independent of input order.
	sorted := make([]float64, len(estimates))
	copy(sorted, estimates)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return int(sum / float64(len(sorted)))
}

// DropZero removes estimates that are exactly zero. SuperJob applies it after
// estimation to hide listings whose reported bounds collapse to nothing.
func DropZero(estimates []float64) []float64 {
	kept := make([]float64, 0, len(estimates))
	for _, v := range estimates {
		if v != 0 {
			kept = append(kept, v)
		}
	}
	return kept
}
