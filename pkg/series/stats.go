package series

import (
	"math"
	"sort"
)

// Variance calculates the population variance of the series values.
func (s Series) Variance() float64 {
	if s.Len() == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range s.Values {
		mean += v
	}
	mean /= float64(s.Len())

	sumSquaredDiff := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}

	return sumSquaredDiff / float64(s.Len())
}

// StdDev calculates the population standard deviation of the series values.
func (s Series) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Median returns the 50th percentile of the series values.
func (s Series) Median() float64 {
	return s.Percentile(50.0)
}

// Percentile returns the given percentile of the series values using linear
// interpolation between adjacent ranks.
func (s Series) Percentile(percentile float64) float64 {
	if s.Len() == 0 {
		return 0
	}

	sorted := make([]float64, s.Len())
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	if percentile <= 0 {
		return sorted[0]
	}
	if percentile >= 100 {
		return sorted[len(sorted)-1]
	}

	index := (percentile / 100.0) * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
