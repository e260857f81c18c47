package series

import (
	"fmt"
	"math"
)

// DefaultWindow is the smoothing window used when a request does not specify
// one: a centered 31-sample window (±15 neighbors) for daily data.
const DefaultWindow = 31

// SmoothOptions tunes the Gaussian smoothing kernel.
type SmoothOptions struct {
	// Sigma is the standard deviation of the Gaussian kernel. When zero or
	// negative, window/6 is used so the kernel's 3-sigma support matches the
	// window.
	Sigma float64
}

// Summarize performs a single left-to-right pass over the series, tracking
// running min/max (value and first index) and the running sum for the mean.
// Ties are resolved to the lowest index.
func Summarize(s Series) (Summary, error) {
	if s.Len() == 0 {
		return Summary{}, ErrEmptySeries
	}

	sum := Summary{
		Min: s.Values[0],
		Max: s.Values[0],
	}

	total := 0.0
	for i, v := range s.Values {
		if v < sum.Min {
			sum.Min = v
			sum.MinIndex = i
		}
		if v > sum.Max {
			sum.Max = v
			sum.MaxIndex = i
		}
		total += v
	}
	sum.Mean = total / float64(s.Len())

	return sum, nil
}

// Smooth convolves the series with a normalized Gaussian kernel of the given
// window size, producing one output sample per input sample. Edge indices use
// replicate padding: out-of-range taps clamp to the nearest valid index.
// The window must be odd, at least 1 and no larger than the series length.
func Smooth(s Series, window int, opts *SmoothOptions) (Series, error) {
	n := s.Len()
	if n == 0 {
		return Series{}, ErrEmptySeries
	}
	if window <= 0 || window%2 == 0 || window > n {
		return Series{}, fmt.Errorf("%w: window %d for %d samples (must be odd, >=1, <=length)",
			ErrInvalidWindow, window, n)
	}

	sigma := 0.0
	if opts != nil {
		sigma = opts.Sigma
	}
	if sigma <= 0 {
		sigma = float64(window) / 6.0
	}

	kernel := gaussianKernel(window, sigma)
	half := window / 2

	out := make([]float64, n)
	for i := range out {
		acc := 0.0
		for k := -half; k <= half; k++ {
			acc += s.Values[clampIndex(i+k, n)] * kernel[k+half]
		}
		out[i] = acc
	}

	days := make([]float64, n)
	copy(days, s.Days)

	return Series{Days: days, Values: out}, nil
}

// MeanLine returns a 2-point series carrying the mean at the first and last
// day coordinates, used to draw a horizontal reference line.
func MeanLine(s Series) (Series, error) {
	sum, err := Summarize(s)
	if err != nil {
		return Series{}, err
	}

	return Series{
		Days:   []float64{s.Days[0], s.Days[len(s.Days)-1]},
		Values: []float64{sum.Mean, sum.Mean},
	}, nil
}

// gaussianKernel builds a normalized kernel of odd length with weights
// exp(-k^2 / (2*sigma^2)) for offsets k in [-(window-1)/2, (window-1)/2].
func gaussianKernel(window int, sigma float64) []float64 {
	half := window / 2
	weights := make([]float64, window)

	total := 0.0
	for k := -half; k <= half; k++ {
		w := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		weights[k+half] = w
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}

	return weights
}

// clampIndex implements replicate padding
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
