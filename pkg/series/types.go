package series

import (
	"errors"
)

// Sentinel errors for validation failures. All of them indicate bad input
// data or parameters, never transient conditions, so callers should not retry.
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrEmptySeries    = errors.New("empty series")
	ErrInvalidWindow  = errors.New("invalid smoothing window")
)

// Series is an ordered sequence of temperature samples with a parallel
// sequence of day coordinates (typically day-of-year, 0..364).
// Days and Values always have the same length.
type Series struct {
	Days   []float64 `json:"days"`
	Values []float64 `json:"values"`
}

// Metadata describes where a series came from
type Metadata struct {
	City   string `json:"city"`
	Year   int    `json:"year"`
	Source string `json:"source"`
}

// Summary holds the single-pass reduction over a series.
// Min <= Mean <= Max; MinIndex and MaxIndex are the first index achieving
// the respective extremum.
type Summary struct {
	Min      float64 `json:"min"`
	MinIndex int     `json:"min_index"`
	Max      float64 `json:"max"`
	MaxIndex int     `json:"max_index"`
	Mean     float64 `json:"mean"`
}

// Len returns the number of samples in the series
func (s Series) Len() int {
	return len(s.Values)
}

// Copy creates a deep copy of the series
func (s Series) Copy() Series {
	days := make([]float64, len(s.Days))
	copy(days, s.Days)
	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	return Series{Days: days, Values: values}
}
