package series

import (
	"fmt"
)

// RawTable is the raw input record for a temperature series: two parallel
// numeric arrays plus scalar metadata fields.
type RawTable struct {
	City         string    `json:"city"`
	Year         int       `json:"year"`
	Source       string    `json:"source"`
	Days         []float64 `json:"days"`
	Temperatures []float64 `json:"temperatures"`
}

// Load validates a raw table and returns an immutable series plus its
// metadata. It fails with ErrMalformedInput when the day and temperature
// arrays differ in length or are empty.
func Load(raw RawTable) (Series, Metadata, error) {
	if len(raw.Days) != len(raw.Temperatures) {
		return Series{}, Metadata{}, fmt.Errorf("%w: %d days vs %d temperatures",
			ErrMalformedInput, len(raw.Days), len(raw.Temperatures))
	}
	if len(raw.Temperatures) == 0 {
		return Series{}, Metadata{}, fmt.Errorf("%w: no samples", ErrMalformedInput)
	}

	days := make([]float64, len(raw.Days))
	copy(days, raw.Days)
	values := make([]float64, len(raw.Temperatures))
	copy(values, raw.Temperatures)

	meta := Metadata{
		City:   raw.City,
		Year:   raw.Year,
		Source: raw.Source,
	}

	return Series{Days: days, Values: values}, meta, nil
}
