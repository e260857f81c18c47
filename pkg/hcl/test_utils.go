package hcl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leowmjw/go-temporal-climate/pkg/temporal"
)

// AssertRequestsEqual compares two AnalysisRequest objects for equality in tests
func AssertRequestsEqual(t *testing.T, expected, actual *temporal.AnalysisRequest) {
	assert.Equal(t, expected.SeriesID, actual.SeriesID)
	assert.Equal(t, expected.Window, actual.Window)
	assert.InDelta(t, expected.Sigma, actual.Sigma, 1e-9)
	assert.Equal(t, expected.Stats, actual.Stats)

	if expected.Dataset == nil || actual.Dataset == nil {
		assert.Equal(t, expected.Dataset == nil, actual.Dataset == nil)
		return
	}

	assert.Equal(t, expected.Dataset.City, actual.Dataset.City)
	assert.Equal(t, expected.Dataset.Year, actual.Dataset.Year)
	assert.Equal(t, expected.Dataset.Source, actual.Dataset.Source)
	assert.Equal(t, expected.Dataset.Days, actual.Dataset.Days)
	assert.InDeltaSlice(t, expected.Dataset.Temperatures, actual.Dataset.Temperatures, 1e-9)
}
