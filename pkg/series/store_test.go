package series

import (
	"errors"
	"testing"
)

func TestLoad(t *testing.T) {
	raw := RawTable{
		City:         "Berlin",
		Year:         2024,
		Source:       "DWD",
		Days:         []float64{0, 1, 2},
		Temperatures: []float64{1.5, 2.0, 0.5},
	}

	s, meta, err := Load(raw)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Len() != 3 {
		t.Errorf("Expected 3 samples, got %d", s.Len())
	}
	if meta.City != "Berlin" || meta.Year != 2024 || meta.Source != "DWD" {
		t.Errorf("Unexpected metadata: %+v", meta)
	}
}

func TestLoadMismatchedLengths(t *testing.T) {
	raw := RawTable{
		Days:         []float64{0, 1, 2},
		Temperatures: []float64{1.5, 2.0},
	}

	_, _, err := Load(raw)
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Expected ErrMalformedInput, got %v", err)
	}
}

func TestLoadEmpty(t *testing.T) {
	_, _, err := Load(RawTable{})
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Expected ErrMalformedInput, got %v", err)
	}
}

func TestLoadCopiesInput(t *testing.T) {
	raw := RawTable{
		Days:         []float64{0, 1},
		Temperatures: []float64{5, 6},
	}

	s, _, err := Load(raw)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Mutating the raw table must not leak into the loaded series
	raw.Temperatures[0] = 99
	if s.Values[0] != 5 {
		t.Errorf("Loaded series should not alias raw input, got %f", s.Values[0])
	}
}
