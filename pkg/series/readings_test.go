package series

import (
	"errors"
	"testing"
)

func TestParseReadings(t *testing.T) {
	raw := [][]byte{
		[]byte(`{"day":2,"temp_c":5.5}`),
		[]byte(`{"day":0,"temp_c":1.0}`),
		[]byte(`{"day":1,"temp_c":3.2}`),
	}

	table, err := ParseReadings(raw)
	if err != nil {
		t.Fatalf("ParseReadings failed: %v", err)
	}

	if len(table.Days) != 3 {
		t.Fatalf("Expected 3 readings, got %d", len(table.Days))
	}

	// Readings must come out ordered by day regardless of arrival order
	expected := []float64{1.0, 3.2, 5.5}
	for i, v := range table.Temperatures {
		if v != expected[i] {
			t.Errorf("Index %d: expected %f, got %f", i, expected[i], v)
		}
	}
}

func TestParseReadingsFieldAliases(t *testing.T) {
	raw := [][]byte{
		[]byte(`{"doy":0,"temperature":2.5}`),
		[]byte(`{"day_of_year":1,"value":-4.0}`),
	}

	table, err := ParseReadings(raw)
	if err != nil {
		t.Fatalf("ParseReadings failed: %v", err)
	}

	if table.Temperatures[0] != 2.5 || table.Temperatures[1] != -4.0 {
		t.Errorf("Unexpected temperatures: %v", table.Temperatures)
	}
}

func TestParseReadingsMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  [][]byte
	}{
		{"invalid JSON", [][]byte{[]byte(`not json`)}},
		{"missing day", [][]byte{[]byte(`{"temp_c":1.0}`)}},
		{"missing temperature", [][]byte{[]byte(`{"day":0}`)}},
		{"non-numeric day", [][]byte{[]byte(`{"day":"monday","temp_c":1.0}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReadings(tt.raw)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Expected ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestParseReadingsEmpty(t *testing.T) {
	table, err := ParseReadings(nil)
	if err != nil {
		t.Fatalf("ParseReadings failed: %v", err)
	}
	if len(table.Days) != 0 {
		t.Errorf("Expected empty table, got %d readings", len(table.Days))
	}
}
