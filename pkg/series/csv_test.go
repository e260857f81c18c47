package series

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadCSVFromReader(t *testing.T) {
	input := "day,temp_c\n0,1.5\n1,2.0\n2,-0.5\n"

	table, err := LoadCSVFromReader(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}

	if len(table.Days) != 3 || len(table.Temperatures) != 3 {
		t.Fatalf("Expected 3 rows, got %d days, %d temperatures",
			len(table.Days), len(table.Temperatures))
	}
	if table.Temperatures[2] != -0.5 {
		t.Errorf("Expected -0.5 at row 2, got %f", table.Temperatures[2])
	}
}

func TestLoadCSVFromReaderColumnOrder(t *testing.T) {
	// Columns located by header name, not position
	input := "temp_c,day\n7.5,10\n"

	table, err := LoadCSVFromReader(strings.NewReader(input), nil)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}

	if table.Days[0] != 10 || table.Temperatures[0] != 7.5 {
		t.Errorf("Expected day 10 temp 7.5, got day %f temp %f",
			table.Days[0], table.Temperatures[0])
	}
}

func TestLoadCSVFromReaderNoHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false

	table, err := LoadCSVFromReader(strings.NewReader("0,3.5\n1,4.5\n"), opts)
	if err != nil {
		t.Fatalf("LoadCSVFromReader failed: %v", err)
	}

	if len(table.Days) != 2 {
		t.Errorf("Expected 2 rows, got %d", len(table.Days))
	}
}

func TestLoadCSVFromReaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing column", "day,humidity\n0,55\n"},
		{"bad temperature", "day,temp_c\n0,warm\n"},
		{"no data rows", "day,temp_c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSVFromReader(strings.NewReader(tt.input), nil)
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Expected ErrMalformedInput, got %v", err)
			}
		})
	}
}
