package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DayColumn  string // Column name for day coordinates (default: "day")
	TempColumn string // Column name for temperatures (default: "temp_c")
	HasHeader  bool   // Whether the CSV has a header row (default: true)
	Delimiter  rune   // Field delimiter (default: ',')
}

// DefaultCSVOptions returns the default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DayColumn:  "day",
		TempColumn: "temp_c",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// LoadCSV loads a raw temperature table from a CSV file. Metadata fields are
// left empty for the caller to fill in.
func LoadCSV(filename string, opts *CSVOptions) (RawTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return RawTable{}, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a raw temperature table from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (RawTable, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	dayIdx, tempIdx := 0, 1

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: reading CSV header: %v", ErrMalformedInput, err)
		}

		dayIdx, tempIdx = -1, -1
		for i, h := range header {
			switch strings.TrimSpace(h) {
			case opts.DayColumn:
				dayIdx = i
			case opts.TempColumn:
				tempIdx = i
			}
		}
		if dayIdx == -1 || tempIdx == -1 {
			return RawTable{}, fmt.Errorf("%w: CSV header missing %q or %q column",
				ErrMalformedInput, opts.DayColumn, opts.TempColumn)
		}
	}

	var table RawTable
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: reading CSV record: %v", ErrMalformedInput, err)
		}
		if dayIdx >= len(record) || tempIdx >= len(record) {
			return RawTable{}, fmt.Errorf("%w: CSV record has %d fields", ErrMalformedInput, len(record))
		}

		day, err := strconv.ParseFloat(strings.TrimSpace(record[dayIdx]), 64)
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: bad day value %q", ErrMalformedInput, record[dayIdx])
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(record[tempIdx]), 64)
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: bad temperature value %q", ErrMalformedInput, record[tempIdx])
		}

		table.Days = append(table.Days, day)
		table.Temperatures = append(table.Temperatures, temp)
	}

	if len(table.Temperatures) == 0 {
		return RawTable{}, fmt.Errorf("%w: no data rows in CSV", ErrMalformedInput)
	}

	return table, nil
}
