package series

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Reading is a single decoded temperature reading from the ingest path.
type Reading struct {
	Day   float64 `json:"day"`
	TempC float64 `json:"temp_c"`
}

// Field aliases accepted in raw reading records. Producers disagree on
// naming, so decoding probes each alias in order.
var (
	dayFields  = []string{"day", "doy", "day_of_year"}
	tempFields = []string{"temp_c", "temperature", "value"}
)

// ParseReadings decodes raw JSON reading records into a RawTable ordered by
// day. A record missing a day or temperature field, or one that is not valid
// JSON, fails the whole batch with ErrMalformedInput: readings are static
// data, and a bad record indicates a producer bug rather than noise to skip.
func ParseReadings(raw [][]byte) (RawTable, error) {
	readings := make([]Reading, 0, len(raw))

	for i, data := range raw {
		reading, err := decodeReading(data)
		if err != nil {
			return RawTable{}, fmt.Errorf("%w: record %d: %v", ErrMalformedInput, i, err)
		}
		readings = append(readings, reading)
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].Day < readings[j].Day
	})

	table := RawTable{
		Days:         make([]float64, len(readings)),
		Temperatures: make([]float64, len(readings)),
	}
	for i, r := range readings {
		table.Days[i] = r.Day
		table.Temperatures[i] = r.TempC
	}

	return table, nil
}

// decodeReading extracts day and temperature from a single JSON record,
// probing known field aliases.
func decodeReading(data []byte) (Reading, error) {
	var record map[string]interface{}
	if err := json.Unmarshal(data, &record); err != nil {
		return Reading{}, fmt.Errorf("invalid JSON: %v", err)
	}

	day, ok := numberField(record, dayFields)
	if !ok {
		return Reading{}, fmt.Errorf("no day field (tried %v)", dayFields)
	}

	temp, ok := numberField(record, tempFields)
	if !ok {
		return Reading{}, fmt.Errorf("no temperature field (tried %v)", tempFields)
	}

	return Reading{Day: day, TempC: temp}, nil
}

func numberField(record map[string]interface{}, names []string) (float64, bool) {
	for _, name := range names {
		if value, exists := record[name]; exists {
			if f, ok := value.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}
