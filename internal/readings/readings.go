// Package readings normalizes loosely shaped sensor payloads into strict
// records. Field-name tolerance stops here; everything downstream works on
// Reading and MonthlyRecord.
package readings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UnknownLabel names readings that arrive without a usable sensor label.
const UnknownLabel = "Unknown"

// Reading is one labelled sensor value.
type Reading struct {
	Label string
	Value Quantity
}

// Record is the external shape of a reading. The label may arrive as
// "sensor", "name" or "label" and the value as "_value" or "value".
type Record struct {
	Sensor json.RawMessage `json:"sensor"`
	Name   json.RawMessage `json:"name"`
	Label  json.RawMessage `json:"label"`
	RawVal json.RawMessage `json:"_value"`
	Value  json.RawMessage `json:"value"`
}

// Normalize maps a record to a Reading. The first present label field wins,
// as does the first non-null value field. Non-string labels are treated as
// missing and replaced with UnknownLabel.
func (record Record) Normalize() Reading {
	label := ""
	for _, candidate := range []json.RawMessage{record.Sensor, record.Name, record.Label} {
		if s := rawString(candidate); s != "" {
			label = s
			break
		}
	}
	if label == "" {
		label = UnknownLabel
	}

	value := record.RawVal
	if isNull(value) {
		value = record.Value
	}
	return Reading{Label: label, Value: ParseQuantity(value)}
}

// Decode parses a JSON array of records.
func Decode(data []byte) ([]Reading, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode readings: %w", err)
	}
	out := make([]Reading, 0, len(records))
	for _, record := range records {
		out = append(out, record.Normalize())
	}
	return out, nil
}

func rawString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
