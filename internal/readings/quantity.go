package readings

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quantity is a parsed numeric input. Invalid quantities carry Value 0.
type Quantity struct {
	Value float64
	Valid bool
}

// Known returns a valid quantity, or an invalid one for NaN and ±Inf.
func Known(v float64) Quantity {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Quantity{}
	}
	return Quantity{Value: v, Valid: true}
}

// OrZero returns the value, treating invalid quantities as zero.
func (q Quantity) OrZero() float64 {
	if !q.Valid {
		return 0
	}
	return q.Value
}

// Positive reports whether q is valid and strictly greater than zero.
func (q Quantity) Positive() bool {
	return q.Valid && q.Value > 0
}

// ParseQuantity interprets a raw JSON value. Numbers and numeric strings are
// valid; null, booleans, objects and non-numeric strings are not.
func ParseQuantity(raw json.RawMessage) Quantity {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Quantity{}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Quantity{}
		}
		return parseNumericString(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		v, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return Quantity{}
		}
		return Known(v)
	default:
		return Quantity{}
	}
}

func parseNumericString(s string) Quantity {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Quantity{}
	}
	return Known(v)
}
