package readings

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MonthlyRecord holds one month of aggregated energy totals.
type MonthlyRecord struct {
	Month     string // "YYYY-MM"
	Grid      Quantity
	Load      Quantity
	PV        Quantity
	Generator Quantity
}

type monthlyJSON struct {
	Month     json.RawMessage `json:"month"`
	Grid      json.RawMessage `json:"Total_Grid_Energy"`
	Load      json.RawMessage `json:"Total_Load_Energy"`
	PV        json.RawMessage `json:"Total_PV_Charge"`
	Generator json.RawMessage `json:"Total_Generator_Energy"`
}

// DecodeMonthly parses a JSON array of monthly summaries.
func DecodeMonthly(data []byte) ([]MonthlyRecord, error) {
	var raw []monthlyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode monthly totals: %w", err)
	}
	out := make([]MonthlyRecord, 0, len(raw))
	for _, r := range raw {
		out = append(out, MonthlyRecord{
			Month:     rawString(r.Month),
			Grid:      ParseQuantity(r.Grid),
			Load:      ParseQuantity(r.Load),
			PV:        ParseQuantity(r.PV),
			Generator: ParseQuantity(r.Generator),
		})
	}
	return out, nil
}

// SortByMonth returns a copy of records ordered by month key ascending.
// Keys compare as plain strings, so "YYYY-MM" sorts chronologically.
func SortByMonth(records []MonthlyRecord) []MonthlyRecord {
	sorted := make([]MonthlyRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Month < sorted[j].Month
	})
	return sorted
}
