package panel

import (
	"errors"
	"image/color"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidMass is returned for a NaN or infinite CO₂ mass.
var ErrInvalidMass = errors.New("invalid CO2 mass")

// Accent is the value colour shared by every card (#1976d2).
var Accent = color.NRGBA{R: 0x19, G: 0x76, B: 0xD2, A: 0xFF}

// Card is one rendered equivalence tile.
type Card struct {
	IconKey string
	Title   string
	Value   string
	Accent  color.NRGBA
}

// Equivalence converts tonnes of CO₂ into a count of something familiar.
type Equivalence struct {
	IconKey string
	Title   string
	// Divisor is tonnes of CO₂ per unit.
	Divisor float64
}

// Equivalences are drawn in this order.
var Equivalences = []Equivalence{
	{IconKey: "car", Title: "Passenger Cars Removed", Divisor: 4.6},
	{IconKey: "plane", Title: "NY ↔ London Flights Avoided", Divisor: 1.0},
	{IconKey: "fuel", Title: "Liters of Fuel Not Burned", Divisor: 0.0023},
	{IconKey: "tree", Title: "Trees Absorbing CO₂", Divisor: 0.025},
}

// IconFiles maps icon keys to file names in the icon source.
var IconFiles = map[string]string{
	"car":   "car.svg",
	"plane": "airplane.svg",
	"fuel":  "gas-tank.svg",
	"tree":  "pine-tree.svg",
}

// Cards computes the equivalence values for mass tonnes of CO₂.
func Cards(mass float64) ([]Card, error) {
	if math.IsNaN(mass) || math.IsInf(mass, 0) {
		return nil, ErrInvalidMass
	}
	cards := make([]Card, 0, len(Equivalences))
	for _, eq := range Equivalences {
		cards = append(cards, Card{
			IconKey: eq.IconKey,
			Title:   eq.Title,
			Value:   FormatCount(RoundHalfUp(mass / eq.Divisor)),
			Accent:  Accent,
		})
	}
	return cards, nil
}

// RoundHalfUp rounds to the nearest integer with ties toward +Inf, so
// 2.5 becomes 3 and -2.5 becomes -2.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

var printer = message.NewPrinter(language.English)

// FormatCount renders a whole number with en-US thousands separators.
func FormatCount(v float64) string {
	if math.Abs(v) < 1<<62 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.0f", v)
}
