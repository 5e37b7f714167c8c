package colors

import "image/color"

// Alpha values for registry fills and borders.
const (
	fillAlpha   = 0x99 // 0.6
	borderAlpha = 0xFF
)

// Palette is the ordered list of colors handed out round-robin to sensors
// without a semantic style.
var Palette = []color.NRGBA{
	{R: 255, G: 99, B: 132, A: fillAlpha},  // red
	{R: 54, G: 162, B: 235, A: fillAlpha},  // blue
	{R: 75, G: 192, B: 192, A: fillAlpha},  // teal
	{R: 153, G: 102, B: 255, A: fillAlpha}, // purple
	{R: 255, G: 159, B: 64, A: fillAlpha},  // orange
	{R: 199, G: 199, B: 199, A: fillAlpha}, // grey
	{R: 83, G: 102, B: 255, A: fillAlpha},  // indigo
	{R: 40, G: 159, B: 64, A: fillAlpha},   // dark green
	{R: 210, G: 99, B: 132, A: fillAlpha},  // pink
}

// Assignment is the fill/border pair used for one sensor.
type Assignment struct {
	Fill   color.NRGBA
	Border color.NRGBA
}

func assignmentFor(fill color.NRGBA) Assignment {
	border := fill
	border.A = borderAlpha
	return Assignment{Fill: fill, Border: border}
}

// Semantic styles.
var (
	Red    = assignmentFor(Palette[0])
	Teal   = assignmentFor(Palette[2])
	Purple = assignmentFor(Palette[3])
	Green  = assignmentFor(color.NRGBA{R: 40, G: 159, B: 64, A: fillAlpha})
)

// overrides is checked in order; the first group containing the label wins.
var overrides = []struct {
	labels []string
	style  Assignment
}{
	{labels: []string{"Total Load Energy", "Total load"}, style: Teal},
	{labels: []string{"Total Grid Energy", "Grid import"}, style: Red},
	{labels: []string{"Total PV Energy", "Solar generated", "Total PV Charge"}, style: Green},
	{labels: []string{"Total Generator Energy", "DG generated"}, style: Purple},
}

// Override returns the semantic style for a trimmed label, if it has one.
func Override(label string) (Assignment, bool) {
	for _, group := range overrides {
		for _, alias := range group.labels {
			if alias == label {
				return group.style, true
			}
		}
	}
	return Assignment{}, false
}
