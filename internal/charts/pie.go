package charts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
	"github.com/noahaxio/renderers/internal/render/layout"
)

const (
	DefaultPieWidth  = 800
	DefaultPieHeight = 400

	legendBoxSize   = 12.0
	legendPadding   = 15.0
	legendFontSize  = 14.0
	pieBorderWidth  = 2.0
	pieMargin       = 10.0
	legendBoxBorder = 2.0
)

type PieOptions struct {
	Width  int
	Height int
}

func (opts PieOptions) withDefaults() PieOptions {
	opts.Width = orDefault(opts.Width, DefaultPieWidth)
	opts.Height = orDefault(opts.Height, DefaultPieHeight)
	return opts
}

// PieSlice is one positive reading and its share of the total.
type PieSlice struct {
	Label   string
	Value   float64
	Percent float64
	Fill    color.NRGBA
	Border  color.NRGBA
}

// LegendText is the legend entry, e.g. "Solar (62.5%)".
func (slice PieSlice) LegendText() string {
	return fmt.Sprintf("%s (%.1f%%)", slice.Label, slice.Percent)
}

// TooltipText is the hover label, e.g. "Solar: 12.5 (63%)".
func (slice PieSlice) TooltipText() string {
	return fmt.Sprintf("%s: %s (%d%%)", slice.Label, strconv.FormatFloat(slice.Value, 'f', -1, 64), int(math.Floor(slice.Percent+0.5)))
}

// PieSlices keeps the valid positive readings and computes their shares.
// Colours are resolved only for kept readings.
func PieSlices(resolver ColorResolver, data []readings.Reading) []PieSlice {
	var (
		slices []PieSlice
		total  float64
	)
	for _, reading := range data {
		if !reading.Value.Positive() {
			continue
		}
		assignment := resolver.Resolve(reading.Label)
		slices = append(slices, PieSlice{
			Label:  reading.Label,
			Value:  reading.Value.Value,
			Fill:   assignment.Fill,
			Border: assignment.Border,
		})
		total += reading.Value.Value
	}
	for i := range slices {
		slices[i].Percent = slices[i].Value / total * 100
	}
	return slices
}

// PieRenderer draws a pie of the positive readings with a legend on the right.
type PieRenderer struct {
	deps Deps
}

func NewPieRenderer(deps Deps) *PieRenderer {
	return &PieRenderer{deps: deps.withDefaults("pie")}
}

// Render returns a PNG, or nil with no error when no reading is positive.
func (r *PieRenderer) Render(ctx context.Context, data []readings.Reading, opts PieOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	slices := PieSlices(r.deps.Colors, data)
	if len(slices) == 0 {
		r.deps.Logger.WithField("readings", len(data)).Debug("no positive readings, nothing to draw")
		return nil, nil
	}

	width, height := float64(opts.Width), float64(opts.Height)
	canvas, err := render.NewCanvas(width, height, 1, r.deps.Fonts)
	if err != nil {
		return nil, err
	}
	canvas.FillBackground(render.Background)

	legendStyle := render.TextStyle{Color: render.Foreground, Size: legendFontSize}
	legendWidth := 0.0
	for _, slice := range slices {
		legendWidth = math.Max(legendWidth, canvas.MeasureText(slice.LegendText(), legendStyle).Width)
	}
	legendWidth += legendBoxSize + legendFontSize/2 + 2*legendPadding
	legendWidth = math.Min(legendWidth, width/2)
	pieArea, legendArea := layout.SplitVertical(layout.Rect{W: width, H: height}, width-legendWidth)

	if len(slices) == 1 {
		// go-chart draws a lone value as an unfilled circle.
		drawDisc(canvas, slices[0], pieArea)
	} else {
		pie, err := r.renderPie(slices, int(pieArea.W), opts.Height)
		if err != nil {
			return nil, err
		}
		canvas.DrawImageInRect(pie, pieArea, render.ScaleModeStretch)
	}
	drawLegend(canvas, slices, legendArea, legendStyle)

	return canvas.EncodePNG()
}

func (r *PieRenderer) renderPie(slices []PieSlice, width, height int) (image.Image, error) {
	values := make([]chart.Value, 0, len(slices))
	for _, slice := range slices {
		values = append(values, chart.Value{
			Value: slice.Value,
			Style: chart.Style{
				FillColor:   chartColor(slice.Fill),
				StrokeColor: chartColor(slice.Border),
				StrokeWidth: pieBorderWidth,
			},
		})
	}

	graph := chart.PieChart{
		Width:      width,
		Height:     height,
		Font:       r.deps.Fonts.Chart,
		Background: chart.Style{FillColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		Values:     values,
	}
	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return render.DecodePNG(buf.Bytes())
}

// drawDisc fills area's inscribed circle with a full slice and its border.
func drawDisc(d render.Drawer, slice PieSlice, area layout.Rect) {
	cx, cy := area.X+area.W/2, area.Y+area.H/2
	radius := math.Min(area.W, area.H)/2 - pieMargin
	if radius <= pieBorderWidth {
		return
	}
	d.FillCircle(cx, cy, radius, slice.Border)
	d.FillCircle(cx, cy, radius-pieBorderWidth, render.Background)
	d.FillCircle(cx, cy, radius-pieBorderWidth, slice.Fill)
}

func drawLegend(d render.Drawer, slices []PieSlice, area layout.Rect, style render.TextStyle) {
	metrics := d.MeasureText("Ag", style)
	rowHeight := math.Max(legendBoxSize, style.Size) + legendPadding
	total := float64(len(slices))*rowHeight - legendPadding
	y := area.Y + math.Max((area.H-total)/2, legendPadding)
	x := area.X + legendPadding

	for _, slice := range slices {
		box := layout.Rect{X: x, Y: y, W: legendBoxSize, H: legendBoxSize}
		d.FillRect(box, slice.Border)
		inner := layout.Inset(box, legendBoxBorder)
		d.FillRect(inner, render.Background)
		d.FillRect(inner, slice.Fill)

		baseline := y + legendBoxSize/2 + (metrics.Ascent-metrics.Descent)/2
		d.DrawText(slice.LegendText(), x+legendBoxSize+style.Size/2, baseline, style)
		y += rowHeight
	}
}
