package charts

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
	"github.com/noahaxio/renderers/internal/render/layout"
)

const (
	DefaultBarWidth  = 800
	DefaultBarHeight = 400
	DefaultYLabel    = "kWh"
)

type BarOptions struct {
	Width  int
	Height int
	YLabel string
}

func (opts BarOptions) withDefaults() BarOptions {
	opts.Width = orDefault(opts.Width, DefaultBarWidth)
	opts.Height = orDefault(opts.Height, DefaultBarHeight)
	if opts.YLabel == "" {
		opts.YLabel = DefaultYLabel
	}
	return opts
}

// BarRenderer draws one bar per reading, coloured by sensor label.
type BarRenderer struct {
	deps Deps
}

func NewBarRenderer(deps Deps) *BarRenderer {
	return &BarRenderer{deps: deps.withDefaults("bar")}
}

// Render returns a PNG. Invalid values are drawn as zero bars and an empty
// input yields a "No data" image.
func (r *BarRenderer) Render(ctx context.Context, data []readings.Reading, opts BarOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	logger := r.deps.Logger

	if len(data) == 0 {
		logger.Debug("no readings, rendering placeholder")
		return render.Placeholder(float64(opts.Width), float64(opts.Height), NoDataMessage, r.deps.Fonts)
	}

	bars := make([]chart.Value, 0, len(data))
	minVal, maxVal := 0.0, 0.0
	for _, reading := range data {
		if !reading.Value.Valid {
			logger.WithField("sensor", reading.Label).Debug("invalid reading drawn as zero")
		}
		value := reading.Value.OrZero()
		minVal = math.Min(minVal, value)
		maxVal = math.Max(maxVal, value)

		assignment := r.deps.Colors.Resolve(reading.Label)
		bars = append(bars, chart.Value{
			Label: reading.Label,
			Value: value,
			Style: chart.Style{
				FillColor:   chartColor(assignment.Fill),
				StrokeColor: chartColor(assignment.Border),
				StrokeWidth: 1,
			},
		})
	}
	if maxVal <= minVal {
		maxVal = minVal + 1
	}

	barWidth, barSpacing := barGeometry(opts.Width, len(bars))
	axisStyle := chart.Style{FontColor: drawing.ColorBlack, FontSize: 10}
	graph := chart.BarChart{
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Font:       r.deps.Fonts.Chart,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 10},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		XAxis:  axisStyle,
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Style: axisStyle,
			Range: &chart.ContinuousRange{Min: minVal, Max: maxVal},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	buf := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return r.withAxisTitle(buf.Bytes(), opts)
}

// withAxisTitle stamps the y axis title above the axis, which the bar chart
// library draws on the right and labels with ticks only.
func (r *BarRenderer) withAxisTitle(chartPNG []byte, opts BarOptions) ([]byte, error) {
	img, err := render.DecodePNG(chartPNG)
	if err != nil {
		return nil, err
	}
	canvas, err := render.NewCanvas(float64(opts.Width), float64(opts.Height), 1, r.deps.Fonts)
	if err != nil {
		return nil, err
	}
	canvas.FillBackground(render.Background)
	canvas.DrawImageInRect(img, layout.Rect{W: float64(opts.Width), H: float64(opts.Height)}, render.ScaleModeStretch)
	canvas.DrawText(opts.YLabel, float64(opts.Width)-10, 24, render.TextStyle{
		Color: render.Foreground,
		Size:  render.DefaultFontSize,
		Bold:  true,
		Align: render.TextAlignRight,
	})
	return canvas.EncodePNG()
}

// barGeometry splits the plot width into one slot per bar, 70% bar and 30%
// gap, clamped so a handful of bars do not turn into slabs.
func barGeometry(width, count int) (barWidth, spacing int) {
	plot := float64(width - 120)
	if plot < float64(count) {
		plot = float64(count)
	}
	slot := plot / float64(count)
	barWidth = int(math.Max(1, math.Min(slot*0.7, 120)))
	spacing = int(math.Max(1, math.Min(slot*0.3, 60)))
	return barWidth, spacing
}
