package charts

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/noahaxio/renderers/internal/colors"
	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
)

const (
	DefaultYearlyWidth  = 1200
	DefaultYearlyHeight = 600

	YearlyTitle = "Yearly Energy Summary"

	// Each month gets 80% of its slot; each bar 70% of its share of that.
	categoryFraction = 0.8
	barFraction      = 0.7

	// axisAllowance approximates the y axis and padding left of the plot.
	axisAllowance = 90.0
	minBarSlot    = 1.0
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// gridColor is #e5e5e5.
var gridColor = color.NRGBA{R: 0xE5, G: 0xE5, B: 0xE5, A: 0xFF}

// yearlySeries lists the datasets in draw and legend order.
var yearlySeries = []struct {
	name  string
	value func(readings.MonthlyRecord) readings.Quantity
}{
	{"Total Generator Energy", func(r readings.MonthlyRecord) readings.Quantity { return r.Generator }},
	{"Total PV Energy", func(r readings.MonthlyRecord) readings.Quantity { return r.PV }},
	{"Total Grid Energy", func(r readings.MonthlyRecord) readings.Quantity { return r.Grid }},
	{"Total Load Energy", func(r readings.MonthlyRecord) readings.Quantity { return r.Load }},
}

type YearlyOptions struct {
	Width  int
	Height int
}

func (opts YearlyOptions) withDefaults() YearlyOptions {
	opts.Width = orDefault(opts.Width, DefaultYearlyWidth)
	opts.Height = orDefault(opts.Height, DefaultYearlyHeight)
	return opts
}

// MonthLabel turns "YYYY-MM" into a short month name. Keys that are not two
// dash-separated parts, or whose month is not 1..12, are returned unchanged.
func MonthLabel(key string) string {
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "-")
	if len(parts) != 2 {
		return key
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > len(monthNames) {
		return key
	}
	return monthNames[month-1]
}

// Series is one dataset of the yearly chart.
type Series struct {
	Name   string
	Values []float64
	Colors colors.Assignment
}

// YearlyData sorts records by month and splits them into x labels and one
// series per energy total. Missing or invalid totals become zero.
func YearlyData(resolver ColorResolver, records []readings.MonthlyRecord) ([]string, []Series) {
	sorted := readings.SortByMonth(records)
	labels := make([]string, len(sorted))
	for i, record := range sorted {
		labels[i] = MonthLabel(record.Month)
	}

	series := make([]Series, 0, len(yearlySeries))
	for _, def := range yearlySeries {
		values := make([]float64, len(sorted))
		for i, record := range sorted {
			values[i] = def.value(record).OrZero()
		}
		series = append(series, Series{
			Name:   def.name,
			Values: values,
			Colors: resolver.Resolve(def.name),
		})
	}
	return labels, series
}

// YearlyRenderer draws grouped monthly bars for the four energy totals.
type YearlyRenderer struct {
	deps Deps
}

func NewYearlyRenderer(deps Deps) *YearlyRenderer {
	return &YearlyRenderer{deps: deps.withDefaults("yearly")}
}

// Render returns a PNG. An empty input yields a "No data" image.
func (r *YearlyRenderer) Render(ctx context.Context, records []readings.MonthlyRecord, opts YearlyOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	if len(records) == 0 {
		r.deps.Logger.Debug("no monthly records, rendering placeholder")
		return render.Placeholder(float64(opts.Width), float64(opts.Height), NoDataMessage, r.deps.Fonts)
	}
	for _, record := range records {
		if !record.Grid.Valid || !record.Load.Valid || !record.PV.Valid || !record.Generator.Valid {
			r.deps.Logger.WithField("month", record.Month).Debug("missing totals drawn as zero")
		}
	}

	labels, series := YearlyData(r.deps.Colors, records)
	p, err := newYearlyPlot(labels, series, opts)
	if err != nil {
		return nil, err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opts.Width), vg.Length(opts.Height)),
		vgimg.UseDPI(72),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, c.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func newYearlyPlot(labels []string, series []Series, opts YearlyOptions) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = color.White

	p.Title.Text = YearlyTitle
	p.Title.TextStyle.Font = sans(24, true)
	p.Title.Padding = vg.Points(10)
	p.Y.Label.Text = DefaultYLabel
	p.Y.Label.TextStyle.Font = sans(14, true)
	p.Y.Tick.Label.Font = sans(14, false)
	p.X.Tick.Label.Font = sans(14, false)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	slot := barSlot(opts.Width, len(labels), len(series))
	barWidth := vg.Points(slot * barFraction)

	for i, s := range series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s bars: %w", s.Name, err)
		}
		bars.Color = s.Colors.Fill
		bars.LineStyle.Color = s.Colors.Border
		bars.LineStyle.Width = vg.Points(1)
		bars.Offset = vg.Points((float64(i) - float64(len(series)-1)/2) * slot)
		p.Add(bars)
		p.Legend.Add(s.Name, bars)
	}

	p.NominalX(labels...)
	p.X.Min = -0.5
	p.X.Max = float64(len(labels)) - 0.5

	// Bars start at zero; headroom keeps the legend clear of the tallest bar.
	p.Y.Min = 0
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = p.Y.Min + 1
	}
	p.Y.Max *= 1.15

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(10)
	p.Legend.TextStyle.Font = sans(12, false)
	return p, nil
}

func sans(size float64, bold bool) font.Font {
	f := font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(size)}
	if bold {
		f.Weight = xfont.WeightBold
	}
	return f
}

// barSlot is the horizontal space, in points, given to one bar of a month's
// group. Narrow canvases still get a positive width.
func barSlot(width, months, series int) float64 {
	if months <= 0 || series <= 0 {
		return minBarSlot
	}
	plotWidth := float64(width) - axisAllowance
	slot := plotWidth / float64(months) * categoryFraction / float64(series)
	return math.Max(slot, minBarSlot)
}
