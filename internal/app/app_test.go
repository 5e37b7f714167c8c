package app

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/noahaxio/renderers/internal/charts"
	"github.com/noahaxio/renderers/internal/config"
	"github.com/noahaxio/renderers/internal/panel"
	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := config.Default()
	cfg.Panel.PixelRatio = 1
	return New(cfg, logger)
}

func sample() []readings.Reading {
	return []readings.Reading{
		{Label: "Total Grid Energy", Value: readings.Known(12)},
		{Label: "Inverter 2", Value: readings.Known(8)},
		{Label: "Broken", Value: readings.Quantity{}},
	}
}

func assertPNGDataURL(t *testing.T, name, url string) {
	t.Helper()
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("%s: not a PNG data URL: %.40q", name, url)
	}
	data, err := render.DecodeDataURL(url)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if _, err := render.DecodePNG(data); err != nil {
		t.Fatalf("%s: %v", name, err)
	}
}

func TestRenderBar(t *testing.T) {
	app := newTestApp(t)
	url, err := app.RenderBar(context.Background(), sample(), charts.BarOptions{})
	if err != nil {
		t.Fatalf("RenderBar: %v", err)
	}
	assertPNGDataURL(t, "bar", url)
}

func TestRenderPie(t *testing.T) {
	app := newTestApp(t)

	url, ok, err := app.RenderPie(context.Background(), sample(), charts.PieOptions{})
	if err != nil || !ok {
		t.Fatalf("RenderPie = ok %v, err %v", ok, err)
	}
	assertPNGDataURL(t, "pie", url)

	url, ok, err = app.RenderPie(context.Background(), []readings.Reading{{Label: "A", Value: readings.Known(-1)}}, charts.PieOptions{})
	if err != nil || ok || url != "" {
		t.Errorf("RenderPie(non-positive) = %q, %v, %v; want empty result", url, ok, err)
	}
}

func TestColorsSharedAcrossCharts(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	if _, _, err := app.RenderPie(ctx, sample(), charts.PieOptions{}); err != nil {
		t.Fatal(err)
	}
	before := app.Colors.Resolve("Inverter 2")
	if _, err := app.RenderBar(ctx, sample(), charts.BarOptions{}); err != nil {
		t.Fatal(err)
	}
	if after := app.Colors.Resolve("Inverter 2"); after != before {
		t.Errorf("colour changed between charts: %v then %v", before, after)
	}
}

func TestRenderYearly(t *testing.T) {
	app := newTestApp(t)
	url, err := app.RenderYearly(context.Background(), []readings.MonthlyRecord{
		{Month: "2024-02", Grid: readings.Known(10), Load: readings.Known(20)},
		{Month: "2024-01", PV: readings.Known(30)},
	}, charts.YearlyOptions{})
	if err != nil {
		t.Fatalf("RenderYearly: %v", err)
	}
	assertPNGDataURL(t, "yearly", url)
}

func TestRenderChartSizes(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	monthly := []readings.MonthlyRecord{{Month: "2024-01", Grid: readings.Known(10)}}

	tests := []struct {
		name   string
		render func() (string, error)
		want   image.Point
	}{
		{
			name:   "bar configured",
			render: func() (string, error) { return app.RenderBar(ctx, sample(), charts.BarOptions{}) },
			want:   image.Pt(app.Config.Bar.Width, app.Config.Bar.Height),
		},
		{
			name:   "bar per call",
			render: func() (string, error) { return app.RenderBar(ctx, sample(), charts.BarOptions{Width: 300, Height: 200}) },
			want:   image.Pt(300, 200),
		},
		{
			name:   "bar width only",
			render: func() (string, error) { return app.RenderBar(ctx, sample(), charts.BarOptions{Width: 300}) },
			want:   image.Pt(300, app.Config.Bar.Height),
		},
		{
			name: "pie per call",
			render: func() (string, error) {
				url, _, err := app.RenderPie(ctx, sample(), charts.PieOptions{Width: 500, Height: 250})
				return url, err
			},
			want: image.Pt(500, 250),
		},
		{
			name:   "yearly per call",
			render: func() (string, error) { return app.RenderYearly(ctx, monthly, charts.YearlyOptions{Width: 640, Height: 320}) },
			want:   image.Pt(640, 320),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := tt.render()
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			data, err := render.DecodeDataURL(url)
			if err != nil {
				t.Fatalf("DecodeDataURL: %v", err)
			}
			img, err := render.DecodePNG(data)
			if err != nil {
				t.Fatalf("DecodePNG: %v", err)
			}
			if got := img.Bounds().Size(); got != tt.want {
				t.Errorf("size = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderCO2Panel(t *testing.T) {
	app := newTestApp(t)
	url, err := app.RenderCO2Panel(context.Background(), 3.2, 0)
	if err != nil {
		t.Fatalf("RenderCO2Panel: %v", err)
	}
	assertPNGDataURL(t, "co2", url)

	if _, err := app.RenderCO2Panel(context.Background(), math.NaN(), 0); !errors.Is(err, panel.ErrInvalidMass) {
		t.Errorf("RenderCO2Panel(NaN) error = %v, want ErrInvalidMass", err)
	}
}

func TestRenderDashboard(t *testing.T) {
	app := newTestApp(t)
	images, err := app.RenderDashboard(context.Background(), Dashboard{
		Readings: sample(),
		Monthly:  []readings.MonthlyRecord{{Month: "2024-01", Grid: readings.Known(1)}},
		CO2Mass:  1.5,
	})
	if err != nil {
		t.Fatalf("RenderDashboard: %v", err)
	}
	assertPNGDataURL(t, "bar", images.Bar)
	assertPNGDataURL(t, "pie", images.Pie)
	assertPNGDataURL(t, "yearly", images.Yearly)
	assertPNGDataURL(t, "co2", images.CO2)
}

func TestRenderDashboardPropagatesFailure(t *testing.T) {
	app := newTestApp(t)
	_, err := app.RenderDashboard(context.Background(), Dashboard{CO2Mass: math.NaN()})
	if !errors.Is(err, panel.ErrInvalidMass) {
		t.Errorf("RenderDashboard error = %v, want ErrInvalidMass", err)
	}
}
