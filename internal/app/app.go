package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/noahaxio/renderers/internal/charts"
	"github.com/noahaxio/renderers/internal/colors"
	"github.com/noahaxio/renderers/internal/config"
	"github.com/noahaxio/renderers/internal/icons"
	"github.com/noahaxio/renderers/internal/panel"
	"github.com/noahaxio/renderers/internal/readings"
	"github.com/noahaxio/renderers/internal/render"
)

// App owns the process-lifetime state shared by every render call: the
// sensor colour registry and the parsed fonts. It is safe for concurrent use.
type App struct {
	Colors *colors.Registry
	Fonts  *render.FontSet
	Icons  *icons.Loader
	Config config.Config
	Logger logrus.FieldLogger

	bar    *charts.BarRenderer
	pie    *charts.PieRenderer
	yearly *charts.YearlyRenderer
	panel  *panel.Renderer
}

func New(cfg config.Config, logger logrus.FieldLogger) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	app := &App{
		Colors: colors.NewRegistry(),
		Fonts:  render.LoadFonts(logger),
		Icons:  icons.NewLoader(cfg.Icons.Dir, cfg.Icons.RasterSize, logger),
		Config: cfg,
		Logger: logger.WithField("component", "app"),
	}
	deps := charts.Deps{Colors: app.Colors, Fonts: app.Fonts, Logger: logger}
	app.bar = charts.NewBarRenderer(deps)
	app.pie = charts.NewPieRenderer(deps)
	app.yearly = charts.NewYearlyRenderer(deps)
	app.panel = panel.NewRenderer(app.Fonts, app.Icons, logger)
	return app
}

// RenderBar returns a bar chart data URL. Zero option fields use the
// configured defaults.
func (app *App) RenderBar(ctx context.Context, data []readings.Reading, opts charts.BarOptions) (string, error) {
	opts.Width = orConfigured(opts.Width, app.Config.Bar.Width)
	opts.Height = orConfigured(opts.Height, app.Config.Bar.Height)
	if opts.YLabel == "" {
		opts.YLabel = app.Config.Bar.YLabel
	}
	defer app.timed("bar", len(data))()
	png, err := app.bar.Render(ctx, data, opts)
	if err != nil {
		return "", fmt.Errorf("bar chart: %w", err)
	}
	return render.DataURL(png), nil
}

// RenderPie returns a pie chart data URL. ok is false when no reading was
// positive and there is nothing to show.
func (app *App) RenderPie(ctx context.Context, data []readings.Reading, opts charts.PieOptions) (url string, ok bool, err error) {
	opts.Width = orConfigured(opts.Width, app.Config.Pie.Width)
	opts.Height = orConfigured(opts.Height, app.Config.Pie.Height)
	defer app.timed("pie", len(data))()
	png, err := app.pie.Render(ctx, data, opts)
	if err != nil {
		return "", false, fmt.Errorf("pie chart: %w", err)
	}
	if png == nil {
		return "", false, nil
	}
	return render.DataURL(png), true, nil
}

// RenderYearly returns a yearly summary chart data URL.
func (app *App) RenderYearly(ctx context.Context, records []readings.MonthlyRecord, opts charts.YearlyOptions) (string, error) {
	opts.Width = orConfigured(opts.Width, app.Config.Yearly.Width)
	opts.Height = orConfigured(opts.Height, app.Config.Yearly.Height)
	defer app.timed("yearly", len(records))()
	png, err := app.yearly.Render(ctx, records, opts)
	if err != nil {
		return "", fmt.Errorf("yearly chart: %w", err)
	}
	return render.DataURL(png), nil
}

// RenderCO2Panel returns the CO₂ equivalence panel as a data URL. A
// non-positive width uses the configured default.
func (app *App) RenderCO2Panel(ctx context.Context, totalMass, width float64) (string, error) {
	if width <= 0 {
		width = app.Config.Panel.Width
	}
	defer app.timed("co2", 1)()
	png, err := app.panel.Render(ctx, totalMass, panel.Options{
		Width:      width,
		PixelRatio: app.Config.Panel.PixelRatio,
	})
	if err != nil {
		return "", fmt.Errorf("co2 panel: %w", err)
	}
	return render.DataURL(png), nil
}

// Dashboard is the input for every image on the energy dashboard.
type Dashboard struct {
	Readings []readings.Reading
	Monthly  []readings.MonthlyRecord
	CO2Mass  float64
	YLabel   string
}

// Images holds the data URLs of a rendered dashboard. Pie is empty when
// there was nothing to draw.
type Images struct {
	Bar    string
	Pie    string
	Yearly string
	CO2    string
}

// RenderDashboard renders all four images concurrently. The first failure
// cancels the rest and is returned.
func (app *App) RenderDashboard(ctx context.Context, dashboard Dashboard) (Images, error) {
	var images Images
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		url, err := app.RenderBar(ctx, dashboard.Readings, charts.BarOptions{YLabel: dashboard.YLabel})
		images.Bar = url
		return err
	})
	g.Go(func() error {
		url, _, err := app.RenderPie(ctx, dashboard.Readings, charts.PieOptions{})
		images.Pie = url
		return err
	})
	g.Go(func() error {
		url, err := app.RenderYearly(ctx, dashboard.Monthly, charts.YearlyOptions{})
		images.Yearly = url
		return err
	})
	g.Go(func() error {
		url, err := app.RenderCO2Panel(ctx, dashboard.CO2Mass, 0)
		images.CO2 = url
		return err
	})

	if err := g.Wait(); err != nil {
		return Images{}, err
	}
	return images, nil
}

func orConfigured(value, configured int) int {
	if value > 0 {
		return value
	}
	return configured
}

func (app *App) timed(chart string, inputs int) func() {
	start := time.Now()
	return func() {
		app.Logger.WithFields(logrus.Fields{
			"chart":    chart,
			"inputs":   inputs,
			"duration": time.Since(start),
		}).Debug("render finished")
	}
}
