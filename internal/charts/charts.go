// Package charts renders sensor readings into bar, pie and yearly summary
// PNG images.
package charts

import (
	"image/color"

	"github.com/sirupsen/logrus"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/noahaxio/renderers/internal/colors"
	"github.com/noahaxio/renderers/internal/render"
)

// NoDataMessage is drawn on charts that have nothing to plot.
const NoDataMessage = "No data"

// ColorResolver maps a sensor label to its fill and border colours.
type ColorResolver interface {
	Resolve(label string) colors.Assignment
}

// Deps are shared by every chart renderer.
type Deps struct {
	Colors ColorResolver
	Fonts  *render.FontSet
	Logger logrus.FieldLogger
}

func (deps Deps) withDefaults(chartName string) Deps {
	if deps.Colors == nil {
		deps.Colors = colors.NewRegistry()
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	if deps.Fonts == nil {
		deps.Fonts = render.LoadFonts(deps.Logger)
	}
	deps.Logger = deps.Logger.WithFields(logrus.Fields{"component": "charts", "chart": chartName})
	return deps
}

func chartColor(c color.NRGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
