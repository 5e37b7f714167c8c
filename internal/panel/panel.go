// Package panel renders the CO₂ equivalence infographic: a header with the
// saved mass and a two column grid of cards.
package panel

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/noahaxio/renderers/internal/render"
	"github.com/noahaxio/renderers/internal/render/layout"
)

const (
	DefaultWidth      = 520.0
	DefaultPixelRatio = 4.0
)

// Layout of the panel in logical pixels.
var Grid = layout.Grid{
	Width:        DefaultWidth,
	Columns:      2,
	Padding:      20,
	Gap:          15,
	CardHeight:   100,
	HeaderHeight: 110,
}

var (
	titleColor       = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	massColor        = color.NRGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF}
	shadowColor      = color.NRGBA{A: 0x1A}
	cardColor        = color.NRGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}
	cardTitleColor   = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	placeholderColor = color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}
)

const (
	cardRadius      = 8.0
	shadowOffset    = 2.0
	iconSize        = 40.0
	placeholderSize = 20.0
	textIndent      = 70.0
	titleLineHeight = 16.0
)

// IconLoader fetches rasterized icons by key. Missing keys are drawn as a
// placeholder disc.
type IconLoader interface {
	Load(ctx context.Context, files map[string]string) map[string]image.Image
}

type Options struct {
	// Width is the logical canvas width; 0 means DefaultWidth.
	Width float64
	// PixelRatio is the oversampling factor; 0 means DefaultPixelRatio.
	PixelRatio float64
}

type Renderer struct {
	fonts  *render.FontSet
	icons  IconLoader
	logger logrus.FieldLogger
}

func NewRenderer(fonts *render.FontSet, icons IconLoader, logger logrus.FieldLogger) *Renderer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if fonts == nil {
		fonts = render.LoadFonts(logger)
	}
	return &Renderer{
		fonts:  fonts,
		icons:  icons,
		logger: logger.WithField("component", "panel"),
	}
}

// Render draws the panel for mass tonnes of CO₂ and returns a PNG whose
// height fits the cards exactly.
func (r *Renderer) Render(ctx context.Context, mass float64, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := Cards(mass)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", err, mass)
	}

	grid := Grid
	if opts.Width > 0 {
		grid.Width = opts.Width
	}
	ratio := opts.PixelRatio
	if ratio <= 0 {
		ratio = DefaultPixelRatio
	}

	icons := r.loadIcons(ctx, cards)

	canvas, err := render.NewCanvas(grid.Width, grid.Height(len(cards)), ratio, r.fonts)
	if err != nil {
		return nil, err
	}
	Draw(canvas, grid, mass, cards, icons)

	r.logger.WithFields(logrus.Fields{
		"mass":   mass,
		"cards":  len(cards),
		"icons":  len(icons),
		"width":  grid.Width,
		"height": grid.Height(len(cards)),
	}).Debug("panel rendered")
	return canvas.EncodePNG()
}

func (r *Renderer) loadIcons(ctx context.Context, cards []Card) map[string]image.Image {
	if r.icons == nil {
		return nil
	}
	files := make(map[string]string, len(cards))
	for _, card := range cards {
		if file, ok := IconFiles[card.IconKey]; ok {
			files[card.IconKey] = file
		} else {
			r.logger.WithField("icon", card.IconKey).Warn("no icon file for card")
		}
	}
	return r.icons.Load(ctx, files)
}

// Draw paints the header and every card onto d.
func Draw(d render.Drawer, grid layout.Grid, mass float64, cards []Card, icons map[string]image.Image) {
	d.FillBackground(render.Background)

	d.DrawText("Carbon Savings", 20, 40, render.TextStyle{Color: titleColor, Size: 24, Bold: true})
	d.DrawText(fmt.Sprintf("%.1f t CO₂", mass), 20, 85, render.TextStyle{Color: massColor, Size: 36, Bold: true})

	for i, card := range cards {
		drawCard(d, grid.Cell(i), card, icons[card.IconKey])
	}
}

func drawCard(d render.Drawer, cell layout.Rect, card Card, icon image.Image) {
	d.FillRoundedRect(cell.Offset(shadowOffset, shadowOffset), cardRadius, shadowColor)
	d.FillRoundedRect(cell, cardRadius, cardColor)

	if icon != nil {
		d.DrawImageInRect(icon, layout.Rect{X: cell.X + 15, Y: cell.Y + 30, W: iconSize, H: iconSize}, render.ScaleModeStretch)
	} else {
		d.FillCircle(cell.X+35, cell.Y+50, placeholderSize, placeholderColor)
	}

	titleStyle := render.TextStyle{Color: cardTitleColor, Size: 13, Bold: true}
	lines := render.WrapText(card.Title, cell.W-80, render.Measurer(d, titleStyle))
	for i, line := range lines {
		d.DrawText(line, cell.X+textIndent, cell.Y+25+float64(i)*titleLineHeight, titleStyle)
	}

	d.DrawText(card.Value, cell.X+textIndent, cell.Y+80, render.TextStyle{Color: card.Accent, Size: 20, Bold: true})
}
