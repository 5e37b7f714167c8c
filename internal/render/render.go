package render

import (
	"image"
	"image/color"

	"github.com/noahaxio/renderers/internal/render/layout"
)

// Drawer is the surface renderers draw on. Coordinates are logical pixels;
// implementations map them onto a possibly oversampled pixel buffer.
type Drawer interface {
	// Size returns the logical canvas size.
	Size() (width float64, height float64)

	FillBackground(c color.Color)

	// Generic text primitives. y is the text baseline.
	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y float64, style TextStyle) TextMetrics

	// Generic shape primitives.
	FillRect(rect layout.Rect, c color.Color)
	FillRoundedRect(rect layout.Rect, radius float64, c color.Color)
	FillCircle(cx, cy, radius float64, c color.Color)

	// Generic image primitives.
	DrawImageInRect(img image.Image, rect layout.Rect, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  float64 // font size in logical pixels; 0 means DefaultFontSize
	Bold  bool
	Align TextAlign
}

// TextMetrics are reported in logical pixels.
type TextMetrics struct {
	Width      float64
	Ascent     float64
	Descent    float64
	LineHeight float64
}

type ScaleMode int

const (
	// ScaleModeFit preserves aspect ratio and centres the image in the rect.
	ScaleModeFit ScaleMode = iota
	// ScaleModeStretch fills the rect exactly.
	ScaleModeStretch
)

// MeasureFunc reports the rendered width of text in logical pixels.
type MeasureFunc func(text string) float64

// Measurer returns a MeasureFunc bound to one text style.
func Measurer(d Drawer, style TextStyle) MeasureFunc {
	return func(text string) float64 {
		return d.MeasureText(text, style).Width
	}
}
