package render

import (
	"errors"
	"image/color"
)

// Render defaults shared by every canvas.
var (
	Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Foreground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}

	DefaultFontSize = 14.0

	// MaxCanvasPixels bounds the physical buffer a single render may allocate.
	MaxCanvasPixels = 64 << 20
)

// ErrCanvasSize is returned when a canvas would be empty or too large.
var ErrCanvasSize = errors.New("invalid canvas size")
