package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/golang/freetype/raster"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/noahaxio/renderers/internal/render/layout"
)

// Canvas is an offscreen RGBA buffer addressed in logical pixels. The
// physical buffer is the logical size times Scale, so text and vector
// edges stay sharp when the exported image is shown scaled down.
type Canvas struct {
	img    *image.RGBA
	width  float64
	height float64
	scale  float64
	fonts  *FontSet
	faces  map[faceKey]font.Face
	raster *raster.Rasterizer
}

type faceKey struct {
	bold bool
	size float64
}

// NewCanvas allocates a canvas of width×height logical pixels drawn at the
// given oversampling factor. A non-positive scale means 1.
func NewCanvas(width, height, scale float64, fonts *FontSet) (*Canvas, error) {
	if !(scale > 0) {
		scale = 1
	}
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrCanvasSize, width, height)
	}
	// Bound the float sizes before converting so huge values cannot wrap.
	if limit := float64(MaxCanvasPixels); width*scale > limit || height*scale > limit {
		return nil, fmt.Errorf("%w: %vx%v at scale %v exceeds limit of %d pixels", ErrCanvasSize, width, height, scale, MaxCanvasPixels)
	}
	physW := int(math.Ceil(width * scale))
	physH := int(math.Ceil(height * scale))
	if physW <= 0 || physH <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrCanvasSize, width, height)
	}
	if physW > MaxCanvasPixels/physH {
		return nil, fmt.Errorf("%w: %dx%d pixels exceeds limit of %d", ErrCanvasSize, physW, physH, MaxCanvasPixels)
	}
	if fonts == nil || fonts.logger == nil {
		fonts = LoadFonts(nil)
	}

	rasterizer := raster.NewRasterizer(physW, physH)
	rasterizer.UseNonZeroWinding = true

	return &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, physW, physH)),
		width:  width,
		height: height,
		scale:  scale,
		fonts:  fonts,
		faces:  make(map[faceKey]font.Face),
		raster: rasterizer,
	}, nil
}

// Image exposes the physical pixel buffer.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Scale returns the oversampling factor.
func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) Size() (float64, float64) { return c.width, c.height }

func (c *Canvas) FillBackground(col color.Color) {
	if col == nil {
		col = Background
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) face(style TextStyle) font.Face {
	size := style.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	key := faceKey{bold: style.Bold, size: size}
	if face, ok := c.faces[key]; ok {
		return face
	}
	face := c.fonts.newFace(style.Bold, size*c.scale)
	c.faces[key] = face
	return face
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.face(style)
	metrics := face.Metrics()
	return TextMetrics{
		Width:      c.unscale(font.MeasureString(face, text)),
		Ascent:     c.unscale(metrics.Ascent),
		Descent:    c.unscale(metrics.Descent),
		LineHeight: c.unscale(metrics.Height),
	}
}

// DrawText draws text with its baseline at y.
func (c *Canvas) DrawText(text string, x, y float64, style TextStyle) TextMetrics {
	metrics := c.MeasureText(text, style)
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	fg := style.Color
	if fg == nil {
		fg = Foreground
	}
	drawer := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(fg),
		Face: c.face(style),
		Dot:  fixedPoint(x*c.scale, y*c.scale),
	}
	drawer.DrawString(text)
	return metrics
}

func (c *Canvas) FillRect(rect layout.Rect, col color.Color) {
	c.fillPath(RoundedRectPath(rect, 0, c.scale), col)
}

func (c *Canvas) FillRoundedRect(rect layout.Rect, radius float64, col color.Color) {
	c.fillPath(RoundedRectPath(rect, radius, c.scale), col)
}

func (c *Canvas) FillCircle(cx, cy, radius float64, col color.Color) {
	c.fillPath(CirclePath(cx, cy, radius, c.scale), col)
}

func (c *Canvas) fillPath(path raster.Path, col color.Color) {
	c.raster.Clear()
	c.raster.AddPath(path)
	painter := raster.NewRGBAPainter(c.img)
	painter.SetColor(col)
	c.raster.Rasterize(painter)
}

// DrawImageInRect composites img into rect with high quality resampling.
func (c *Canvas) DrawImageInRect(img image.Image, rect layout.Rect, mode ScaleMode) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	if mode == ScaleModeFit {
		rect = layout.FitSize(rect, float64(bounds.Dx()), float64(bounds.Dy()))
	}
	dst := image.Rect(
		int(math.Round(rect.X*c.scale)),
		int(math.Round(rect.Y*c.scale)),
		int(math.Round((rect.X+rect.W)*c.scale)),
		int(math.Round((rect.Y+rect.H)*c.scale)),
	)
	if dst.Empty() {
		return
	}
	xdraw.CatmullRom.Scale(c.img, dst, img, bounds, xdraw.Over, nil)
}

// EncodePNG encodes the physical buffer.
func (c *Canvas) EncodePNG() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, c.img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Canvas) unscale(v fixed.Int26_6) float64 {
	return float64(v) / 64 / c.scale
}
