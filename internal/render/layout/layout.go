// Package layout holds the pure geometry used by the renderers. All values
// are logical pixels; the canvas applies oversampling when drawing.
package layout

// Rect is an axis-aligned rectangle in logical pixels.
type Rect struct {
	X, Y float64
	W, H float64
}

// Offset returns rect translated by (dx, dy).
func (rect Rect) Offset(dx, dy float64) Rect {
	return Rect{X: rect.X + dx, Y: rect.Y + dy, W: rect.W, H: rect.H}
}

// Inset shrinks rect by padding on all sides.
func Inset(rect Rect, padding float64) Rect {
	if padding <= 0 {
		return rect
	}
	return Normalize(Rect{X: rect.X + padding, Y: rect.Y + padding, W: rect.W - 2*padding, H: rect.H - 2*padding})
}

// Normalize clamps negative sizes to zero.
func Normalize(rect Rect) Rect {
	if rect.W < 0 {
		rect.W = 0
	}
	if rect.H < 0 {
		rect.H = 0
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidth is clamped to [0, rect.W].
func SplitVertical(rect Rect, leftWidth float64) (left Rect, right Rect) {
	rect = Normalize(rect)
	if leftWidth < 0 {
		leftWidth = 0
	}
	if leftWidth > rect.W {
		leftWidth = rect.W
	}
	left = Rect{X: rect.X, Y: rect.Y, W: leftWidth, H: rect.H}
	right = Rect{X: rect.X + leftWidth, Y: rect.Y, W: rect.W - leftWidth, H: rect.H}
	return left, right
}

// FitSize scales (srcW, srcH) to fit inside rect preserving aspect ratio,
// centred on both axes.
func FitSize(rect Rect, srcW, srcH float64) Rect {
	rect = Normalize(rect)
	if srcW <= 0 || srcH <= 0 || rect.W == 0 || rect.H == 0 {
		return Rect{X: rect.X, Y: rect.Y}
	}
	scale := rect.W / srcW
	if s := rect.H / srcH; s < scale {
		scale = s
	}
	w := srcW * scale
	h := srcH * scale
	return Rect{X: rect.X + (rect.W-w)/2, Y: rect.Y + (rect.H-h)/2, W: w, H: h}
}
