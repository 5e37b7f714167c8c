package render

import (
	"math"

	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/noahaxio/renderers/internal/render/layout"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

func fixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}

// ClampRadius limits a corner radius to half the shorter side of a w×h box.
func ClampRadius(radius, w, h float64) float64 {
	if radius < 0 {
		return 0
	}
	limit := math.Min(w, h) / 2
	if limit < 0 {
		return 0
	}
	if radius > limit {
		return limit
	}
	return radius
}

// RoundedRectPath returns the closed outline of rect with rounded corners,
// with every coordinate multiplied by scale.
func RoundedRectPath(rect layout.Rect, radius, scale float64) raster.Path {
	r := ClampRadius(radius, rect.W, rect.H) * scale
	x0, y0 := rect.X*scale, rect.Y*scale
	x1, y1 := (rect.X+rect.W)*scale, (rect.Y+rect.H)*scale
	k := r * kappa

	var path raster.Path
	path.Start(fixedPoint(x0+r, y0))
	path.Add1(fixedPoint(x1-r, y0))
	path.Add3(fixedPoint(x1-r+k, y0), fixedPoint(x1, y0+r-k), fixedPoint(x1, y0+r))
	path.Add1(fixedPoint(x1, y1-r))
	path.Add3(fixedPoint(x1, y1-r+k), fixedPoint(x1-r+k, y1), fixedPoint(x1-r, y1))
	path.Add1(fixedPoint(x0+r, y1))
	path.Add3(fixedPoint(x0+r-k, y1), fixedPoint(x0, y1-r+k), fixedPoint(x0, y1-r))
	path.Add1(fixedPoint(x0, y0+r))
	path.Add3(fixedPoint(x0, y0+r-k), fixedPoint(x0+r-k, y0), fixedPoint(x0+r, y0))
	return path
}

// CirclePath returns the closed outline of a circle, scaled like RoundedRectPath.
func CirclePath(cx, cy, radius, scale float64) raster.Path {
	cx, cy, r := cx*scale, cy*scale, math.Max(radius, 0)*scale
	k := r * kappa

	var path raster.Path
	path.Start(fixedPoint(cx+r, cy))
	path.Add3(fixedPoint(cx+r, cy+k), fixedPoint(cx+k, cy+r), fixedPoint(cx, cy+r))
	path.Add3(fixedPoint(cx-k, cy+r), fixedPoint(cx-r, cy+k), fixedPoint(cx-r, cy))
	path.Add3(fixedPoint(cx-r, cy-k), fixedPoint(cx-k, cy-r), fixedPoint(cx, cy-r))
	path.Add3(fixedPoint(cx+k, cy-r), fixedPoint(cx+r, cy-k), fixedPoint(cx+r, cy))
	return path
}
