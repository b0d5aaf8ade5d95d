// Package render paints a play diagram onto a drawing surface.
//
// Surface is the draw-command boundary: the painter only issues commands
// in world coordinates, and a Surface implementation decides how they
// reach pixels. Raster is the built-in implementation.
package render

import (
	"image/color"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// Style describes how a shape is stroked and filled. A nil Stroke or Fill
// skips that step.
type Style struct {
	Stroke color.Color
	Fill   color.Color
	Width  float64
	Dash   []float64
}

// Stroked returns a stroke-only style.
func Stroked(c color.Color, width float64) Style {
	return Style{Stroke: c, Width: width}
}

// Filled returns a fill-only style.
func Filled(c color.Color) Style {
	return Style{Fill: c}
}

// Surface receives draw commands in world coordinates. Angles are in
// radians in screen orientation (growing toward +Y).
type Surface interface {
	Clear(c color.Color)
	Line(a, b vec.Point, st Style)
	Polyline(pts []vec.Point, st Style)
	Rect(r vec.Rect, st Style)
	Circle(center vec.Point, radius float64, st Style)
	Arc(center vec.Point, radius, start, end float64, st Style)
	Polygon(pts []vec.Point, st Style)
	// Text draws s centred on at.
	Text(s string, at vec.Point, c color.Color)
}
