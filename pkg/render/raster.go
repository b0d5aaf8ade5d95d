// Raster surface backed by gg.
// Draws at an integer supersampling factor and downsamples on request,
// the same way the PNG diagrams used to be produced.

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// RasterOptions configures a Raster.
type RasterOptions struct {
	Width, Height int     // world size in units
	Supersample   int     // pixels per world unit, at least 1
	FontSize      float64 // in world units
}

// DefaultRasterOptions returns options for a w x h world at 2x.
func DefaultRasterOptions(w, h int) RasterOptions {
	return RasterOptions{Width: w, Height: h, Supersample: 2, FontSize: 14}
}

// Raster implements Surface on an in-memory RGBA image.
type Raster struct {
	dc   *gg.Context
	k    float64 // supersampling factor
	opts RasterOptions
}

// NewRaster allocates a raster surface.
func NewRaster(opts RasterOptions) (*Raster, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	k := float64(opts.Supersample)

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize * k,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled
	})
	if err != nil {
		return nil, fmt.Errorf("raster: font face: %w", err)
	}

	dc := gg.NewContext(opts.Width*opts.Supersample, opts.Height*opts.Supersample)
	dc.SetFontFace(face)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	return &Raster{dc: dc, k: k, opts: opts}, nil
}

// Image returns the full-resolution image.
func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

// Downscale resamples the image to w x h pixels.
func (r *Raster) Downscale(w, h int) *image.RGBA {
	src := r.dc.Image()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Size returns the world size the raster covers.
func (r *Raster) Size() (w, h int) {
	return r.opts.Width, r.opts.Height
}

func (r *Raster) Clear(c color.Color) {
	r.dc.SetColor(c)
	r.dc.Clear()
}

func (r *Raster) Line(a, b vec.Point, st Style) {
	r.dc.DrawLine(a.X*r.k, a.Y*r.k, b.X*r.k, b.Y*r.k)
	st.Fill = nil
	r.paint(st)
}

func (r *Raster) Polyline(pts []vec.Point, st Style) {
	if len(pts) < 2 {
		return
	}
	r.dc.MoveTo(pts[0].X*r.k, pts[0].Y*r.k)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X*r.k, p.Y*r.k)
	}
	st.Fill = nil
	r.paint(st)
}

func (r *Raster) Rect(rect vec.Rect, st Style) {
	r.dc.DrawRectangle(rect.X*r.k, rect.Y*r.k, rect.W*r.k, rect.H*r.k)
	r.paint(st)
}

func (r *Raster) Circle(center vec.Point, radius float64, st Style) {
	r.dc.DrawCircle(center.X*r.k, center.Y*r.k, radius*r.k)
	r.paint(st)
}

func (r *Raster) Arc(center vec.Point, radius, start, end float64, st Style) {
	r.dc.NewSubPath()
	r.dc.DrawArc(center.X*r.k, center.Y*r.k, radius*r.k, start, end)
	st.Fill = nil
	r.paint(st)
}

func (r *Raster) Polygon(pts []vec.Point, st Style) {
	if len(pts) < 3 {
		return
	}
	r.dc.MoveTo(pts[0].X*r.k, pts[0].Y*r.k)
	for _, p := range pts[1:] {
		r.dc.LineTo(p.X*r.k, p.Y*r.k)
	}
	r.dc.ClosePath()
	r.paint(st)
}

func (r *Raster) Text(s string, at vec.Point, c color.Color) {
	r.dc.SetColor(c)
	r.dc.DrawStringAnchored(s, at.X*r.k, at.Y*r.k, 0.5, 0.35)
}

// paint fills and/or strokes the current path, then clears it.
func (r *Raster) paint(st Style) {
	switch {
	case st.Fill != nil && st.Stroke != nil:
		r.dc.SetColor(st.Fill)
		r.dc.FillPreserve()
		r.stroke(st)
	case st.Fill != nil:
		r.dc.SetColor(st.Fill)
		r.dc.Fill()
	case st.Stroke != nil:
		r.stroke(st)
	default:
		r.dc.ClearPath()
	}
}

func (r *Raster) stroke(st Style) {
	w := st.Width
	if w <= 0 {
		w = 1
	}
	dash := make([]float64, len(st.Dash))
	for i, d := range st.Dash {
		dash[i] = d * r.k
	}
	r.dc.SetColor(st.Stroke)
	r.dc.SetLineWidth(w * r.k)
	r.dc.SetDash(dash...)
	r.dc.Stroke()
}
