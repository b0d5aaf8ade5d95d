// Package viewport maps between screen and world coordinates and owns the
// single bounds policy shared by every draggable entity.
package viewport

import (
	"math"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/vec"
)

// FitPolicy controls how the canvas is scaled into a host display region
// that also holds a primary (toolbox) and a secondary (phases/help) panel.
type FitPolicy struct {
	PrimaryWidth   float64 `mapstructure:"primary_width"`
	SecondaryWidth float64 `mapstructure:"secondary_width"`
	Gap            float64 `mapstructure:"gap"`
	MinScale       float64 `mapstructure:"min_scale"`
	MaxScale       float64 `mapstructure:"max_scale"`
	HideBelow      float64 `mapstructure:"hide_below"` // hide the secondary panel when the scale drops under this
	MinHeight      float64 `mapstructure:"min_height"`
}

// DefaultFitPolicy returns the browser editor's panel geometry.
func DefaultFitPolicy() FitPolicy {
	return FitPolicy{
		PrimaryWidth:   280,
		SecondaryWidth: 260,
		Gap:            24,
		MinScale:       0.75,
		MaxScale:       1,
		HideBelow:      0.9,
		MinHeight:      200,
	}
}

// FitResult is the outcome of fitting the canvas into a display region.
type FitResult struct {
	Scale            float64
	SecondaryVisible bool
}

// Viewport holds the canvas size, the current display scale and the
// on-screen origin of the canvas element.
type Viewport struct {
	width, height float64
	scale         float64
	origin        vec.Point
	policy        FitPolicy
}

// New returns a viewport for the spec's canvas at scale 1.
func New(spec court.Spec, policy FitPolicy) *Viewport {
	w, h := spec.CanvasSize()
	return &Viewport{width: w, height: h, scale: 1, policy: policy}
}

// Size returns the canvas size in world units.
func (v *Viewport) Size() (w, h float64) {
	return v.width, v.height
}

// Bounds returns the canvas rectangle in world units.
func (v *Viewport) Bounds() vec.Rect {
	return vec.Rect{W: v.width, H: v.height}
}

func (v *Viewport) Scale() float64 {
	return v.scale
}

// SetScale sets the display scale, limited to the policy's range.
func (v *Viewport) SetScale(s float64) {
	v.scale = vec.Clamp(s, v.policy.MinScale, v.policy.MaxScale)
}

// Origin returns the canvas element's on-screen top-left corner.
func (v *Viewport) Origin() vec.Point {
	return v.origin
}

// SetOrigin records where the canvas element sits on screen.
func (v *Viewport) SetOrigin(x, y float64) {
	v.origin = vec.Pt(x, y)
}

// ScreenToWorld converts a screen position to world coordinates.
func (v *Viewport) ScreenToWorld(sx, sy float64) vec.Point {
	return vec.Pt((sx-v.origin.X)/v.scale, (sy-v.origin.Y)/v.scale)
}

// WorldToScreen is the inverse of ScreenToWorld.
func (v *Viewport) WorldToScreen(p vec.Point) (sx, sy float64) {
	return p.X*v.scale + v.origin.X, p.Y*v.scale + v.origin.Y
}

// Clamp constrains p so that a disc of radius r centred on it stays
// inside the canvas: each axis ends up in [r, dim-r].
func (v *Viewport) Clamp(p vec.Point, r float64) vec.Point {
	return vec.Pt(
		vec.Clamp(p.X, r, v.width-r),
		vec.Clamp(p.Y, r, v.height-r),
	)
}

// Fit recomputes the scale for a display region of the given size and
// applies it. Below the policy's HideBelow threshold the secondary panel
// is dropped and the scale is recomputed against the reclaimed width.
func (v *Viewport) Fit(containerW, containerH float64) FitResult {
	p := v.policy
	availH := math.Max(containerH, p.MinHeight)

	scaleFor := func(w float64) float64 {
		s := math.Min(w/v.width, availH/v.height)
		return vec.Clamp(s, p.MinScale, p.MaxScale)
	}

	withSecondary := containerW - p.PrimaryWidth - 2*p.Gap - p.SecondaryWidth
	res := FitResult{Scale: scaleFor(withSecondary), SecondaryVisible: true}

	if withSecondary <= 0 || res.Scale < p.HideBelow {
		res.SecondaryVisible = false
		res.Scale = scaleFor(containerW - p.PrimaryWidth - p.Gap)
	}

	v.scale = res.Scale
	return res
}
