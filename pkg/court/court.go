// Package court derives half-court feature coordinates from real-world
// measurements and a pixel scale.
//
// The court is drawn with the baseline at the top of the canvas and the
// half-court line at the bottom. Every derived value is linear in
// Spec.Scale, so changing the scale rescales the whole drawing.
package court

import (
	"errors"
	"fmt"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// ErrInvalidSpec is wrapped by every Spec validation failure.
var ErrInvalidSpec = errors.New("invalid court spec")

// Spec holds the real-world court measurements (feet) plus the pixel
// scale and out-of-bounds buffer used to lay them out.
type Spec struct {
	Scale  float64 `mapstructure:"scale"`  // pixels per foot
	Buffer float64 `mapstructure:"buffer"` // pixels of out-of-bounds margin on every side

	WidthFt            float64 `mapstructure:"width_ft"`
	LengthFt           float64 `mapstructure:"length_ft"`
	BackboardOffsetFt  float64 `mapstructure:"backboard_offset_ft"`
	BackboardWidthFt   float64 `mapstructure:"backboard_width_ft"`
	RimOffsetFt        float64 `mapstructure:"rim_offset_ft"`
	RimRadiusFt        float64 `mapstructure:"rim_radius_ft"`
	LaneWidthFt        float64 `mapstructure:"lane_width_ft"`
	FreeThrowFt        float64 `mapstructure:"free_throw_ft"`
	FreeThrowRadiusFt  float64 `mapstructure:"free_throw_radius_ft"`
	ThreePointRadiusFt float64 `mapstructure:"three_point_radius_ft"`
}

// DefaultSpec returns the high-school half-court at 14 px/ft.
func DefaultSpec() Spec {
	return Spec{
		Scale:              14,
		Buffer:             80,
		WidthFt:            50,
		LengthFt:           42,
		BackboardOffsetFt:  4,
		BackboardWidthFt:   6,
		RimOffsetFt:        5.25, // 63 inches
		RimRadiusFt:        0.75,
		LaneWidthFt:        12,
		FreeThrowFt:        19, // backboard + 15
		FreeThrowRadiusFt:  6,
		ThreePointRadiusFt: 19.75,
	}
}

// Validate reports configuration errors. Geometry functions assume a
// validated spec and do not check again.
func (s Spec) Validate() error {
	if s.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidSpec, s.Scale)
	}
	if s.Buffer < 0 {
		return fmt.Errorf("%w: buffer must not be negative, got %v", ErrInvalidSpec, s.Buffer)
	}
	dims := []struct {
		name string
		v    float64
	}{
		{"width_ft", s.WidthFt},
		{"length_ft", s.LengthFt},
		{"rim_radius_ft", s.RimRadiusFt},
		{"lane_width_ft", s.LaneWidthFt},
		{"free_throw_radius_ft", s.FreeThrowRadiusFt},
		{"three_point_radius_ft", s.ThreePointRadiusFt},
	}
	for _, d := range dims {
		if d.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidSpec, d.name, d.v)
		}
	}
	return nil
}

// Px converts feet to pixels.
func (s Spec) Px(feet float64) float64 {
	return feet * s.Scale
}

// CourtSize returns the in-bounds court size in pixels.
func (s Spec) CourtSize() (w, h float64) {
	return s.Px(s.WidthFt), s.Px(s.LengthFt)
}

// CanvasSize returns the court size plus the buffer on every side.
func (s Spec) CanvasSize() (w, h float64) {
	cw, ch := s.CourtSize()
	return cw + 2*s.Buffer, ch + 2*s.Buffer
}

// CourtRect returns the in-bounds rectangle in canvas coordinates.
func (s Spec) CourtRect() vec.Rect {
	w, h := s.CourtSize()
	return vec.Rect{X: s.Buffer, Y: s.Buffer, W: w, H: h}
}

// Layout is the set of derived feature coordinates.
type Layout struct {
	Court vec.Rect

	BaselineY      float64
	HalfCourtY     float64
	LeftSidelineX  float64
	RightSidelineX float64
	CenterX        float64

	Backboard vec.Rect
	Rim       vec.Point
	RimRadius float64

	Lane            vec.Rect
	FreeThrowY      float64
	FreeThrowRadius float64

	ThreePointRadius float64
}

// NewLayout derives every feature position from s.
func NewLayout(s Spec) Layout {
	c := s.CourtRect()
	centerX := c.X + c.W/2
	baselineY := c.Y

	bbW := s.Px(s.BackboardWidthFt)
	laneW := s.Px(s.LaneWidthFt)
	ftY := baselineY + s.Px(s.FreeThrowFt)

	return Layout{
		Court:          c,
		BaselineY:      baselineY,
		HalfCourtY:     c.Y + c.H,
		LeftSidelineX:  c.X,
		RightSidelineX: c.X + c.W,
		CenterX:        centerX,

		// Backboard is drawn as a thin bar 1/7 ft deep (2px at the default scale)
		Backboard: vec.Rect{
			X: centerX - bbW/2,
			Y: baselineY + s.Px(s.BackboardOffsetFt),
			W: bbW,
			H: s.Px(1.0 / 7),
		},
		Rim:       vec.Pt(centerX, baselineY+s.Px(s.RimOffsetFt)),
		RimRadius: s.Px(s.RimRadiusFt),

		Lane: vec.Rect{
			X: centerX - laneW/2,
			Y: baselineY,
			W: laneW,
			H: ftY - baselineY,
		},
		FreeThrowY:      ftY,
		FreeThrowRadius: s.Px(s.FreeThrowRadiusFt),

		ThreePointRadius: s.Px(s.ThreePointRadiusFt),
	}
}
