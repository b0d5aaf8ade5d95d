// Package placement decides where new tokens land and keeps dragged tokens
// inside the canvas.
package placement

import (
	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/vec"
	"github.com/ha1tch/playcourt/pkg/viewport"
)

// Radii are the visual radii of tokens in world units.
type Radii struct {
	Player float64 `mapstructure:"player"`
	Cone   float64 `mapstructure:"cone"`
}

// DefaultRadii returns the standard token sizes.
func DefaultRadii() Radii {
	return Radii{Player: 20, Cone: 18}
}

// SpotFractions are the preset spots as fractions of the court rectangle,
// cycled through as tokens of one kind are added.
var SpotFractions = []vec.Point{
	{X: 0.30, Y: 0.50},
	{X: 0.40, Y: 0.40},
	{X: 0.50, Y: 0.60},
	{X: 0.60, Y: 0.35},
	{X: 0.70, Y: 0.55},
}

// Policy places and moves tokens.
type Policy struct {
	vp    *viewport.Viewport
	radii Radii
	spots []vec.Point
}

// New returns a policy whose preset spots are laid out on spec's court.
func New(spec court.Spec, vp *viewport.Viewport, radii Radii) *Policy {
	rect := spec.CourtRect()
	spots := make([]vec.Point, len(SpotFractions))
	for i, f := range SpotFractions {
		spots[i] = vec.Pt(rect.X+rect.W*f.X, rect.Y+rect.H*f.Y)
	}
	return &Policy{vp: vp, radii: radii, spots: spots}
}

// Spots returns the preset spots in world coordinates.
func (p *Policy) Spots() []vec.Point {
	out := make([]vec.Point, len(p.spots))
	copy(out, p.spots)
	return out
}

// Radius returns the visual radius for role.
func (p *Policy) Radius(role diagram.Role) float64 {
	if role.IsPlayer() {
		return p.radii.Player
	}
	return p.radii.Cone
}

// PlaceNew returns the preset spot for the next token of role's kind given
// how many of that kind are already placed.
func (p *Policy) PlaceNew(role diagram.Role, occupancy int) vec.Point {
	n := len(p.spots)
	i := ((occupancy % n) + n) % n
	return p.vp.Clamp(p.spots[i], p.Radius(role))
}

// PlaceDropped returns the position for a token dropped at a world point.
func (p *Policy) PlaceDropped(role diagram.Role, at vec.Point) vec.Point {
	return p.vp.Clamp(at, p.Radius(role))
}

// Move clamps proposed for the token's radius, stores it and returns it.
func (p *Policy) Move(t *diagram.Token, proposed vec.Point) vec.Point {
	t.Pos = p.vp.Clamp(proposed, p.Radius(t.Role))
	return t.Pos
}
