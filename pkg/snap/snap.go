// Package snap decides whether a dragged path endpoint binds to a nearby
// anchor (a player) or stays a free point.
package snap

import "github.com/ha1tch/playcourt/pkg/vec"

// DefaultRadius is the snap distance in world units.
const DefaultRadius = 28.0

// Candidate is an anchor the endpoint may bind to.
type Candidate struct {
	ID       string
	Position vec.Point
}

// Resolution is the outcome of a snap query. When Bound is true the
// endpoint attaches to ID and Point is the anchor's position; otherwise
// Point is the free drag position.
type Resolution struct {
	Bound bool
	ID    string
	Point vec.Point
}

// Resolver performs snap queries against a fixed radius.
type Resolver struct {
	radius float64
}

// NewResolver returns a resolver that binds within radius (inclusive).
func NewResolver(radius float64) *Resolver {
	return &Resolver{radius: radius}
}

func (r *Resolver) Radius() float64 {
	return r.radius
}

// Resolve finds the candidate nearest to p by squared distance. Ties go
// to the earliest candidate in the slice.
func (r *Resolver) Resolve(p vec.Point, candidates []Candidate) Resolution {
	best := -1
	bestD2 := 0.0
	for i, c := range candidates {
		d2 := p.Dist2(c.Position)
		if best < 0 || d2 < bestD2 {
			best = i
			bestD2 = d2
		}
	}

	if best >= 0 && bestD2 <= r.radius*r.radius {
		c := candidates[best]
		return Resolution{Bound: true, ID: c.ID, Point: c.Position}
	}
	return Resolution{Point: p}
}
