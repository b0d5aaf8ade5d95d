// Vector helpers shared by the court, viewport and curve code.
// All coordinates are world units unless a caller says otherwise.

package vec

import "math"

// Point represents a 2D coordinate or displacement.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{p.X * s, p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Len2 returns the squared length. Prefer it for comparisons.
func (p Point) Len2() float64 {
	return p.X*p.X + p.Y*p.Y
}

func (p Point) Len() float64 {
	return math.Sqrt(p.Len2())
}

// Dist2 returns the squared distance between p and q.
func (p Point) Dist2(q Point) float64 {
	return p.Sub(q).Len2()
}

// Lerp interpolates from p (t=0) to q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// SafeLen returns the length of p, or 1 when p is the zero vector,
// so callers can divide by it unconditionally.
func (p Point) SafeLen() float64 {
	l := p.Len()
	if l == 0 {
		return 1
	}
	return l
}

// Unit returns p scaled to length 1. The zero vector stays zero.
func (p Point) Unit() Point {
	return p.Mul(1 / p.SafeLen())
}

// Normal returns the left-hand unit normal (-y, x)/|p|.
// The zero vector yields the zero normal.
func (p Point) Normal() Point {
	l := p.SafeLen()
	return Point{-p.Y / l, p.X / l}
}

// Clamp limits n to [lo, hi]. When hi < lo the result is lo.
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func (r Rect) Min() Point { return Point{r.X, r.Y} }
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Center returns the rectangle's centre point.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks r by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d}
}

// ClampPoint limits p to lie within r on both axes.
func (r Rect) ClampPoint(p Point) Point {
	return Point{
		X: Clamp(p.X, r.X, r.X+r.W),
		Y: Clamp(p.Y, r.Y, r.Y+r.H),
	}
}
