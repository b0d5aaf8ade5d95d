package court

import (
	"math"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// Kind identifies the primitive type of a Feature.
type Kind int

const (
	KindLine   Kind = iota // A to B
	KindRect               // Rect
	KindCircle             // Center, Radius
	KindArc                // Center, Radius, Start..End (radians)
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindArc:
		return "arc"
	}
	return "unknown"
}

// Feature is a style-neutral drawable primitive.
//
// Arc angles use screen orientation: 0 points along +X and angles grow
// toward +Y (down the canvas), so [0, π] is the half facing half court.
type Feature struct {
	Name string
	Kind Kind

	A, B   vec.Point
	Rect   vec.Rect
	Center vec.Point
	Radius float64
	Start  float64
	End    float64

	Dashed bool
	Filled bool
}

// Feature names, in drawing order.
const (
	FeatureOutline        = "outline"
	FeatureBaseline       = "baseline"
	FeatureLeftSideline   = "left-sideline"
	FeatureRightSideline  = "right-sideline"
	FeatureHalfCourt      = "half-court"
	FeatureBackboard      = "backboard"
	FeatureRim            = "rim"
	FeatureLane           = "lane"
	FeatureFreeThrowLine  = "free-throw-line"
	FeatureFreeThrowUpper = "free-throw-circle-upper"
	FeatureFreeThrowLower = "free-throw-circle-lower"
	FeatureThreePointArc  = "three-point-arc"
)

// Features returns every primitive needed to paint the court background.
func Features(s Spec) []Feature {
	l := NewLayout(s)
	return l.Features()
}

// Features returns the drawable primitives for an already computed layout.
func (l Layout) Features() []Feature {
	line := func(name string, a, b vec.Point) Feature {
		return Feature{Name: name, Kind: KindLine, A: a, B: b}
	}
	ft := vec.Pt(l.CenterX, l.FreeThrowY)

	return []Feature{
		{Name: FeatureOutline, Kind: KindRect, Rect: l.Court},
		line(FeatureBaseline, vec.Pt(l.LeftSidelineX, l.BaselineY), vec.Pt(l.RightSidelineX, l.BaselineY)),
		line(FeatureLeftSideline, vec.Pt(l.LeftSidelineX, l.BaselineY), vec.Pt(l.LeftSidelineX, l.HalfCourtY)),
		line(FeatureRightSideline, vec.Pt(l.RightSidelineX, l.BaselineY), vec.Pt(l.RightSidelineX, l.HalfCourtY)),
		line(FeatureHalfCourt, vec.Pt(l.LeftSidelineX, l.HalfCourtY), vec.Pt(l.RightSidelineX, l.HalfCourtY)),
		{Name: FeatureBackboard, Kind: KindRect, Rect: l.Backboard, Filled: true},
		{Name: FeatureRim, Kind: KindCircle, Center: l.Rim, Radius: l.RimRadius},
		{Name: FeatureLane, Kind: KindRect, Rect: l.Lane},
		line(FeatureFreeThrowLine, vec.Pt(l.Lane.X, l.FreeThrowY), vec.Pt(l.Lane.X+l.Lane.W, l.FreeThrowY)),
		{Name: FeatureFreeThrowUpper, Kind: KindArc, Center: ft, Radius: l.FreeThrowRadius, Start: math.Pi, End: 2 * math.Pi},
		{Name: FeatureFreeThrowLower, Kind: KindArc, Center: ft, Radius: l.FreeThrowRadius, Start: 0, End: math.Pi, Dashed: true},
		// High-school variant: a plain semicircle, no corner segments
		{Name: FeatureThreePointArc, Kind: KindArc, Center: l.Rim, Radius: l.ThreePointRadius, Start: 0, End: math.Pi},
	}
}

// Find returns the feature with the given name.
func Find(features []Feature, name string) (Feature, bool) {
	for _, f := range features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// ArcPoints samples an arc feature into a polyline of n+1 points.
func ArcPoints(f Feature, n int) []vec.Point {
	if n < 1 {
		n = 1
	}
	pts := make([]vec.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := f.Start + (f.End-f.Start)*float64(i)/float64(n)
		pts = append(pts, vec.Pt(f.Center.X+f.Radius*math.Cos(a), f.Center.Y+f.Radius*math.Sin(a)))
	}
	return pts
}
