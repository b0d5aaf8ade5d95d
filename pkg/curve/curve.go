// Path curve construction for dribble annotations.
// A path is a quadratic Bézier from start to end whose single control
// point is positioned by a midpoint control, with a fixed-wavelength
// lateral squiggle laid over the sampled centreline.

package curve

import (
	"math"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// Mid is the midpoint control: T is the fraction along the straight
// start→end line, Offset the signed displacement along its left normal.
type Mid struct {
	T      float64 `json:"t"`
	Offset float64 `json:"offset"`
}

// DefaultMid places the control on the straight line halfway along.
func DefaultMid() Mid {
	return Mid{T: 0.5}
}

// ClampMid limits T to [0,1] and Offset to [-bound, bound].
func ClampMid(m Mid, bound float64) Mid {
	return Mid{
		T:      vec.Clamp(m.T, 0, 1),
		Offset: vec.Clamp(m.Offset, -bound, bound),
	}
}

// Params configures curve sampling and the squiggle overlay.
type Params struct {
	Wavelength float64 `mapstructure:"wavelength"` // world units per oscillation cycle
	Amplitude  float64 `mapstructure:"amplitude"`  // 0 disables the overlay
	StepLength float64 `mapstructure:"step_length"`
	MinSteps   int     `mapstructure:"min_steps"`
	MaxSteps   int     `mapstructure:"max_steps"`
	MaxOffset  float64 `mapstructure:"max_offset"`
}

// DefaultParams returns the standard dribble texture.
func DefaultParams() Params {
	return Params{
		Wavelength: 24,
		Amplitude:  4,
		StepLength: 4,
		MinSteps:   16,
		MaxSteps:   240,
		MaxOffset:  80,
	}
}

// Curve is the result of a Build call.
type Curve struct {
	Start, End vec.Point
	Control    vec.Point
	Centerline []vec.Point // sampled Bézier without the squiggle
	Points     []vec.Point // Centerline with the squiggle applied
	Arrow      Segment     // last sampled segment, orients the arrowhead
}

// Segment is a directed line segment.
type Segment struct {
	From, To vec.Point
}

// Direction returns the unit vector from From to To.
func (s Segment) Direction() vec.Point {
	return s.To.Sub(s.From).Unit()
}

// Builder builds curves. It holds no state between calls and is safe for
// concurrent use.
type Builder struct {
	params Params
}

// NewBuilder returns a Builder using p.
func NewBuilder(p Params) *Builder {
	return &Builder{params: p}
}

func (b *Builder) Params() Params {
	return b.params
}

// HandlePoint returns the control point for mid: the point at fraction
// mid.T along start→end, displaced by mid.Offset along the left normal.
func HandlePoint(start, end vec.Point, mid Mid) vec.Point {
	v := end.Sub(start)
	return start.Add(v.Mul(mid.T)).Add(v.Normal().Mul(mid.Offset))
}

// ProjectMid converts a dragged handle position into a midpoint control:
// T is the clamped projection onto start→end, Offset the clamped signed
// distance from the line along the left normal.
func ProjectMid(p, start, end vec.Point, bound float64) Mid {
	v := end.Sub(start)
	len2 := v.Len2()
	if len2 == 0 {
		len2 = 1
	}
	t := vec.Clamp(p.Sub(start).Dot(v)/len2, 0, 1)
	along := start.Add(v.Mul(t))
	offset := p.Sub(along).Dot(v.Normal())
	return ClampMid(Mid{T: t, Offset: offset}, bound)
}

// Build samples the path from start to end shaped by mid.
func (b *Builder) Build(start, end vec.Point, mid Mid) Curve {
	p := b.params
	mid = ClampMid(mid, p.MaxOffset)

	chord := end.Sub(start)
	chordNormal := chord.Normal()
	ctrl := HandlePoint(start, end, mid)

	n := b.steps(start, ctrl, end)
	center := make([]vec.Point, n+1)
	normals := make([]vec.Point, n+1)
	arc := make([]float64, n+1) // arc length travelled to each sample

	for i := 0; i <= n; i++ {
		u := float64(i) / float64(n)
		center[i] = quadPoint(start, ctrl, end, u)
		if i > 0 {
			arc[i] = arc[i-1] + center[i].Sub(center[i-1]).Len()
		}
		normals[i] = chordNormal
		if d := quadDerivative(start, ctrl, end, u); d.Len2() > 1e-12 {
			normals[i] = d.Normal()
		}
	}

	points := make([]vec.Point, n+1)
	total := arc[n]
	for i, c := range center {
		points[i] = c.Add(normals[i].Mul(b.displacement(arc[i], total)))
	}

	return Curve{
		Start:      start,
		End:        end,
		Control:    ctrl,
		Centerline: center,
		Points:     points,
		Arrow:      Segment{From: points[n-1], To: points[n]},
	}
}

// displacement is the squiggle offset at arc length s of a curve of
// length total. The phase depends only on s, so every path shows the same
// number of cycles per unit length. Within the last half wavelength the
// amplitude ramps to zero so the curve lands on its end point.
func (b *Builder) displacement(s, total float64) float64 {
	p := b.params
	if p.Amplitude == 0 || p.Wavelength <= 0 {
		return 0
	}
	env := math.Min(1, (total-s)/(p.Wavelength/2))
	if env <= 0 {
		return 0
	}
	return p.Amplitude * env * math.Sin(2*math.Pi*s/p.Wavelength)
}

// steps picks a sample count proportional to the approximate curve length.
func (b *Builder) steps(p0, p1, p2 vec.Point) int {
	p := b.params
	chord := p2.Sub(p0).Len()
	poly := p1.Sub(p0).Len() + p2.Sub(p1).Len()
	approx := (chord + poly) / 2

	n := p.MinSteps
	if p.StepLength > 0 {
		n = int(math.Round(approx / p.StepLength))
	}
	if n < p.MinSteps {
		n = p.MinSteps
	}
	if p.MaxSteps > 0 && n > p.MaxSteps {
		n = p.MaxSteps
	}
	if n < 1 {
		n = 1
	}
	return n
}

// quadPoint evaluates the quadratic Bézier at u.
func quadPoint(p0, p1, p2 vec.Point, u float64) vec.Point {
	mu := 1 - u
	return vec.Point{
		X: mu*mu*p0.X + 2*mu*u*p1.X + u*u*p2.X,
		Y: mu*mu*p0.Y + 2*mu*u*p1.Y + u*u*p2.Y,
	}
}

// quadDerivative returns dB/du of the quadratic Bézier at u.
func quadDerivative(p0, p1, p2 vec.Point, u float64) vec.Point {
	mu := 1 - u
	return vec.Point{
		X: 2*mu*(p1.X-p0.X) + 2*u*(p2.X-p1.X),
		Y: 2*mu*(p1.Y-p0.Y) + 2*u*(p2.Y-p1.Y),
	}
}

// Length sums the segment lengths of a polyline.
func Length(pts []vec.Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Len()
	}
	return total
}
