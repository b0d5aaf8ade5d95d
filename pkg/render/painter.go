package render

import (
	"image/color"
	"strconv"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/editor"
	"github.com/ha1tch/playcourt/pkg/snap"
	"github.com/ha1tch/playcourt/pkg/vec"
)

// Theme holds the colours and stroke widths of a painted diagram.
type Theme struct {
	Floor     color.Color
	OutOfPlay color.Color
	Lines     color.Color
	Backboard color.Color
	Rim       color.Color
	Offense   color.Color
	Defense   color.Color
	Cone      color.Color
	Stripe    color.Color
	Path      color.Color
	Handle    color.Color
	Selected  color.Color
	Snap      color.Color

	LineWidth  float64
	PathWidth  float64
	TokenWidth float64
	ArrowSize  float64
	Dash       []float64
}

// DefaultTheme returns a hardwood floor with white markings.
func DefaultTheme() Theme {
	return Theme{
		Floor:     color.RGBA{222, 184, 135, 255},
		OutOfPlay: color.RGBA{188, 150, 104, 255},
		Lines:     color.RGBA{255, 255, 255, 255},
		Backboard: color.RGBA{240, 240, 240, 255},
		Rim:       color.RGBA{230, 81, 0, 255}, // #e65100
		Offense:   color.RGBA{21, 101, 192, 255},
		Defense:   color.RGBA{198, 40, 40, 255},
		Cone:      color.RGBA{255, 143, 0, 255},
		Stripe:    color.RGBA{255, 255, 255, 255},
		Path:      color.RGBA{51, 51, 51, 255}, // #333
		Handle:    color.RGBA{102, 102, 102, 255},
		Selected:  color.RGBA{46, 125, 50, 255},
		Snap:      color.RGBA{46, 125, 50, 255}, // #2e7d32

		LineWidth:  2,
		PathWidth:  2,
		TokenWidth: 3,
		ArrowSize:  12,
		Dash:       []float64{6, 6},
	}
}

// PathView is everything needed to draw one path.
type PathView struct {
	ID       string
	Curve    curve.Curve
	Bound    bool // start is attached to a player
	Selected bool
}

// Scene is a snapshot of the diagram ready for painting.
type Scene struct {
	Size     vec.Rect
	Features []court.Feature
	Court    vec.Rect
	Tokens   []*diagram.Token
	Radius   func(diagram.Role) float64
	Paths    []PathView
	Handles  editor.HandleRadii
	Selected string
	Snap     *snap.Resolution // live snap feedback during a start-handle drag
}

// SceneFrom snapshots an engine. selected is a token or path id, or "".
func SceneFrom(e *editor.Engine, selected string, res *snap.Resolution) Scene {
	d := e.Diagram()
	cfg := e.Config()

	sc := Scene{
		Size:     e.Viewport().Bounds(),
		Features: e.Features(),
		Court:    cfg.Court.CourtRect(),
		Tokens:   d.Tokens(),
		Radius:   e.Radius,
		Handles:  e.Config().Handles,
		Selected: selected,
		Snap:     res,
	}
	for _, p := range d.Paths() {
		c, _ := e.Curve(p.ID)
		_, bound := p.Start.(diagram.BoundStart)
		sc.Paths = append(sc.Paths, PathView{ID: p.ID, Curve: c, Bound: bound, Selected: p.ID == selected})
	}
	return sc
}

// Painter maps a Scene onto a Surface.
type Painter struct {
	theme Theme
}

func NewPainter(t Theme) *Painter {
	return &Painter{theme: t}
}

// Paint draws the whole scene: court, paths, tokens, then snap feedback.
func (p *Painter) Paint(s Surface, sc Scene) {
	t := p.theme
	s.Clear(t.OutOfPlay)
	s.Rect(sc.Court, Filled(t.Floor))

	p.paintCourt(s, sc.Features)
	for _, pv := range sc.Paths {
		p.paintPath(s, pv, sc.Handles)
	}
	for _, tok := range sc.Tokens {
		p.paintToken(s, tok, sc.Radius(tok.Role), tok.ID == sc.Selected)
	}
	if sc.Snap != nil && sc.Snap.Bound {
		r := sc.Radius(diagram.RoleOffense) + 6
		s.Circle(sc.Snap.Point, r, Style{Stroke: t.Snap, Width: t.LineWidth, Dash: t.Dash})
	}
}

func (p *Painter) paintCourt(s Surface, features []court.Feature) {
	t := p.theme
	for _, f := range features {
		st := Stroked(t.Lines, t.LineWidth)
		if f.Dashed {
			st.Dash = t.Dash
		}
		switch f.Kind {
		case court.KindLine:
			s.Line(f.A, f.B, st)
		case court.KindRect:
			if f.Filled {
				st = Filled(t.Backboard)
			}
			s.Rect(f.Rect, st)
		case court.KindCircle:
			if f.Name == court.FeatureRim {
				st.Stroke = t.Rim
			}
			s.Circle(f.Center, f.Radius, st)
		case court.KindArc:
			s.Arc(f.Center, f.Radius, f.Start, f.End, st)
		}
	}
}

func (p *Painter) paintToken(s Surface, tok *diagram.Token, r float64, selected bool) {
	t := p.theme
	label := strconv.Itoa(tok.Number)

	switch tok.Role {
	case diagram.RoleOffense:
		st := Style{Stroke: t.Offense, Fill: t.Floor, Width: t.TokenWidth}
		if selected {
			st.Stroke = t.Selected
		}
		s.Circle(tok.Pos, r, st)
		s.Text(label, tok.Pos, t.Offense)

	case diagram.RoleDefense:
		c := t.Defense
		if selected {
			c = t.Selected
		}
		d := r * 0.7
		st := Stroked(c, t.TokenWidth)
		s.Line(tok.Pos.Add(vec.Pt(-d, -d)), tok.Pos.Add(vec.Pt(d, d)), st)
		s.Line(tok.Pos.Add(vec.Pt(-d, d)), tok.Pos.Add(vec.Pt(d, -d)), st)
		s.Text(label, tok.Pos.Add(vec.Pt(r*0.9, -r*0.9)), c)

	case diagram.RoleCone:
		tri := []vec.Point{
			tok.Pos.Add(vec.Pt(0, -r)),
			tok.Pos.Add(vec.Pt(r*0.87, r*0.5)),
			tok.Pos.Add(vec.Pt(-r*0.87, r*0.5)),
		}
		st := Filled(t.Cone)
		if selected {
			st.Stroke, st.Width = t.Selected, t.LineWidth
		}
		s.Polygon(tri, st)
		s.Line(tok.Pos.Add(vec.Pt(-r*0.45, 0)), tok.Pos.Add(vec.Pt(r*0.45, 0)), Stroked(t.Stripe, t.LineWidth))
	}
}

func (p *Painter) paintPath(s Surface, pv PathView, h editor.HandleRadii) {
	t := p.theme
	c := pv.Curve
	stroke := t.Path
	if pv.Selected {
		stroke = t.Selected
	}

	s.Polyline(c.Points, Stroked(stroke, t.PathWidth))
	if head := ArrowHead(c.Arrow, t.ArrowSize); head != nil {
		s.Polygon(head, Filled(stroke))
	}

	hs := Style{Stroke: t.Handle, Fill: t.Floor, Width: 1.5}
	if pv.Bound {
		s.Circle(c.Start, h.Start, Style{Stroke: t.Snap, Fill: t.Snap, Width: 1.5})
	} else {
		s.Circle(c.Start, h.Start, hs)
	}
	s.Circle(c.Control, h.Mid, Style{Stroke: t.Handle, Width: 1.5, Dash: []float64{2, 2}})
	s.Circle(c.End, h.End, hs)
}

// ArrowHead returns the triangle for an arrow whose tip is seg.To and
// whose axis follows seg. It returns nil for a zero-length segment.
func ArrowHead(seg curve.Segment, size float64) []vec.Point {
	v := seg.To.Sub(seg.From)
	if v.Len2() == 0 {
		return nil
	}
	dir := v.Unit()
	n := dir.Normal()
	base := seg.To.Sub(dir.Mul(size))
	return []vec.Point{
		seg.To,
		base.Add(n.Mul(size / 2)),
		base.Sub(n.Mul(size / 2)),
	}
}
