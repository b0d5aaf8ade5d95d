package editor

import (
	"github.com/peterstace/simplefeatures/geom"

	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/snap"
	"github.com/ha1tch/playcourt/pkg/vec"
)

// InteractionState tells the front end which cursor to show.
type InteractionState int

const (
	StateIdle InteractionState = iota
	StateHoverable
	StateDragging
)

func (s InteractionState) String() string {
	switch s {
	case StateHoverable:
		return "hoverable"
	case StateDragging:
		return "dragging"
	}
	return "idle"
}

// TargetKind is what a pointer is over.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetToken
	TargetHandle
	TargetPathBody
)

// Handle identifies one of a path's three handles.
type Handle int

const (
	HandleStart Handle = iota
	HandleMid
	HandleEnd
)

func (h Handle) String() string {
	switch h {
	case HandleStart:
		return "start"
	case HandleMid:
		return "mid"
	case HandleEnd:
		return "end"
	}
	return "unknown"
}

// Target is a hit-test result. ID is a token id for TargetToken and a
// path id otherwise.
type Target struct {
	Kind   TargetKind
	ID     string
	Handle Handle
}

// Update describes the effect of one pointer event.
type Update struct {
	State    InteractionState
	Target   Target
	Position vec.Point        // new world position of the token or handle
	Curve    *curve.Curve     // rebuilt curve when a path changed
	Snap     *snap.Resolution // set while dragging a start handle
	Changed  bool             // the diagram was modified
}

// HitTest finds what lies under a screen position. Handles take priority
// so a start handle sitting on its player can still be grabbed, then
// tokens from the top of the paint order, then path strokes.
func (e *Engine) HitTest(sx, sy float64) (Target, bool) {
	return e.hitWorld(e.vp.ScreenToWorld(sx, sy))
}

func (e *Engine) hitWorld(w vec.Point) (Target, bool) {
	paths := e.diagram.Paths()

	for i := len(paths) - 1; i >= 0; i-- {
		p := paths[i]
		start := e.StartPoint(p)
		handles := []struct {
			h   Handle
			pos vec.Point
			r   float64
		}{
			{HandleEnd, p.End, e.cfg.Handles.End},
			{HandleMid, curve.HandlePoint(start, p.End, p.Mid()), e.cfg.Handles.Mid},
			{HandleStart, start, e.cfg.Handles.Start},
		}
		for _, h := range handles {
			if w.Dist2(h.pos) <= h.r*h.r {
				return Target{Kind: TargetHandle, ID: p.ID, Handle: h.h}, true
			}
		}
	}

	tokens := e.diagram.Tokens()
	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		r := e.place.Radius(t.Role)
		if w.Dist2(t.Pos) <= r*r {
			return Target{Kind: TargetToken, ID: t.ID}, true
		}
	}

	if len(paths) > 0 {
		pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: w.X, Y: w.Y}, Type: geom.DimXY})
		if err != nil {
			return Target{}, false
		}
		for i := len(paths) - 1; i >= 0; i-- {
			c := e.curveFor(paths[i])
			ls, err := polylineToLineString(c.Points)
			if err != nil {
				e.log.Debug().Err(err).Str("path", paths[i].ID).Msg("body skipped")
				continue
			}
			d, ok := geom.Distance(ls.AsGeometry(), pt.AsGeometry())
			if ok && d <= e.cfg.BodyTolerance {
				return Target{Kind: TargetPathBody, ID: paths[i].ID}, true
			}
		}
	}

	return Target{}, false
}

func polylineToLineString(pts []vec.Point) (geom.LineString, error) {
	coords := make([]float64, 0, len(pts)*2)
	for _, p := range pts {
		coords = append(coords, p.X, p.Y)
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

// OnDragStart begins dragging target from a screen position.
func (e *Engine) OnDragStart(target Target, sx, sy float64) Update {
	w := e.vp.ScreenToWorld(sx, sy)
	d := &dragState{target: target, last: w}

	switch target.Kind {
	case TargetToken:
		t, ok := e.diagram.Token(target.ID)
		if !ok {
			return e.idle()
		}
		d.grab = t.Pos.Sub(w)
	case TargetHandle, TargetPathBody:
		p, ok := e.diagram.Path(target.ID)
		if !ok {
			return e.idle()
		}
		if b, isBound := p.Start.(diagram.BoundStart); isBound {
			d.bound = b.PlayerID
		}
	default:
		return e.idle()
	}

	e.drag = d
	e.log.Debug().Str("id", target.ID).Int("kind", int(target.Kind)).Stringer("handle", target.Handle).Msg("drag start")
	return Update{State: StateDragging, Target: target}
}

// OnPointerMove handles a pointer move. Outside a drag it reports hover.
func (e *Engine) OnPointerMove(sx, sy float64) Update {
	if e.drag == nil {
		if t, ok := e.HitTest(sx, sy); ok {
			return Update{State: StateHoverable, Target: t}
		}
		return e.idle()
	}
	return e.dragTo(e.vp.ScreenToWorld(sx, sy))
}

// OnDragEnd applies the final pointer position and ends the drag.
func (e *Engine) OnDragEnd(sx, sy float64) Update {
	if e.drag == nil {
		return e.idle()
	}
	u := e.dragTo(e.vp.ScreenToWorld(sx, sy))
	e.log.Debug().Str("id", e.drag.target.ID).Msg("drag end")
	e.drag = nil

	u.State = StateIdle
	if _, ok := e.HitTest(sx, sy); ok {
		u.State = StateHoverable
	}
	return u
}

func (e *Engine) idle() Update {
	e.drag = nil
	return Update{State: StateIdle}
}

func (e *Engine) dragTo(w vec.Point) Update {
	d := e.drag
	u := Update{State: StateDragging, Target: d.target}

	if d.target.Kind == TargetToken {
		t, ok := e.diagram.Token(d.target.ID)
		if !ok {
			return e.idle()
		}
		u.Position = e.place.Move(t, w.Add(d.grab))
		u.Changed = true
		return u
	}

	p, ok := e.diagram.Path(d.target.ID)
	if !ok {
		return e.idle()
	}

	if d.target.Kind == TargetPathBody {
		delta := w.Sub(d.last)
		d.last = w
		p.End = e.vp.Clamp(p.End.Add(delta), e.cfg.Handles.End)
		if s, free := p.Start.(diagram.FreeStart); free {
			e.diagram.SetStart(p, diagram.FreeStart{Point: e.vp.Clamp(s.Point.Add(delta), e.cfg.Handles.Start)})
		}
		u.Position = p.End
	} else {
		switch d.target.Handle {
		case HandleStart:
			res := e.snapStart(p, w)
			u.Snap = &res
			u.Position = res.Point
		case HandleEnd:
			p.End = e.vp.Clamp(w, e.cfg.Handles.End)
			u.Position = p.End
		case HandleMid:
			start := e.StartPoint(p)
			mid, _ := e.diagram.SetMid(p.ID, curve.ProjectMid(w, start, p.End, e.cfg.Curve.MaxOffset))
			u.Position = curve.HandlePoint(start, p.End, mid)
		}
	}

	c := e.curveFor(p)
	u.Curve = &c
	u.Changed = true
	return u
}

// snapStart resolves the start handle against the offensive players and
// rewrites the path's start reference.
func (e *Engine) snapStart(p *diagram.Path, w vec.Point) snap.Resolution {
	offense := e.diagram.Offense()
	candidates := make([]snap.Candidate, len(offense))
	for i, t := range offense {
		candidates[i] = snap.Candidate{ID: t.ID, Position: t.Pos}
	}
	res := e.snapper.Resolve(w, candidates)

	if res.Bound {
		e.diagram.SetStart(p, diagram.BoundStart{PlayerID: res.ID})
	} else {
		res.Point = e.vp.Clamp(res.Point, e.cfg.Handles.Start)
		e.diagram.SetStart(p, diagram.FreeStart{Point: res.Point})
	}

	if res.ID != e.drag.bound {
		if res.Bound {
			e.log.Debug().Str("path", p.ID).Str("player", res.ID).Msg("start snapped")
		} else {
			e.log.Debug().Str("path", p.ID).Str("player", e.drag.bound).Msg("start released")
		}
		e.drag.bound = res.ID
	}
	return res
}
