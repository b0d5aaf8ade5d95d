// Package editor is the interaction engine of the play editor. It turns
// pointer events in screen coordinates into diagram updates: token drags
// bounded by the canvas, path handle drags with snap-to-player on the
// start handle, and midpoint bends.
package editor

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/placement"
	"github.com/ha1tch/playcourt/pkg/snap"
	"github.com/ha1tch/playcourt/pkg/vec"
	"github.com/ha1tch/playcourt/pkg/viewport"
)

// ErrInvalidNumber is returned when a player's jersey number is outside 1-5.
var ErrInvalidNumber = errors.New("jersey number must be between 1 and 5")

// HandleRadii are the hit and clamp radii of the three path handles.
type HandleRadii struct {
	Start float64 `mapstructure:"start"`
	Mid   float64 `mapstructure:"mid"`
	End   float64 `mapstructure:"end"`
}

// Config collects everything the engine is parameterised by.
type Config struct {
	Court         court.Spec
	Fit           viewport.FitPolicy
	Curve         curve.Params
	Radii         placement.Radii
	Handles       HandleRadii
	SnapRadius    float64
	BodyTolerance float64 // max distance from a path's stroke that still hits it
}

// DefaultConfig returns the standard editor configuration.
func DefaultConfig() Config {
	return Config{
		Court:         court.DefaultSpec(),
		Fit:           viewport.DefaultFitPolicy(),
		Curve:         curve.DefaultParams(),
		Radii:         placement.DefaultRadii(),
		Handles:       HandleRadii{Start: 8, Mid: 7, End: 9},
		SnapRadius:    snap.DefaultRadius,
		BodyTolerance: 6,
	}
}

// Engine owns the diagram and routes pointer events to it.
type Engine struct {
	cfg     Config
	log     zerolog.Logger
	diagram *diagram.Diagram
	vp      *viewport.Viewport
	place   *placement.Policy
	curves  *curve.Builder
	snapper *snap.Resolver

	drag *dragState
}

type dragState struct {
	target Target
	grab   vec.Point // token position minus pointer at drag start
	last   vec.Point // previous world pointer, for body drags
	bound  string    // player the start handle is snapped to, if any
}

// New builds an engine for cfg. Extra options are passed to the diagram.
func New(cfg Config, log zerolog.Logger, opts ...diagram.Option) (*Engine, error) {
	if err := cfg.Court.Validate(); err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	vp := viewport.New(cfg.Court, cfg.Fit)
	opts = append([]diagram.Option{diagram.WithMaxMidOffset(cfg.Curve.MaxOffset)}, opts...)

	return &Engine{
		cfg:     cfg,
		log:     log.With().Str("component", "editor").Logger(),
		diagram: diagram.New(opts...),
		vp:      vp,
		place:   placement.New(cfg.Court, vp, cfg.Radii),
		curves:  curve.NewBuilder(cfg.Curve),
		snapper: snap.NewResolver(cfg.SnapRadius),
	}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Diagram returns the diagram the engine edits.
func (e *Engine) Diagram() *diagram.Diagram {
	return e.diagram
}

func (e *Engine) Viewport() *viewport.Viewport {
	return e.vp
}

func (e *Engine) Placement() *placement.Policy {
	return e.place
}

// Layout returns the derived court coordinates.
func (e *Engine) Layout() court.Layout {
	return court.NewLayout(e.cfg.Court)
}

// Features returns the court primitives to draw.
func (e *Engine) Features() []court.Feature {
	return court.Features(e.cfg.Court)
}

// Radius returns the visual radius of a token role.
func (e *Engine) Radius(role diagram.Role) float64 {
	return e.place.Radius(role)
}

// Dragging reports the target of the drag in progress.
func (e *Engine) Dragging() (Target, bool) {
	return e.dragTarget()
}

func (e *Engine) dragTarget() (Target, bool) {
	if e.drag == nil {
		return Target{}, false
	}
	return e.drag.target, true
}

func validateNumber(role diagram.Role, number int) (int, error) {
	if !role.IsPlayer() {
		return 0, nil
	}
	if number < 1 || number > 5 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidNumber, number)
	}
	return number, nil
}

// AddToken places a new token on the next preset spot for its kind.
func (e *Engine) AddToken(role diagram.Role, number int) (*diagram.Token, error) {
	n, err := validateNumber(role, number)
	if err != nil {
		return nil, err
	}
	pos := e.place.PlaceNew(role, e.diagram.Occupancy(role))
	t := e.diagram.AddToken(role, n, pos)
	e.log.Debug().Str("token", t.ID).Stringer("role", role).Int("number", n).
		Float64("x", pos.X).Float64("y", pos.Y).Msg("token added")
	return t, nil
}

// DropToken places a new token where it was dropped on screen.
func (e *Engine) DropToken(role diagram.Role, number int, sx, sy float64) (*diagram.Token, error) {
	n, err := validateNumber(role, number)
	if err != nil {
		return nil, err
	}
	pos := e.place.PlaceDropped(role, e.vp.ScreenToWorld(sx, sy))
	t := e.diagram.AddToken(role, n, pos)
	e.log.Debug().Str("token", t.ID).Stringer("role", role).Msg("token dropped")
	return t, nil
}

// RemoveToken deletes a token. Paths bound to it keep their start as a
// free point.
func (e *Engine) RemoveToken(id string) bool {
	if e.draggingID(id) {
		e.drag = nil
	}
	ok := e.diagram.RemoveToken(id)
	if ok {
		e.log.Debug().Str("token", id).Msg("token removed")
	}
	return ok
}

// AddPath creates a path. A bound start must name an offensive player;
// anything else starts free at that token's position (or at end).
func (e *Engine) AddPath(start diagram.StartRef, end vec.Point) *diagram.Path {
	end = e.vp.Clamp(end, e.cfg.Handles.End)
	switch s := start.(type) {
	case diagram.BoundStart:
		t, ok := e.diagram.Token(s.PlayerID)
		if !ok || t.Role != diagram.RoleOffense {
			pt := end
			if ok {
				pt = t.Pos
			}
			e.log.Warn().Str("player", s.PlayerID).Msg("path start is not an offensive player, starting free")
			start = diagram.FreeStart{Point: pt}
		}
	case diagram.FreeStart:
		start = diagram.FreeStart{Point: e.vp.Clamp(s.Point, e.cfg.Handles.Start)}
	case nil:
		start = diagram.FreeStart{Point: end}
	}
	p := e.diagram.AddPath(start, end)
	e.log.Debug().Str("path", p.ID).Msg("path added")
	return p
}

// RemovePath deletes a path.
func (e *Engine) RemovePath(id string) bool {
	if e.draggingID(id) {
		e.drag = nil
	}
	return e.diagram.RemovePath(id)
}

func (e *Engine) draggingID(id string) bool {
	return e.drag != nil && e.drag.target.ID == id
}

// StartPoint returns a path's effective start, logging a warning the
// first time a bound start is found dangling.
func (e *Engine) StartPoint(p *diagram.Path) vec.Point {
	pt, ok := e.diagram.ResolveStart(p)
	if !ok {
		e.log.Warn().Str("path", p.ID).Float64("x", pt.X).Float64("y", pt.Y).
			Msg("path start lost its player, keeping last known point")
	}
	return pt
}

// Curve rebuilds the curve of a path from its current state.
func (e *Engine) Curve(pathID string) (curve.Curve, bool) {
	p, ok := e.diagram.Path(pathID)
	if !ok {
		return curve.Curve{}, false
	}
	return e.curveFor(p), true
}

func (e *Engine) curveFor(p *diagram.Path) curve.Curve {
	return e.curves.Build(e.StartPoint(p), p.End, p.Mid())
}

// Resize fits the canvas into a display region and applies the scale.
func (e *Engine) Resize(w, h float64) viewport.FitResult {
	res := e.vp.Fit(w, h)
	e.log.Debug().Float64("scale", res.Scale).Bool("secondary", res.SecondaryVisible).Msg("viewport fitted")
	return res
}

// SetOrigin records the canvas's on-screen position.
func (e *Engine) SetOrigin(x, y float64) {
	e.vp.SetOrigin(x, y)
}
