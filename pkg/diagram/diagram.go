// Package diagram holds the editable play diagram: player and cone tokens
// plus the path annotations drawn between them.
package diagram

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/vec"
)

// Role is the kind of a token.
type Role int

const (
	RoleOffense Role = iota
	RoleDefense
	RoleCone
)

func (r Role) String() string {
	switch r {
	case RoleOffense:
		return "offensive-player"
	case RoleDefense:
		return "defensive-player"
	case RoleCone:
		return "cone"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// IsPlayer reports whether the role is one of the two player roles.
func (r Role) IsPlayer() bool {
	return r == RoleOffense || r == RoleDefense
}

// ParseRole accepts the canonical role names and a few short aliases.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "offensive-player", "offense", "off", "o":
		return RoleOffense, nil
	case "defensive-player", "defense", "def", "d", "x":
		return RoleDefense, nil
	case "cone", "c":
		return RoleCone, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

// Token is a player or cone on the court. Number is 1-5 for players and
// 0 for cones.
type Token struct {
	ID     string
	Role   Role
	Number int
	Pos    vec.Point
}

// StartRef is where a path begins: either bound to a player or a free
// point. The set of implementations is closed.
type StartRef interface {
	isStartRef()
}

// BoundStart follows the current position of an offensive player.
type BoundStart struct {
	PlayerID string
}

// FreeStart is a fixed world point.
type FreeStart struct {
	Point vec.Point
}

func (BoundStart) isStartRef() {}
func (FreeStart) isStartRef()  {}

// Path is a dribble annotation from Start to End, shaped by Mid.
type Path struct {
	ID    string
	Start StartRef
	End   vec.Point

	mid       curve.Mid  // written only through SetMid
	lastStart *vec.Point // last resolved start position
	dangling  bool       // set once a bound start lost its player
}

// Mid returns the path's midpoint control.
func (p *Path) Mid() curve.Mid {
	return p.mid
}

// Dangling reports whether the path's bound start has lost its player
// since the last ResolveStart.
func (p *Path) Dangling() bool {
	return p.dangling
}

// Option configures a Diagram.
type Option func(*Diagram)

// WithIDFunc replaces the id generator. Tests use it for stable ids.
func WithIDFunc(f func() string) Option {
	return func(d *Diagram) { d.newID = f }
}

// WithMaxMidOffset sets the bound applied to every midpoint write.
func WithMaxMidOffset(bound float64) Option {
	return func(d *Diagram) { d.maxOffset = bound }
}

// Diagram owns the tokens and paths of one play. It is not safe for
// concurrent use; callers mutate it from a single event loop.
type Diagram struct {
	tokens    []*Token
	paths     []*Path
	newID     func() string
	maxOffset float64
}

// New returns an empty diagram.
func New(opts ...Option) *Diagram {
	d := &Diagram{
		newID:     uuid.NewString,
		maxOffset: curve.DefaultParams().MaxOffset,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddToken appends a token and returns it.
func (d *Diagram) AddToken(role Role, number int, pos vec.Point) *Token {
	t := &Token{ID: d.newID(), Role: role, Number: number, Pos: pos}
	d.tokens = append(d.tokens, t)
	return t
}

// Token returns the token with the given id.
func (d *Diagram) Token(id string) (*Token, bool) {
	for _, t := range d.tokens {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Tokens returns the tokens in insertion (paint) order.
func (d *Diagram) Tokens() []*Token {
	out := make([]*Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Offense returns the offensive players in insertion order.
func (d *Diagram) Offense() []*Token {
	var out []*Token
	for _, t := range d.tokens {
		if t.Role == RoleOffense {
			out = append(out, t)
		}
	}
	return out
}

// Occupancy counts the tokens sharing role's placement kind: players of
// either team for player roles, cones for cones.
func (d *Diagram) Occupancy(role Role) int {
	n := 0
	for _, t := range d.tokens {
		if t.Role.IsPlayer() == role.IsPlayer() {
			n++
		}
	}
	return n
}

// RemoveToken deletes a token. Paths bound to it are rebound to a free
// start at the token's last position.
func (d *Diagram) RemoveToken(id string) bool {
	for i, t := range d.tokens {
		if t.ID != id {
			continue
		}
		for _, p := range d.paths {
			if b, ok := p.Start.(BoundStart); ok && b.PlayerID == id {
				p.Start = FreeStart{Point: t.Pos}
				pos := t.Pos
				p.lastStart = &pos
			}
		}
		d.tokens = append(d.tokens[:i], d.tokens[i+1:]...)
		return true
	}
	return false
}

// AddPath appends a path with the default midpoint control.
func (d *Diagram) AddPath(start StartRef, end vec.Point) *Path {
	p := &Path{ID: d.newID(), Start: start, End: end, mid: curve.DefaultMid()}
	d.paths = append(d.paths, p)
	return p
}

// Path returns the path with the given id.
func (d *Diagram) Path(id string) (*Path, bool) {
	for _, p := range d.paths {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Paths returns the paths in insertion order.
func (d *Diagram) Paths() []*Path {
	out := make([]*Path, len(d.paths))
	copy(out, d.paths)
	return out
}

// RemovePath deletes a path.
func (d *Diagram) RemovePath(id string) bool {
	for i, p := range d.paths {
		if p.ID == id {
			d.paths = append(d.paths[:i], d.paths[i+1:]...)
			return true
		}
	}
	return false
}

// SetMid stores a clamped midpoint control on the path.
func (d *Diagram) SetMid(id string, mid curve.Mid) (curve.Mid, bool) {
	p, ok := d.Path(id)
	if !ok {
		return curve.Mid{}, false
	}
	p.mid = curve.ClampMid(mid, d.maxOffset)
	return p.mid, true
}

// SetStart replaces the path's start reference.
func (d *Diagram) SetStart(p *Path, start StartRef) {
	p.Start = start
	p.dangling = false
	d.ResolveStart(p)
}

// ResolveStart returns the path's current start point. A bound start is
// looked up live. When the player no longer exists the start degrades to
// a free point at the last resolved position (or the path end if it was
// never resolved) and ok is false.
func (d *Diagram) ResolveStart(p *Path) (pt vec.Point, ok bool) {
	switch s := p.Start.(type) {
	case FreeStart:
		pt = s.Point
	case BoundStart:
		if t, found := d.Token(s.PlayerID); found {
			pt = t.Pos
			break
		}
		pt = p.End
		if p.lastStart != nil {
			pt = *p.lastStart
		}
		p.Start = FreeStart{Point: pt}
		p.dangling = true
		p.lastStart = &pt
		return pt, false
	default:
		pt = p.End
		p.Start = FreeStart{Point: pt}
	}
	p.lastStart = &pt
	return pt, true
}
