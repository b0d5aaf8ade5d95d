package editor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/vec"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig(), zerolog.Nop(), diagram.WithIDFunc(seqIDs()))
	require.NoError(t, err)
	return e
}

func TestNewRejectsInvalidCourt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Court.Scale = 0
	_, err := New(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.True(t, errors.Is(err, court.ErrInvalidSpec))
}

func TestAddTokenValidatesNumber(t *testing.T) {
	e := newEngine(t)

	for _, n := range []int{0, 6, -1} {
		_, err := e.AddToken(diagram.RoleOffense, n)
		assert.ErrorIs(t, err, ErrInvalidNumber, "number %d", n)
	}

	cone, err := e.AddToken(diagram.RoleCone, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, cone.Number)
}

func TestAddTokenAndDragOutsideCanvas(t *testing.T) {
	e := newEngine(t)

	tok, err := e.AddToken(diagram.RoleOffense, 3)
	require.NoError(t, err)
	assert.Equal(t, e.Placement().Spots()[0], tok.Pos)

	w, _ := e.Viewport().Size()
	u := e.OnDragStart(Target{Kind: TargetToken, ID: tok.ID}, tok.Pos.X, tok.Pos.Y)
	assert.Equal(t, StateDragging, u.State)

	y := tok.Pos.Y
	u = e.OnPointerMove(w+10, y)
	assert.Equal(t, StateDragging, u.State)
	assert.True(t, u.Changed)
	assert.Equal(t, w-20, tok.Pos.X)
	assert.Equal(t, y, tok.Pos.Y)

	u = e.OnDragEnd(w+10, y)
	assert.Equal(t, w-20, tok.Pos.X)
	assert.NotEqual(t, StateDragging, u.State)
	_, dragging := e.Dragging()
	assert.False(t, dragging)
}

func TestTokenDragKeepsGrabOffset(t *testing.T) {
	e := newEngine(t)
	tok, err := e.AddToken(diagram.RoleDefense, 2)
	require.NoError(t, err)
	start := tok.Pos

	e.OnDragStart(Target{Kind: TargetToken, ID: tok.ID}, start.X+5, start.Y-3)
	e.OnPointerMove(start.X+45, start.Y+17)

	assert.InDelta(t, start.X+40, tok.Pos.X, 1e-9)
	assert.InDelta(t, start.Y+20, tok.Pos.Y, 1e-9)
}

func TestBoundPathFollowsPlayer(t *testing.T) {
	e := newEngine(t)
	tok, err := e.AddToken(diagram.RoleOffense, 3)
	require.NoError(t, err)

	p := e.AddPath(diagram.BoundStart{PlayerID: tok.ID}, vec.Pt(500, 500))
	before := e.StartPoint(p)

	e.OnDragStart(Target{Kind: TargetToken, ID: tok.ID}, tok.Pos.X, tok.Pos.Y)
	e.OnPointerMove(tok.Pos.X+25, tok.Pos.Y-40)
	e.OnDragEnd(tok.Pos.X, tok.Pos.Y)

	after := e.StartPoint(p)
	assert.InDelta(t, 25, after.X-before.X, 1e-9)
	assert.InDelta(t, -40, after.Y-before.Y, 1e-9)

	c, ok := e.Curve(p.ID)
	require.True(t, ok)
	assert.Equal(t, after, c.Start)
}

func TestAddPathRejectsNonOffenseBinding(t *testing.T) {
	e := newEngine(t)
	def, err := e.AddToken(diagram.RoleDefense, 1)
	require.NoError(t, err)

	p := e.AddPath(diagram.BoundStart{PlayerID: def.ID}, vec.Pt(500, 500))
	assert.Equal(t, diagram.FreeStart{Point: def.Pos}, p.Start)

	p = e.AddPath(diagram.BoundStart{PlayerID: "nobody"}, vec.Pt(500, 500))
	assert.Equal(t, diagram.FreeStart{Point: vec.Pt(500, 500)}, p.Start)
}

func TestStartHandleSnapsToOffense(t *testing.T) {
	e := newEngine(t)
	off, err := e.AddToken(diagram.RoleOffense, 1) // spot 0
	require.NoError(t, err)
	def, err := e.AddToken(diagram.RoleDefense, 1) // spot 1
	require.NoError(t, err)

	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(600, 600))

	target, ok := e.HitTest(100, 600)
	require.True(t, ok)
	require.Equal(t, Target{Kind: TargetHandle, ID: p.ID, Handle: HandleStart}, target)
	e.OnDragStart(target, 100, 600)

	// within 28 of the offensive player
	u := e.OnPointerMove(off.Pos.X+10, off.Pos.Y+6)
	require.NotNil(t, u.Snap)
	assert.True(t, u.Snap.Bound)
	assert.Equal(t, off.ID, u.Snap.ID)
	assert.Equal(t, diagram.BoundStart{PlayerID: off.ID}, p.Start)
	require.NotNil(t, u.Curve)
	assert.Equal(t, off.Pos, u.Curve.Start)

	// defenders are not snap targets
	near := vec.Pt(def.Pos.X+2, def.Pos.Y+3)
	u = e.OnPointerMove(near.X, near.Y)
	require.NotNil(t, u.Snap)
	assert.False(t, u.Snap.Bound)
	assert.Equal(t, diagram.FreeStart{Point: near}, p.Start)

	u = e.OnDragEnd(off.Pos.X+5, off.Pos.Y-4)
	assert.Equal(t, diagram.BoundStart{PlayerID: off.ID}, p.Start)
	assert.Equal(t, StateHoverable, u.State)
}

func TestStartSnapUsesPointerBeyondEdge(t *testing.T) {
	e := newEngine(t)
	off, err := e.DropToken(diagram.RoleOffense, 4, 0, 300)
	require.NoError(t, err)
	require.Equal(t, vec.Pt(20, 300), off.Pos)

	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(600, 600))
	e.OnDragStart(Target{Kind: TargetHandle, ID: p.ID, Handle: HandleStart}, 100, 600)

	// 30 from the player; clamping first would land 12 away
	u := e.OnPointerMove(-10, 300)
	require.NotNil(t, u.Snap)
	assert.False(t, u.Snap.Bound)
	assert.Equal(t, diagram.FreeStart{Point: vec.Pt(8, 300)}, p.Start)
	assert.Equal(t, vec.Pt(8, 300), u.Position)

	// 27 from the player, still past the edge
	u = e.OnPointerMove(-7, 300)
	require.NotNil(t, u.Snap)
	assert.True(t, u.Snap.Bound)
	assert.Equal(t, diagram.BoundStart{PlayerID: off.ID}, p.Start)
}

func TestEndHandleIsClamped(t *testing.T) {
	e := newEngine(t)
	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(600, 600))

	e.OnDragStart(Target{Kind: TargetHandle, ID: p.ID, Handle: HandleEnd}, 600, 600)
	u := e.OnPointerMove(2000, 800)

	w, h := e.Viewport().Size()
	assert.Equal(t, vec.Pt(w-9, h-9), p.End)
	assert.Equal(t, p.End, u.Position)
}

func TestMidHandleProjectsAndClamps(t *testing.T) {
	e := newEngine(t)
	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(500, 600))

	target, ok := e.HitTest(300, 600)
	require.True(t, ok)
	require.Equal(t, HandleMid, target.Handle)

	e.OnDragStart(target, 300, 600)
	u := e.OnPointerMove(200, 740)

	assert.InDelta(t, 0.25, p.Mid().T, 1e-9)
	assert.Equal(t, 80.0, p.Mid().Offset)
	assert.InDelta(t, 200, u.Position.X, 1e-9)
	assert.InDelta(t, 680, u.Position.Y, 1e-9)
	require.NotNil(t, u.Curve)
	assert.Equal(t, u.Position, u.Curve.Control)
}

func TestHitTestPathBody(t *testing.T) {
	e := newEngine(t)
	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(500, 600))
	c, ok := e.Curve(p.ID)
	require.True(t, ok)

	on := c.Points[len(c.Points)/4].Add(vec.Pt(0, 1))
	target, ok := e.HitTest(on.X, on.Y)
	require.True(t, ok)
	assert.Equal(t, Target{Kind: TargetPathBody, ID: p.ID}, target)

	_, ok = e.HitTest(300, 650)
	assert.False(t, ok)
}

func TestBodyDragTranslatesFreeEnds(t *testing.T) {
	e := newEngine(t)
	p := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 600)}, vec.Pt(500, 600))
	c, _ := e.Curve(p.ID)
	grab := c.Points[len(c.Points)/4]

	e.OnDragStart(Target{Kind: TargetPathBody, ID: p.ID}, grab.X, grab.Y)
	e.OnPointerMove(grab.X+10, grab.Y-20)
	e.OnDragEnd(grab.X+10, grab.Y-20)

	start := e.StartPoint(p)
	assert.InDelta(t, 110, start.X, 1e-9)
	assert.InDelta(t, 580, start.Y, 1e-9)
	assert.InDelta(t, 510, p.End.X, 1e-9)
	assert.InDelta(t, 580, p.End.Y, 1e-9)
}

func TestHoverState(t *testing.T) {
	e := newEngine(t)
	tok, err := e.AddToken(diagram.RoleCone, 0)
	require.NoError(t, err)

	u := e.OnPointerMove(tok.Pos.X+3, tok.Pos.Y)
	assert.Equal(t, StateHoverable, u.State)
	assert.Equal(t, Target{Kind: TargetToken, ID: tok.ID}, u.Target)

	u = e.OnPointerMove(5, 5)
	assert.Equal(t, StateIdle, u.State)
}

func TestRemoveDuringDragEndsDrag(t *testing.T) {
	e := newEngine(t)
	tok, err := e.AddToken(diagram.RoleOffense, 1)
	require.NoError(t, err)

	e.OnDragStart(Target{Kind: TargetToken, ID: tok.ID}, tok.Pos.X, tok.Pos.Y)
	require.True(t, e.RemoveToken(tok.ID))

	_, dragging := e.Dragging()
	assert.False(t, dragging)
	u := e.OnPointerMove(400, 400)
	assert.Equal(t, StateIdle, u.State)
}

func TestDanglingStartWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	e, err := New(DefaultConfig(), zerolog.New(&buf), diagram.WithIDFunc(seqIDs()))
	require.NoError(t, err)

	p := e.Diagram().AddPath(diagram.BoundStart{PlayerID: "ghost"}, vec.Pt(200, 200))
	for i := 0; i < 3; i++ {
		c, ok := e.Curve(p.ID)
		require.True(t, ok)
		assert.Equal(t, vec.Pt(200, 200), c.Start)
	}

	assert.Equal(t, 1, strings.Count(buf.String(), "lost its player"))
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestResizeAndDropToken(t *testing.T) {
	e := newEngine(t)

	res := e.Resize(2000, 1000)
	assert.Equal(t, 1.0, res.Scale)
	assert.True(t, res.SecondaryVisible)

	res = e.Resize(992, 900)
	assert.InDelta(t, 0.8, res.Scale, 1e-9)
	assert.False(t, res.SecondaryVisible)

	e.SetOrigin(100, 50)
	tok, err := e.DropToken(diagram.RoleCone, 0, 100+400*res.Scale, 50+300*res.Scale)
	require.NoError(t, err)
	assert.InDelta(t, 400, tok.Pos.X, 1e-9)
	assert.InDelta(t, 300, tok.Pos.Y, 1e-9)

	// dropped off the canvas edge
	tok, err = e.DropToken(diagram.RoleOffense, 4, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, vec.Pt(20, 20), tok.Pos)
}

func TestCurveUnknownPath(t *testing.T) {
	e := newEngine(t)
	_, ok := e.Curve("missing")
	assert.False(t, ok)
}
