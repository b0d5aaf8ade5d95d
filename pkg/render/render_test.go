package render

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/editor"
	"github.com/ha1tch/playcourt/pkg/snap"
	"github.com/ha1tch/playcourt/pkg/vec"
)

// recorder is a Surface that logs command names.
type recorder struct {
	cmds  []string
	texts []string
	polys [][]vec.Point
}

func (r *recorder) Clear(color.Color)                               { r.cmds = append(r.cmds, "clear") }
func (r *recorder) Line(_, _ vec.Point, _ Style)                    { r.cmds = append(r.cmds, "line") }
func (r *recorder) Polyline(_ []vec.Point, _ Style)                 { r.cmds = append(r.cmds, "polyline") }
func (r *recorder) Rect(vec.Rect, Style)                            { r.cmds = append(r.cmds, "rect") }
func (r *recorder) Circle(vec.Point, float64, Style)                { r.cmds = append(r.cmds, "circle") }
func (r *recorder) Arc(vec.Point, float64, float64, float64, Style) { r.cmds = append(r.cmds, "arc") }
func (r *recorder) Polygon(pts []vec.Point, _ Style) {
	r.cmds = append(r.cmds, "polygon")
	r.polys = append(r.polys, pts)
}
func (r *recorder) Text(s string, _ vec.Point, _ color.Color) {
	r.cmds = append(r.cmds, "text")
	r.texts = append(r.texts, s)
}

func (r *recorder) count(cmd string) int {
	n := 0
	for _, c := range r.cmds {
		if c == cmd {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T) *editor.Engine {
	t.Helper()
	n := 0
	ids := func() string { n++; return fmt.Sprintf("id-%d", n) }
	e, err := editor.New(editor.DefaultConfig(), zerolog.Nop(), diagram.WithIDFunc(ids))
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	return e
}

func TestArrowHead(t *testing.T) {
	head := ArrowHead(curve.Segment{From: vec.Pt(0, 0), To: vec.Pt(10, 0)}, 12)
	if len(head) != 3 {
		t.Fatalf("Expected triangle, got %d points", len(head))
	}
	if head[0] != vec.Pt(10, 0) {
		t.Errorf("Tip expected (10,0), got %v", head[0])
	}
	for _, p := range head[1:] {
		if math.Abs(p.X-(-2)) > 1e-9 || math.Abs(math.Abs(p.Y)-6) > 1e-9 {
			t.Errorf("Base corner expected (-2, ±6), got %v", p)
		}
	}
	if ArrowHead(curve.Segment{From: vec.Pt(3, 3), To: vec.Pt(3, 3)}, 12) != nil {
		t.Errorf("Zero-length segment should give no arrow head")
	}
}

func TestPaintEmptyCourt(t *testing.T) {
	e := newEngine(t)
	rec := &recorder{}
	NewPainter(DefaultTheme()).Paint(rec, SceneFrom(e, "", nil))

	if rec.cmds[0] != "clear" {
		t.Errorf("First command should be clear, got %s", rec.cmds[0])
	}
	// floor, outline, backboard, lane
	if got := rec.count("rect"); got != 4 {
		t.Errorf("Expected 4 rects, got %d", got)
	}
	if got := rec.count("arc"); got != 3 {
		t.Errorf("Expected 3 arcs, got %d", got)
	}
	if got := rec.count("circle"); got != 1 {
		t.Errorf("Expected only the rim circle, got %d", got)
	}
}

func TestPaintTokensAndPath(t *testing.T) {
	e := newEngine(t)
	off, _ := e.AddToken(diagram.RoleOffense, 4)
	if _, err := e.AddToken(diagram.RoleDefense, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := e.AddToken(diagram.RoleCone, 0); err != nil {
		t.Fatal(err)
	}
	e.AddPath(diagram.BoundStart{PlayerID: off.ID}, vec.Pt(600, 600))

	rec := &recorder{}
	res := &snap.Resolution{Bound: true, ID: off.ID, Point: off.Pos}
	NewPainter(DefaultTheme()).Paint(rec, SceneFrom(e, off.ID, res))

	if got := rec.count("polyline"); got != 1 {
		t.Errorf("Expected one path stroke, got %d", got)
	}
	// arrow head + cone
	if got := rec.count("polygon"); got != 2 {
		t.Errorf("Expected 2 polygons, got %d", got)
	}
	// rim + 3 handles + offense ring + snap ring
	if got := rec.count("circle"); got != 6 {
		t.Errorf("Expected 6 circles, got %d", got)
	}
	want := map[string]bool{"4": false, "2": false}
	for _, s := range rec.texts {
		if _, ok := want[s]; ok {
			want[s] = true
		}
	}
	for label, seen := range want {
		if !seen {
			t.Errorf("Jersey number %s was not drawn", label)
		}
	}
}

func TestSceneFromMarksBoundPaths(t *testing.T) {
	e := newEngine(t)
	off, _ := e.AddToken(diagram.RoleOffense, 1)
	bound := e.AddPath(diagram.BoundStart{PlayerID: off.ID}, vec.Pt(600, 600))
	free := e.AddPath(diagram.FreeStart{Point: vec.Pt(100, 100)}, vec.Pt(200, 600))

	sc := SceneFrom(e, free.ID, nil)
	if len(sc.Paths) != 2 {
		t.Fatalf("Expected 2 paths, got %d", len(sc.Paths))
	}
	if sc.Paths[0].ID != bound.ID || !sc.Paths[0].Bound || sc.Paths[0].Selected {
		t.Errorf("First path view wrong: %+v", sc.Paths[0])
	}
	if sc.Paths[1].Bound || !sc.Paths[1].Selected {
		t.Errorf("Second path view wrong: %+v", sc.Paths[1])
	}
	if sc.Paths[0].Curve.Start != off.Pos {
		t.Errorf("Bound path should start at the player")
	}
}

func TestRasterSmoke(t *testing.T) {
	spec := court.DefaultSpec()
	w, h := spec.CanvasSize()
	r, err := NewRaster(DefaultRasterOptions(int(w), int(h)))
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}

	e := newEngine(t)
	if _, err := e.AddToken(diagram.RoleOffense, 1); err != nil {
		t.Fatal(err)
	}
	theme := DefaultTheme()
	NewPainter(theme).Paint(r, SceneFrom(e, "", nil))

	img := r.Image()
	if b := img.Bounds(); b.Dx() != 1720 || b.Dy() != 1496 {
		t.Fatalf("Expected 1720x1496 supersampled image, got %v", b)
	}

	// corner is out of play, centre of the floor between markings is wood
	want := color.RGBAModel.Convert(theme.OutOfPlay).(color.RGBA)
	if got := color.RGBAModel.Convert(img.At(4, 4)).(color.RGBA); got != want {
		t.Errorf("Corner pixel expected %v, got %v", want, got)
	}
	floor := color.RGBAModel.Convert(theme.Floor).(color.RGBA)
	if got := color.RGBAModel.Convert(img.At(2*150, 2*650)).(color.RGBA); got != floor {
		t.Errorf("Floor pixel expected %v, got %v", floor, got)
	}

	small := r.Downscale(215, 187)
	if b := small.Bounds(); b.Dx() != 215 || b.Dy() != 187 {
		t.Errorf("Downscale size wrong: %v", b)
	}
}

func TestNewRasterRejectsEmpty(t *testing.T) {
	if _, err := NewRaster(RasterOptions{Width: 0, Height: 10}); err == nil {
		t.Errorf("Expected error for zero width")
	}
}
