package curve

import (
	"math"
	"testing"

	"github.com/ha1tch/playcourt/pkg/vec"
)

// FuzzBuild looks for panics and non-finite samples.
// Run with: go test -fuzz=FuzzBuild -fuzztime=30s ./pkg/curve/
func FuzzBuild(f *testing.F) {
	f.Add(100.0, 100.0, 300.0, 100.0, 0.5, 0.0)
	f.Add(100.0, 100.0, 300.0, 400.0, 0.2, 80.0)
	f.Add(50.0, 50.0, 50.0, 50.0, 0.5, 40.0) // degenerate chord
	f.Add(0.0, 0.0, 860.0, 748.0, 1.5, -300.0)
	f.Add(-1e5, 3.0, 1e5, -3.0, 0.0, 1.0)

	b := NewBuilder(DefaultParams())
	f.Fuzz(func(t *testing.T, sx, sy, ex, ey, mt, mo float64) {
		for _, v := range []float64{sx, sy, ex, ey, mt, mo} {
			if math.IsNaN(v) || math.Abs(v) > 1e6 {
				t.Skip()
			}
		}
		start, end := vec.Pt(sx, sy), vec.Pt(ex, ey)
		c := b.Build(start, end, Mid{T: mt, Offset: mo})

		if len(c.Points) < 2 || len(c.Points) != len(c.Centerline) {
			t.Fatalf("bad sample count %d/%d", len(c.Points), len(c.Centerline))
		}
		if len(c.Points) > DefaultParams().MaxSteps+1 {
			t.Fatalf("too many samples: %d", len(c.Points))
		}
		for i, p := range c.Points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				t.Fatalf("sample %d not finite: %v", i, p)
			}
		}
		if c.Points[0] != start {
			t.Errorf("first sample %v, want %v", c.Points[0], start)
		}
		last := c.Points[len(c.Points)-1]
		if math.Sqrt(last.Dist2(end)) > 1e-6*math.Max(1, end.Len()) {
			t.Errorf("last sample %v, want %v", last, end)
		}
	})
}
