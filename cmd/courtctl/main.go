// Command courtctl prints court geometry, preset spots and curve samples
// for a configuration as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ha1tch/playcourt/internal/config"
	"github.com/ha1tch/playcourt/internal/logging"
	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/placement"
	"github.com/ha1tch/playcourt/pkg/vec"
	"github.com/ha1tch/playcourt/pkg/viewport"
)

const usage = `courtctl - inspect play diagram geometry

Usage:
  courtctl <command> [options]

Commands:
  features   Court markings as drawable primitives
  spots      Preset placement spots
  curve      Sample a path curve

Common options:
  --config <file>   Config file (default ~/.playcourt.toml)
  --pretty          Indent JSON output

Examples:
  courtctl features --pretty
  courtctl spots --config court.toml
  courtctl curve --start 290,374 --end 500,200 --t 0.3 --offset 40
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "features":
		return cmdFeatures(args, stdout, stderr)
	case "spots":
		return cmdSpots(args, stdout, stderr)
	case "curve":
		return cmdCurve(args, stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return 1
	}
}

// common holds the options every command accepts.
type common struct {
	config string
	pretty bool
}

func newFlagSet(name string, stderr io.Writer, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.config, "config", "", "config file")
	fs.BoolVar(&c.pretty, "pretty", false, "indent JSON output")
	return fs
}

// load reads the configuration and returns a console logger for it.
func load(c common, stderr io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(c.config)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logging.NewConsole(stderr, cfg.Log.Level).With().Str("component", "courtctl").Logger()
	return cfg, log, nil
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(p vec.Point) pointJSON {
	return pointJSON{X: p.X, Y: p.Y}
}

func toPoints(pts []vec.Point) []pointJSON {
	out := make([]pointJSON, len(pts))
	for i, p := range pts {
		out[i] = toPoint(p)
	}
	return out
}

type rectJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type featureJSON struct {
	Name   string     `json:"name"`
	Kind   string     `json:"kind"`
	A      *pointJSON `json:"a,omitempty"`
	B      *pointJSON `json:"b,omitempty"`
	Rect   *rectJSON  `json:"rect,omitempty"`
	Center *pointJSON `json:"center,omitempty"`
	Radius float64    `json:"radius,omitempty"`
	Start  float64    `json:"start,omitempty"`
	End    float64    `json:"end,omitempty"`
	Dashed bool       `json:"dashed,omitempty"`
	Filled bool       `json:"filled,omitempty"`
}

func toFeature(f court.Feature) featureJSON {
	out := featureJSON{Name: f.Name, Kind: f.Kind.String(), Dashed: f.Dashed, Filled: f.Filled}
	switch f.Kind {
	case court.KindLine:
		a, b := toPoint(f.A), toPoint(f.B)
		out.A, out.B = &a, &b
	case court.KindRect:
		out.Rect = &rectJSON{X: f.Rect.X, Y: f.Rect.Y, W: f.Rect.W, H: f.Rect.H}
	case court.KindCircle, court.KindArc:
		c := toPoint(f.Center)
		out.Center = &c
		out.Radius = f.Radius
		if f.Kind == court.KindArc {
			out.Start, out.End = f.Start, f.End
		}
	}
	return out
}

type featuresOutput struct {
	Canvas   rectJSON      `json:"canvas"`
	Court    rectJSON      `json:"court"`
	Features []featureJSON `json:"features"`
}

func cmdFeatures(args []string, stdout, stderr io.Writer) int {
	var c common
	fs := newFlagSet("features", stderr, &c)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, log, err := load(c, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	w, h := cfg.Court.CanvasSize()
	cr := cfg.Court.CourtRect()
	out := featuresOutput{
		Canvas: rectJSON{W: w, H: h},
		Court:  rectJSON{X: cr.X, Y: cr.Y, W: cr.W, H: cr.H},
	}
	for _, f := range court.Features(cfg.Court) {
		out.Features = append(out.Features, toFeature(f))
	}
	log.Debug().Int("features", len(out.Features)).Msg("court features")

	if err := writeJSON(stdout, out, c.pretty); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type spotJSON struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type radiiJSON struct {
	Player float64 `json:"player"`
	Cone   float64 `json:"cone"`
}

type spotsOutput struct {
	Radii radiiJSON  `json:"radii"`
	Spots []spotJSON `json:"spots"`
}

func cmdSpots(args []string, stdout, stderr io.Writer) int {
	var c common
	fs := newFlagSet("spots", stderr, &c)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg, log, err := load(c, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	policy := placement.New(cfg.Court, viewport.New(cfg.Court, cfg.Fit), cfg.Tokens)
	out := spotsOutput{Radii: radiiJSON{Player: cfg.Tokens.Player, Cone: cfg.Tokens.Cone}}
	for i, p := range policy.Spots() {
		out.Spots = append(out.Spots, spotJSON{Index: i, X: p.X, Y: p.Y})
	}
	log.Debug().Int("spots", len(out.Spots)).Msg("preset spots")

	if err := writeJSON(stdout, out, c.pretty); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parsePoint reads an "x,y" pair.
func parsePoint(s string) (vec.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return vec.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return vec.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return vec.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return vec.Pt(x, y), nil
}

type curveOutput struct {
	Start      pointJSON    `json:"start"`
	End        pointJSON    `json:"end"`
	Control    pointJSON    `json:"control"`
	Handle     pointJSON    `json:"handle"`
	Mid        curve.Mid    `json:"mid"`
	Length     float64      `json:"length"`
	Arrow      [2]pointJSON `json:"arrow"`
	Centerline []pointJSON  `json:"centerline,omitempty"`
	Points     []pointJSON  `json:"points"`
}

func cmdCurve(args []string, stdout, stderr io.Writer) int {
	var c common
	var startArg, endArg string
	var centerline bool
	mid := curve.DefaultMid()

	fs := newFlagSet("curve", stderr, &c)
	fs.StringVar(&startArg, "start", "", "start point x,y")
	fs.StringVar(&endArg, "end", "", "end point x,y")
	fs.Float64Var(&mid.T, "t", mid.T, "midpoint position along the chord, 0..1")
	fs.Float64Var(&mid.Offset, "offset", mid.Offset, "midpoint offset from the chord")
	fs.BoolVar(&centerline, "centerline", false, "include the unsquiggled centreline")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if startArg == "" || endArg == "" {
		fmt.Fprintln(stderr, "Usage: courtctl curve --start x,y --end x,y [--t 0.5] [--offset 0] [--centerline]")
		return 1
	}
	start, err := parsePoint(startArg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	end, err := parsePoint(endArg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cfg, log, err := load(c, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	clamped := curve.ClampMid(mid, cfg.Curve.MaxOffset)
	if clamped != mid {
		log.Warn().
			Float64("t", mid.T).
			Float64("offset", mid.Offset).
			Msg("midpoint out of range, clamped")
	}
	cv := curve.NewBuilder(cfg.Curve).Build(start, end, clamped)

	out := curveOutput{
		Start:   toPoint(cv.Start),
		End:     toPoint(cv.End),
		Control: toPoint(cv.Control),
		Handle:  toPoint(curve.HandlePoint(start, end, clamped)),
		Mid:     clamped,
		Length:  curve.Length(cv.Points),
		Arrow:   [2]pointJSON{toPoint(cv.Arrow.From), toPoint(cv.Arrow.To)},
		Points:  toPoints(cv.Points),
	}
	if centerline {
		out.Centerline = toPoints(cv.Centerline)
	}

	if err := writeJSON(stdout, out, c.pretty); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
