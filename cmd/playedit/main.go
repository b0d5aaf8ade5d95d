// Command playedit is a terminal editor for half-court play diagrams.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/ha1tch/playcourt/internal/config"
	"github.com/ha1tch/playcourt/internal/logging"
	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/editor"
	"github.com/ha1tch/playcourt/pkg/render"
	"github.com/ha1tch/playcourt/pkg/snap"
	"github.com/ha1tch/playcourt/pkg/vec"
	"github.com/ha1tch/playcourt/pkg/viewport"
)

// statusRows is the help bar plus the status bar.
const statusRows = 2

// Editor holds the terminal front end state. The diagram itself lives in
// the engine; everything here is presentation.
type Editor struct {
	screen  tcell.Screen
	engine  *editor.Engine
	log     zerolog.Logger
	cells   cellSize
	raster  *render.Raster
	painter *render.Painter

	layout screenLayout
	fit    viewport.FitResult

	selected string // token or path id
	state    editor.InteractionState
	snap     *snap.Resolution
	leftDown bool
	dragging bool

	message      string
	messageType  MessageType
	messageStart int64        // Unix milliseconds when message was shown
	flashStart   atomic.Int64 // copy of messageStart for the ticker goroutine
}

// MessageType determines status bar styling and flash behaviour.
type MessageType int

const (
	MsgInfo    MessageType = iota // Informative, no flash
	MsgError                      // Errors, flash
	MsgSuccess                    // State changes, flash
	MsgWarning                    // Warnings, flash
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.playcourt.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to tcell, so logs only go to a file.
	log, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ed, err := newEditor(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	ed.screen = screen
	ed.relayout()
	ed.showMessage("1-5 offense, !@#$% defense, c cone, p path", MsgInfo)

	ed.run()

	screen.Fini()
}

func newEditor(cfg *config.Config, log zerolog.Logger) (*Editor, error) {
	eng, err := editor.New(cfg.EngineConfig(), log)
	if err != nil {
		return nil, err
	}
	w, h := cfg.Court.CanvasSize()
	opts := render.DefaultRasterOptions(int(w), int(h))
	opts.Supersample = 1 // the terminal grid is far coarser than one world unit
	r, err := render.NewRaster(opts)
	if err != nil {
		return nil, err
	}
	return &Editor{
		engine:  eng,
		log:     log.With().Str("component", "playedit").Logger(),
		cells:   cellSize{W: cfg.Terminal.CellWidth, H: cfg.Terminal.CellHeight},
		raster:  r,
		painter: render.NewPainter(render.DefaultTheme()),
	}, nil
}

func (ed *Editor) run() {
	// Post refresh events while a message is flashing.
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			start := ed.flashStart.Load()
			if start == 0 {
				continue
			}
			elapsed := time.Now().UnixMilli() - start
			if elapsed >= 0 && elapsed < 700 {
				ed.screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		ed.draw()
		ed.screen.Show()

		ev := ed.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			ed.screen.Sync()
			ed.relayout()
		case *tcell.EventKey:
			if ed.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			ed.handleMouse(ev)
		case *tcell.EventInterrupt:
			// Refresh event for flash animation - just redraw
		case nil:
			return
		}
	}
}

// relayout refits the canvas to the current terminal size.
func (ed *Editor) relayout() {
	cols, rows := ed.screen.Size()
	cw, ch := ed.cells.screenSize(cols, rows-statusRows)
	ed.fit = ed.engine.Resize(cw, ch)

	vw, vh := ed.engine.Viewport().Size()
	ed.layout = layoutFor(cols, rows-statusRows, ed.cells, ed.engine.Config().Fit, ed.fit, vw, vh)
	ox, oy := ed.cells.toScreen(ed.layout.CanvasCol, ed.layout.CanvasRow)
	ed.engine.SetOrigin(ox, oy)
	ed.log.Debug().
		Int("cols", cols).
		Int("rows", rows).
		Float64("scale", ed.fit.Scale).
		Bool("help", ed.fit.SecondaryVisible).
		Msg("relayout")
}

func (ed *Editor) showMessage(msg string, typ MessageType) {
	ed.message = msg
	ed.messageType = typ
	ed.messageStart = time.Now().UnixMilli()
	ed.flashStart.Store(ed.messageStart)
}

// roleForKey maps a palette key to a role and jersey number.
func roleForKey(r rune) (diagram.Role, int, bool) {
	switch r {
	case '1', '2', '3', '4', '5':
		return diagram.RoleOffense, int(r - '0'), true
	case '!':
		return diagram.RoleDefense, 1, true
	case '@':
		return diagram.RoleDefense, 2, true
	case '#':
		return diagram.RoleDefense, 3, true
	case '$':
		return diagram.RoleDefense, 4, true
	case '%':
		return diagram.RoleDefense, 5, true
	case 'c', 'C':
		return diagram.RoleCone, 0, true
	}
	return 0, 0, false
}

// handleKey returns true when the editor should quit.
func (ed *Editor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		ed.selected = ""
		return false
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		ed.removeSelected()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	r := ev.Rune()
	if role, number, ok := roleForKey(r); ok {
		ed.addToken(role, number)
		return false
	}
	switch r {
	case 'q', 'Q':
		return true
	case 'p', 'P':
		ed.addPath()
	case 'x', 'X':
		ed.removeSelected()
	}
	return false
}

func (ed *Editor) addToken(role diagram.Role, number int) {
	tok, err := ed.engine.AddToken(role, number)
	if err != nil {
		ed.showMessage(err.Error(), MsgError)
		return
	}
	ed.selected = tok.ID
	ed.showMessage(fmt.Sprintf("Added %s", tokenLabel(tok)), MsgSuccess)
}

// pathLength is how far a new path's end sits from its start.
const pathLength = 120

// addPath starts a path at the selected offensive player, or at the
// canvas centre when nothing suitable is selected.
func (ed *Editor) addPath() {
	var start diagram.StartRef
	var from vec.Point
	if tok, ok := ed.engine.Diagram().Token(ed.selected); ok && tok.Role == diagram.RoleOffense {
		start = diagram.BoundStart{PlayerID: tok.ID}
		from = tok.Pos
	} else {
		w, h := ed.engine.Viewport().Size()
		from = vec.Pt(w/2, h/2)
		start = diagram.FreeStart{Point: from}
	}
	p := ed.engine.AddPath(start, from.Add(vec.Pt(pathLength, 0)))
	ed.selected = p.ID
	ed.showMessage("Added path", MsgSuccess)
}

func (ed *Editor) removeSelected() {
	if ed.selected == "" {
		ed.showMessage("Nothing selected", MsgWarning)
		return
	}
	if ed.engine.RemoveToken(ed.selected) || ed.engine.RemovePath(ed.selected) {
		ed.showMessage("Removed", MsgSuccess)
	}
	ed.selected = ""
	ed.dragging = false
	ed.snap = nil
}

func (ed *Editor) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	sx, sy := ed.cells.centre(cx, cy)
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !ed.leftDown:
		ed.leftDown = true
		target, ok := ed.engine.HitTest(sx, sy)
		if !ok {
			ed.selected = ""
			ed.state = editor.StateIdle
			return
		}
		ed.selected = target.ID
		u := ed.engine.OnDragStart(target, sx, sy)
		ed.dragging = true
		ed.apply(u)

	case pressed:
		if ed.dragging {
			ed.apply(ed.engine.OnPointerMove(sx, sy))
		}

	case ed.leftDown:
		ed.leftDown = false
		if ed.dragging {
			ed.dragging = false
			ed.apply(ed.engine.OnDragEnd(sx, sy))
			ed.snap = nil
		}

	default:
		ed.apply(ed.engine.OnPointerMove(sx, sy))
	}
}

func (ed *Editor) apply(u editor.Update) {
	ed.state = u.State
	ed.snap = u.Snap
	if u.State != editor.StateDragging {
		ed.dragging = false
	}
}
