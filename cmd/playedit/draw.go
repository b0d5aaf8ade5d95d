package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/playcourt/pkg/diagram"
	"github.com/ha1tch/playcourt/pkg/editor"
	"github.com/ha1tch/playcourt/pkg/render"
)

// Styles
var (
	styleDefault    = tcell.StyleDefault
	styleSidebar    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleSidebarH   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSidebarSel = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	styleStatus     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleMsgInfo    = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError   = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleMsgSuccess = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy)
	styleHelp       = tcell.StyleDefault.Foreground(tcell.ColorGray) // Help bar on default background
	styleBorder     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (ed *Editor) draw() {
	ed.screen.Clear()
	w, h := ed.screen.Size()

	ed.drawCanvas()
	ed.drawSidebar(h - statusRows)
	if ed.layout.HelpVisible {
		ed.drawHelpPanel(h - statusRows)
	}
	ed.drawStatusBar(w, h)
}

func (ed *Editor) drawCanvas() {
	l := ed.layout
	if l.CanvasCols <= 0 || l.CanvasRows <= 0 {
		return
	}
	ed.painter.Paint(ed.raster, render.SceneFrom(ed.engine, ed.selected, ed.snap))
	img := ed.raster.Downscale(l.CanvasCols, 2*l.CanvasRows)
	blitHalfBlocks(ed.screen, img, l.CanvasCol, l.CanvasRow, l.CanvasCols, l.CanvasRows)
}

// drawSidebar lists tokens and paths in the toolbox panel.
func (ed *Editor) drawSidebar(h int) {
	width := ed.layout.PrimaryCols
	if width < 6 {
		return
	}
	for row := 0; row < h; row++ {
		ed.screen.SetContent(width, row, '│', nil, styleBorder)
	}
	x, y := 1, 0
	d := ed.engine.Diagram()

	ed.drawString(x, y, "playcourt", styleSidebarH)
	y += 2

	ed.drawString(x, y, "Tokens:", styleSidebarH)
	y++
	for _, tok := range d.Tokens() {
		if y >= h-1 {
			ed.drawString(x, y, "  ...", styleSidebar)
			return
		}
		style := styleSidebar
		if tok.ID == ed.selected {
			style = styleSidebarSel
		}
		line := fmt.Sprintf("  %-4s (%3.0f,%3.0f)", tokenLabel(tok), tok.Pos.X, tok.Pos.Y)
		ed.drawString(x, y, truncate(line, width-2), style)
		y++
	}
	y++

	if y >= h-1 {
		return
	}
	ed.drawString(x, y, "Paths:", styleSidebarH)
	y++
	for i, p := range d.Paths() {
		if y >= h-1 {
			ed.drawString(x, y, "  ...", styleSidebar)
			return
		}
		style := styleSidebar
		if p.ID == ed.selected {
			style = styleSidebarSel
		}
		ed.drawString(x, y, truncate(fmt.Sprintf("  #%d %s", i+1, ed.startLabel(p)), width-2), style)
		y++
	}
}

func (ed *Editor) startLabel(p *diagram.Path) string {
	if b, ok := p.Start.(diagram.BoundStart); ok {
		if tok, ok := ed.engine.Diagram().Token(b.PlayerID); ok {
			return "from " + tokenLabel(tok)
		}
	}
	if p.Dangling() {
		return "free (lost player)"
	}
	return "free"
}

var helpLines = []string{
	"Keys",
	"",
	"1-5    offense",
	"!@#$%  defense",
	"c      cone",
	"p      path",
	"x/Del  remove",
	"Esc    deselect",
	"q      quit",
	"",
	"Mouse",
	"",
	"drag token",
	"drag path handle",
	"drag path body",
}

// drawHelpPanel fills the secondary panel. It is only called while the
// fit leaves room for it.
func (ed *Editor) drawHelpPanel(h int) {
	x := ed.layout.HelpCol
	width := ed.layout.HelpCols
	for row := 0; row < h; row++ {
		ed.screen.SetContent(x-1, row, '│', nil, styleBorder)
	}
	for i, line := range helpLines {
		if i >= h {
			return
		}
		style := styleSidebar
		if i == 0 || line == "Mouse" {
			style = styleSidebarH
		}
		ed.drawString(x+1, i, truncate(line, width-2), style)
	}
}

func (ed *Editor) drawStatusBar(w, h int) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	// Cursor
	ed.screen.SetContent(1, y, cursorGlyph(ed.state), nil, styleStatus)
	ed.drawString(3, y, ed.state.String(), styleStatus)

	// Scale
	scale := fmt.Sprintf("%.0f%%", ed.fit.Scale*100)
	ed.drawString(w/2-len(scale)/2, y, scale, styleStatus)

	// Message
	if ed.message != "" {
		style := styleMsgInfo
		switch ed.messageType {
		case MsgError:
			style = styleMsgError
		case MsgSuccess:
			style = styleMsgSuccess
		case MsgWarning:
			style = styleMsgWarning
		}
		if flashes(ed.messageType) && inverted(time.Now().UnixMilli()-ed.messageStart) {
			style = style.Reverse(true)
		}
		ed.drawString(w-len([]rune(ed.message))-2, y, ed.message, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		ed.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	ed.drawString(1, y, ed.helpString(), styleHelp)
}

func (ed *Editor) helpString() string {
	if ed.dragging {
		return "Release to drop"
	}
	return "1-5:Offense  !@#$%:Defense  C:Cone  P:Path  X:Remove  Q:Quit"
}

// cursorGlyph stands in for the pointer cursor of a windowed editor.
func cursorGlyph(s editor.InteractionState) rune {
	switch s {
	case editor.StateHoverable:
		return '☝'
	case editor.StateDragging:
		return '✊'
	}
	return '↖'
}

// flashes reports whether messages of this type blink when shown.
func flashes(t MessageType) bool {
	switch t {
	case MsgError, MsgSuccess, MsgWarning:
		return true
	}
	return false
}

// inverted gives the flash phase: normal, inverted, normal, inverted in
// 125ms steps, then normal for good.
func inverted(elapsed int64) bool {
	if elapsed < 0 || elapsed >= 500 {
		return false
	}
	phase := elapsed / 125
	return phase == 1 || phase == 3
}

func tokenLabel(t *diagram.Token) string {
	switch t.Role {
	case diagram.RoleOffense:
		return fmt.Sprintf("O%d", t.Number)
	case diagram.RoleDefense:
		return fmt.Sprintf("X%d", t.Number)
	}
	return "cone"
}

func (ed *Editor) drawString(x, y int, s string, style tcell.Style) {
	col := 0
	for _, r := range s {
		ed.screen.SetContent(x+col, y, r, nil, style)
		col++
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 {
		return ""
	}
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
