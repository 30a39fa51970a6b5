// Package ui specifies custom controls for tview to play tilechess in the terminal.
package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tilechess/config"
	"tilechess/engine"
	"tilechess/notation"
	"tilechess/types"
)

const (
	cellWidth  = 3 // " ♜ "
	labelWidth = 3 // rank numbers left of the board
)

// Indices into BoardUI.styles.
const (
	styleLight = iota
	styleDark
	styleWhite
	styleBlack
	styleCursor
	styleHeld
	styleTarget
	styleLastMove
)

// GameSummary describes a finished game for the host.
type GameSummary struct {
	Winner   types.Side
	Moves    int
	Captures int
	Duration time.Duration
	Width    int
	Height   int
}

type BoardUI struct {
	Box       *tview.Box
	Snapshot  *types.Snapshot
	hint      *tview.TextView
	cfg       *config.Config
	selX      int
	selY      int
	eng       engine.GameEngine
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool

	targets  map[types.Coord]bool
	message  string
	captured [2][]types.PieceKind // pieces taken by each side
	bell     bool
	started  time.Time
	onEnd    func(GameSummary)

	// Screen position of square (0, height-1) at the last draw.
	originX int
	originY int
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

// IsFocusMode returns true if focus mode is enabled.
func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

// SelectedTile returns the cursor position, or nil if the cursor is hidden.
func (g *BoardUI) SelectedTile() *types.Coord {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.Coord{X: g.selX, Y: g.selY}
}

// MoveSelection moves the cursor by h files and v ranks. Positive v moves away
// from side 0, which is up on screen. The first call only shows the cursor.
func (g *BoardUI) MoveSelection(h, v int) {
	if g.Snapshot == nil || g.Snapshot.Width() == 0 {
		return
	}
	if g.SelectedTile() == nil {
		switch {
		case g.Snapshot.Held != nil:
			g.selX, g.selY = g.Snapshot.Held.X, g.Snapshot.Held.Y
		case g.Snapshot.LastMove != nil:
			g.selX, g.selY = g.Snapshot.LastMove[1].X, g.Snapshot.LastMove[1].Y
		default:
			// No move made yet, start on the mover's front rank
			g.selX = g.Snapshot.Width() / 2
			g.selY = 1
			if g.Snapshot.Turn.Side == types.Black {
				g.selY = g.Snapshot.Height() - 2
			}
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= g.Snapshot.Width() {
		return
	}
	if g.selY+v < 0 || g.selY+v >= g.Snapshot.Height() {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

// SetCursor puts the cursor on c.
func (g *BoardUI) SetCursor(c types.Coord) {
	g.selX, g.selY = c.X, c.Y
}

func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:      tview.NewBox(),
		Snapshot: types.NewSnapshot(0, 0),
		hint:     hint,
		selX:     -1,
		selY:     -1,
		targets:  make(map[types.Coord]bool),
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	board.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}
		c, ok := board.CoordAt(event.Position())
		if !ok {
			return action, event
		}
		board.SetCursor(c)
		board.Activate()
		return action, nil
	})
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if g.bell {
		screen.Beep()
		g.bell = false
	}
	if g.Snapshot == nil || g.Snapshot.Width() == 0 {
		return x, y, 1, 1
	}
	w, h := g.Snapshot.Width(), g.Snapshot.Height()
	g.originX, g.originY = x+labelWidth, y

	for row := 0; row < h; row++ {
		for bx := 0; bx < w; bx++ {
			c := types.Coord{X: bx, Y: h - 1 - row}
			style, r := g.cellStyle(c)
			left := g.originX + bx*cellWidth
			screen.SetContent(left, y+row, ' ', nil, style)
			screen.SetContent(left+1, y+row, r, nil, style)
			screen.SetContent(left+2, y+row, ' ', nil, style)
		}
	}
	drawCoordinates(screen, x, y, g)
	return x, y, w*cellWidth + labelWidth, h + 1
}

// cellStyle picks the rune and colors for one square.
func (g *BoardUI) cellStyle(c types.Coord) (tcell.Style, rune) {
	theme := g.cfg.Theme
	cell := g.Snapshot.At(c)

	bg := g.styles[styleLight]
	if (c.X+c.Y)%2 == 0 {
		bg = g.styles[styleDark]
	}
	fg := tcell.ColorDefault
	r := theme.Symbols.Empty
	target := theme.ShowTargets && g.targets[c]

	if !cell.Empty() {
		fg = g.styles[styleWhite]
		if cell.Side == types.Black {
			fg = g.styles[styleBlack]
		}
		if theme.UseLetters {
			r = rune(notation.PieceLetter(cell.Kind, cell.Side))
		} else {
			r = theme.Symbols.For(cell.Kind)
		}
	} else if target {
		fg = g.styles[styleTarget]
		r = theme.Symbols.Target
	}

	held := g.Snapshot.Held != nil && *g.Snapshot.Held == c
	lastMove := g.Snapshot.LastMove != nil && (g.Snapshot.LastMove[0] == c || g.Snapshot.LastMove[1] == c)
	switch {
	case c.X == g.selX && c.Y == g.selY && theme.DrawCursorBackground:
		bg = g.styles[styleCursor]
	case held:
		bg = g.styles[styleHeld]
	case target && !cell.Empty():
		bg = g.styles[styleTarget]
	case lastMove && theme.DrawLastMove:
		bg = g.styles[styleLastMove]
	}
	return tcell.StyleDefault.Background(bg).Foreground(fg), r
}

// CoordAt maps a screen position to the square drawn there.
func (g *BoardUI) CoordAt(sx, sy int) (types.Coord, bool) {
	if g.Snapshot == nil || g.Snapshot.Width() == 0 {
		return types.Coord{}, false
	}
	col, row := sx-g.originX, sy-g.originY
	if col < 0 || row < 0 {
		return types.Coord{}, false
	}
	bx := col / cellWidth
	if bx >= g.Snapshot.Width() || row >= g.Snapshot.Height() {
		return types.Coord{}, false
	}
	return types.Coord{X: bx, Y: g.Snapshot.Height() - 1 - row}, true
}

// ConnectEngine connects the board to a game engine.
func (g *BoardUI) ConnectEngine(e engine.GameEngine) {
	g.eng = e

	// Callbacks run on the event loop inside the handler that issued the
	// intent; tview redraws once the handler returns.
	e.OnHeldChanged(func(c types.Coord, ok bool) {
		g.refresh()
	})

	e.OnTurnChanged(func(turn types.TurnState) {
		g.refresh()
	})

	e.OnCapture(func(ev types.CaptureEvent) {
		g.captured[ev.AttackerSide] = append(g.captured[ev.AttackerSide], ev.Defender)
		g.message = fmt.Sprintf("%s %s takes %s on %s", ev.AttackerSide, ev.Attacker, ev.Defender, notation.FormatCoord(ev.At))
		g.bell = true
	})

	e.OnGameEnd(func(winner types.Side) {
		g.refresh()
		g.ResetSelection()
		g.message = fmt.Sprintf("%s captured the king", winner)
		if g.onEnd != nil {
			g.onEnd(g.summary(winner))
		}
		g.refreshHint()
	})

	g.newGame()
}

// OnGameEnd registers a callback for when a game on this board finishes.
func (g *BoardUI) OnGameEnd(callback func(GameSummary)) {
	g.onEnd = callback
}

func (g *BoardUI) summary(winner types.Side) GameSummary {
	return GameSummary{
		Winner:   winner,
		Moves:    g.Snapshot.MoveNumber,
		Captures: len(g.captured[0]) + len(g.captured[1]),
		Duration: time.Since(g.started),
		Width:    g.Snapshot.Width(),
		Height:   g.Snapshot.Height(),
	}
}

func (g *BoardUI) newGame() {
	g.captured = [2][]types.PieceKind{}
	g.message = ""
	g.started = time.Now()
	g.ResetSelection()
	g.refresh()
}

// NewGame restarts the connected engine from its last setup.
func (g *BoardUI) NewGame() error {
	if g.eng == nil {
		return nil
	}
	if err := g.eng.Reset(); err != nil {
		return err
	}
	g.newGame()
	return nil
}

// refresh pulls a snapshot and the legal targets from the engine.
func (g *BoardUI) refresh() {
	if g.eng == nil {
		return
	}
	g.Snapshot = g.eng.Snapshot()
	g.targets = make(map[types.Coord]bool)
	for _, c := range g.eng.Targets() {
		g.targets[c] = true
	}
	g.refreshHint()
}

// Activate acts on the square under the cursor: it picks up a piece, moves the
// held piece there, or drops the held piece when the cursor is on it.
func (g *BoardUI) Activate() {
	c := g.SelectedTile()
	if c == nil || g.eng == nil {
		return
	}
	if g.Snapshot.Finished() {
		g.message = "The game is over, press n for a new one"
		g.refreshHint()
		return
	}

	held, holding := g.eng.Held()
	if holding && held == *c {
		g.eng.Deselect()
		g.message = ""
		g.refreshHint()
		return
	}
	if g.eng.Select(*c) {
		g.message = ""
		g.refreshHint()
		return
	}
	if !holding {
		cell := g.Snapshot.At(*c)
		if cell.Empty() {
			g.message = "No piece on " + notation.FormatCoord(*c)
		} else {
			g.message = fmt.Sprintf("It is %s's turn", g.Snapshot.Turn.Side)
		}
		g.refreshHint()
		return
	}

	res := g.eng.AttemptMove(*c)
	switch {
	case res.Outcome == types.Invalid:
		g.message = fmt.Sprintf("Illegal move to %s", notation.FormatCoord(*c))
	case res.Outcome == types.Moved && res.Promoted:
		g.message = fmt.Sprintf("Pawn promoted on %s", notation.FormatCoord(res.To))
	case res.Outcome == types.Moved:
		g.message = fmt.Sprintf("%s %s-%s", res.Mover, notation.FormatCoord(res.From), notation.FormatCoord(res.To))
	}
	g.refresh()
}

// Deselect drops the held piece.
func (g *BoardUI) Deselect() bool {
	if g.eng == nil {
		return false
	}
	if _, ok := g.eng.Held(); !ok {
		return false
	}
	g.eng.Deselect()
	return true
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.LightSquare),   // styleLight
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),    // styleDark
		tcell.PaletteColor(c.Theme.Colors.WhitePiece),    // styleWhite
		tcell.PaletteColor(c.Theme.Colors.BlackPiece),    // styleBlack
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // styleCursor
		tcell.PaletteColor(c.Theme.Colors.HeldColorBG),   // styleHeld
		tcell.PaletteColor(c.Theme.Colors.TargetColorBG), // styleTarget
		tcell.PaletteColor(c.Theme.Colors.LastMoveBG),    // styleLastMove
	}
	g.cfg = c
}

// SetStatsText shows finished-game statistics in the info panel.
func (g *BoardUI) SetStatsText(text string) {
	if g.infoPanel != nil {
		g.infoPanel.SetStatsText(text)
	}
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetSnapshot(g.Snapshot, g.captured)
	}
	if g.hint == nil {
		return
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string
	if g.message != "" {
		statusLine = "  " + g.message + "\n"
	}

	if g.Snapshot.Finished() {
		turnLine = fmt.Sprintf("  %s wins\n", g.Snapshot.Turn.Winner)
		controlsLine = "  n new game   q menu"
	} else {
		turnLine = fmt.Sprintf("  %s to move\n", g.Snapshot.Turn.Side)
		controlsLine = "  hjkl/↑↓←→ move   ⏎ select/move   esc drop   n new   f focus   q menu"
	}

	g.hint.SetText(statusLine + turnLine + controlsLine)
}

// Message returns the last notification shown in the hint.
func (g *BoardUI) Message() string {
	return g.message
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.Snapshot != nil && g.Snapshot.Finished()
}

func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	w, h := ui.Snapshot.Width(), ui.Snapshot.Height()

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursor])

	for ix := 0; ix < w; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		}
		file := '?'
		if ix < notation.MaxFiles {
			file = rune('a' + ix)
		}
		left := ui.originX + ix*cellWidth
		s.SetContent(left, y+h, ' ', nil, _style)
		s.SetContent(left+1, y+h, file, nil, _style)
		s.SetContent(left+2, y+h, ' ', nil, _style)
	}

	for row := 0; row < h; row++ {
		rank := h - row
		_style := style
		if rank-1 == ui.selY {
			_style = highlight
		}
		tensRune := ' '
		if rank >= 10 {
			tensRune = rune('0' + rank/10%10)
		}
		s.SetContent(x, y+row, tensRune, nil, _style)
		s.SetContent(x+1, y+row, rune('0'+rank%10), nil, _style)
	}
}
