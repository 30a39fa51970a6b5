package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"tilechess/notation"
	"tilechess/storage"
	"tilechess/types"
)

// GameInfoPanel displays game information and captured pieces alongside the board.
type GameInfoPanel struct {
	box       *tview.TextView
	snapshot  *types.Snapshot
	captured  [2][]types.PieceKind
	statsText string
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box: tview.NewTextView(),
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetSnapshot updates the panel with the current position and the pieces each
// side has taken.
func (p *GameInfoPanel) SetSnapshot(snap *types.Snapshot, captured [2][]types.PieceKind) {
	p.snapshot = snap
	p.captured = captured
	p.refresh()
}

// SetStatsText sets the statistics section; empty hides it.
func (p *GameInfoPanel) SetStatsText(text string) {
	p.statsText = text
	p.refresh()
}

// FormatStats renders the finished-game tally for the info panel.
func FormatStats(stats *storage.GameStats) string {
	if stats == nil {
		return ""
	}
	var text string
	text += fmt.Sprintf("[white]Games:[-:-:-] %d\n", stats.GamesPlayed)
	text += fmt.Sprintf("[white]Wins:[-:-:-]  W %d · B %d\n", stats.Wins(types.White), stats.Wins(types.Black))
	if stats.GamesPlayed > 0 {
		text += fmt.Sprintf("[white]Avg:[-:-:-]   %.1f moves\n", stats.AverageMoves())
		text += fmt.Sprintf("[white]Longest:[-:-:-] %d moves\n", stats.LongestGame)
	}
	return text
}

// refresh updates the panel text.
func (p *GameInfoPanel) refresh() {
	if p.snapshot == nil || p.snapshot.Width() == 0 {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	text += fmt.Sprintf("[white]Board:[-:-:-] %dx%d\n", p.snapshot.Width(), p.snapshot.Height())
	text += fmt.Sprintf("[white]Move:[-:-:-] %d\n", p.snapshot.MoveNumber)
	text += fmt.Sprintf("[white]Turn:[-:-:-] %s\n", p.snapshot.Turn)

	if held := p.snapshot.Held; held != nil {
		cell := p.snapshot.At(*held)
		text += fmt.Sprintf("[white]Held:[-:-:-] %s %s\n", cell.Kind, notation.FormatCoord(*held))
	}
	if lm := p.snapshot.LastMove; lm != nil {
		text += fmt.Sprintf("[white]Last:[-:-:-] %s-%s\n", notation.FormatCoord(lm[0]), notation.FormatCoord(lm[1]))
	}

	text += "\n[white::b]Captured[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	for _, side := range []types.Side{types.White, types.Black} {
		text += fmt.Sprintf("[white]%s:[-:-:-] %s\n", side, capturedLetters(p.captured[side], side.Other()))
	}

	if p.statsText != "" {
		text += "\n[white::b]Results[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"
		text += p.statsText
	}

	p.box.SetText(text)
}

// capturedLetters lists taken pieces in diagram letters of their owner.
func capturedLetters(kinds []types.PieceKind, owner types.Side) string {
	if len(kinds) == 0 {
		return "[dimgray]-[-]"
	}
	var sb strings.Builder
	for _, k := range kinds {
		sb.WriteByte(notation.PieceLetter(k, owner))
	}
	return sb.String()
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	mainFlex := tview.NewFlex()
	RebuildNormalLayout(mainFlex, board, hint)
	return mainFlex
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form tview.Primitive, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)        // Left spacer
	centered.AddItem(form, maxWidth, 0, true) // Form with max width
	centered.AddItem(nil, 0, 1, false)        // Right spacer

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := NewGameInfoPanel()
	if board.infoPanel != nil {
		infoPanel.statsText = board.infoPanel.statsText
	}
	board.infoPanel = infoPanel
	infoPanel.SetSnapshot(board.Snapshot, board.captured)

	// Create horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)         // Board (flexible, takes remaining space)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false) // Info panel (fixed width)

	// Main vertical flex: board area on top, status bar at bottom
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	boardWidth := 8*cellWidth + labelWidth // default for 8x8
	boardHeight := 9
	if board.Snapshot != nil && board.Snapshot.Width() > 0 {
		boardWidth = board.Snapshot.Width()*cellWidth + labelWidth
		boardHeight = board.Snapshot.Height() + 1 // + file letters
	}

	// Center board with flex spacers
	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false) // top spacer

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)               // left spacer
	centerRow.AddItem(board.Box, boardWidth, 0, true) // board (fixed width)
	centerRow.AddItem(nil, 0, 1, false)               // right spacer

	gameFrame.AddItem(centerRow, boardHeight, 0, true) // center row (fixed height)
	gameFrame.AddItem(nil, 0, 1, false)                // bottom spacer
	gameFrame.AddItem(hint, 1, 0, false)
}
