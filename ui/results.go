package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tilechess/storage"
	"tilechess/types"
)

// ResultSource is where the results screen reads finished games from.
type ResultSource interface {
	RecentGames(n int) ([]storage.GameResult, error)
	LoadStats() (*storage.GameStats, error)
}

// recentLimit is how many games the results list shows.
const recentLimit = 50

// ResultsUI provides a screen for browsing finished games and the running tally.
type ResultsUI struct {
	flex     *tview.Flex
	gameList *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	source   ResultSource
	games    []storage.GameResult
	stats    *storage.GameStats
	selected int
	onDone   func()
}

// NewResults creates a new results screen. source may be nil when statistics
// are disabled.
func NewResults(source ResultSource, onDone func()) *ResultsUI {
	rb := &ResultsUI{
		source: source,
		onDone: onDone,
	}

	// Game list (left panel)
	rb.gameList = tview.NewList()
	rb.gameList.SetBorder(true)
	rb.gameList.SetTitle(" Finished Games ")
	rb.gameList.ShowSecondaryText(false)
	rb.gameList.SetHighlightFullLine(true)
	rb.gameList.SetMainTextStyle(tcell.StyleDefault.Foreground(MenuColors.Label))
	rb.gameList.SetSelectedStyle(tcell.StyleDefault.
		Foreground(MenuColors.ButtonText).
		Background(MenuColors.ButtonFocus))

	// Detail box (right panel)
	rb.preview = tview.NewBox()
	rb.preview.SetBorder(true)
	rb.preview.SetTitle(" Details ")
	rb.preview.SetDrawFunc(rb.drawPreview)

	rb.hint = tview.NewTextView()
	rb.hint.SetDynamicColors(true)
	rb.hint.SetBorder(false)
	rb.hint.SetText("  [dimgray]r[-] reload  [dimgray]q[-] back")

	rb.gameList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		rb.selected = index
	})
	rb.gameList.SetInputCapture(rb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(rb.gameList, 38, 0, true).
		AddItem(rb.preview, 0, 1, false)

	rb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(rb.hint, 1, 0, false)

	rb.Refresh()
	return rb
}

// Flex returns the flex container for this UI.
func (rb *ResultsUI) Flex() *tview.Flex {
	return rb.flex
}

// Refresh reloads the games and the tally from the source.
func (rb *ResultsUI) Refresh() {
	rb.gameList.Clear()
	rb.games = nil
	rb.stats = nil
	rb.selected = 0

	if rb.source == nil {
		rb.gameList.AddItem("[dimgray]Statistics are disabled[-]", "", 0, nil)
		return
	}

	stats, err := rb.source.LoadStats()
	if err == nil {
		rb.stats = stats
	}

	games, err := rb.source.RecentGames(recentLimit)
	if err != nil {
		rb.gameList.AddItem(fmt.Sprintf("[red]%v[-]", err), "", 0, nil)
		return
	}
	if len(games) == 0 {
		rb.gameList.AddItem("[dimgray]No games found[-]", "", 0, nil)
		return
	}

	rb.games = games
	for _, g := range games {
		label := fmt.Sprintf("%s  %dx%d  %s", g.EndedAt.Format("2006-01-02 15:04"), g.Width, g.Height, resultCode(g.Winner))
		rb.gameList.AddItem(label, "", 0, nil)
	}
}

// resultCode is the short form of a result, "1-0" when side 0 won.
func resultCode(winner types.Side) string {
	if winner == types.Black {
		return "0-1"
	}
	return "1-0"
}

// handleInput processes keyboard input for the results screen.
func (rb *ResultsUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if rb.onDone != nil {
			rb.onDone()
		}
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if rb.onDone != nil {
				rb.onDone()
			}
			return nil
		case 'r':
			rb.Refresh()
			return nil
		}
	}
	return event
}

// detailLines describes the selected game and the overall tally.
func (rb *ResultsUI) detailLines() []string {
	var lines []string
	if rb.selected >= 0 && rb.selected < len(rb.games) {
		g := rb.games[rb.selected]
		lines = append(lines,
			fmt.Sprintf("Winner: %s (%s)", g.Winner, resultCode(g.Winner)),
			fmt.Sprintf("Board: %dx%d", g.Width, g.Height),
			fmt.Sprintf("Moves: %d  Captures: %d", g.Moves, g.Captures),
			fmt.Sprintf("Duration: %s", g.Duration.Round(time.Second)),
			"",
		)
	}
	if rb.stats != nil {
		lines = append(lines,
			fmt.Sprintf("Games played: %d", rb.stats.GamesPlayed),
			fmt.Sprintf("White wins: %d  Black wins: %d", rb.stats.WhiteWins, rb.stats.BlackWins),
			fmt.Sprintf("Average length: %.1f moves", rb.stats.AverageMoves()),
			fmt.Sprintf("Longest game: %d moves", rb.stats.LongestGame),
		)
	}
	return lines
}

// drawPreview renders the details of the selected game.
func (rb *ResultsUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	infoStyle := tcell.StyleDefault.Foreground(MenuColors.Label)
	winStyle := tcell.StyleDefault.Foreground(MenuColors.Win)

	for i, line := range rb.detailLines() {
		if i >= height-2 {
			break
		}
		style := infoStyle
		if i == 0 && len(rb.games) > 0 {
			style = winStyle
		}
		drawText(screen, x+2, y+1+i, line, style)
	}
	return x, y, width, height
}
