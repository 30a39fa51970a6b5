package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tilechess/engine"
	"tilechess/notation"
	"tilechess/types"
)

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form      *tview.Form
	flex      *tview.Flex
	onStart   func(engine.GameConfig)
	onCancel  func()
	onColors  func()
	onResults func()

	base   engine.GameConfig
	width  int
	height int
	side   types.Side
}

// NewGameSetup creates a new game setup form. base supplies the defaults and
// the starting layout.
func NewGameSetup(base engine.GameConfig, onStart func(engine.GameConfig), onCancel func(), onColors func(), onResults func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:   onStart,
		onCancel:  onCancel,
		onColors:  onColors,
		onResults: onResults,
		base:      base,
		width:     base.Width,
		height:    base.Height,
		side:      base.StartingSide,
	}

	sides := []string{"White (upper case)", "Black (lower case)"}

	form := tview.NewForm()

	form.AddInputField("Files", strconv.Itoa(base.Width), 4, tview.InputFieldInteger, func(text string) {
		setup.width = parseDimension(text)
	})

	form.AddInputField("Ranks", strconv.Itoa(base.Height), 4, tview.InputFieldInteger, func(text string) {
		setup.height = parseDimension(text)
	})

	form.AddDropDown("First Move", sides, int(base.StartingSide), func(option string, index int) {
		setup.side = types.Side(index)
	})

	form.AddButton("Start Game", func() {
		onStart(setup.GameConfig())
	})

	form.AddButton("Colors", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Results", func() {
		if onResults != nil {
			onResults()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)
	form.SetLabelColor(MenuColors.Label)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// parseDimension reads a board dimension, clamped to what notation can name.
func parseDimension(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 0
	}
	return min(n, notation.MaxFiles)
}

// GameConfig returns the configuration the form currently describes.
func (s *GameSetupUI) GameConfig() engine.GameConfig {
	cfg := s.base
	if s.width > 0 {
		cfg.Width = s.width
	}
	if s.height > 0 {
		cfg.Height = s.height
	}
	cfg.StartingSide = s.side
	return cfg
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
