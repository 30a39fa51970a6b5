// tilechess is a terminal application to play a chess variant on boards of any size.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"tilechess/config"
	"tilechess/engine"
	"tilechess/engine/local"
	"tilechess/notation"
	"tilechess/storage"
	"tilechess/types"
	"tilechess/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagWidth    = flag.Int("width", 0, "Number of files (1-26)")
	flagHeight   = flag.Int("height", 0, "Number of ranks (at least 4)")
	flagStart    = flag.String("start", "", "Side that moves first (white or black)")
	flagPosition = flag.String("position", "", "Start from a diagram file instead of the configured layout")
	flagQuick    = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus    = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagNoStats  = flag.Bool("nostats", false, "Do not record finished games")
	flagPrint    = flag.Bool("print", false, "Print the starting position and exit")
	flagVersion  = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var stats *storage.Storage

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("tilechess %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	if logPath, err := xdg.StateFile("tilechess/debug.log"); err == nil {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			defer f.Close()
			local.SetDebugOutput(f)
		}
	}

	baseCfg, err := buildGameConfigFromFlags()
	if err != nil {
		log.Fatal(err)
	}

	if *flagPrint {
		g, err := newGame(baseCfg, *flagPosition)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(notation.FormatDiagram(g.Snapshot()))
		return
	}

	if cfg.Storage.Enabled && !*flagNoStats {
		if cfg.Storage.Dir != "" {
			stats, err = storage.Open(cfg.Storage.Dir)
		} else {
			stats, err = storage.OpenDefault()
		}
		if err != nil {
			// Play on without statistics.
			log.Printf("statistics disabled: %v", err)
			stats = nil
		} else {
			defer stats.Close()
		}
	}

	quickStart := *flagQuick || *flagWidth > 0 || *flagHeight > 0 || *flagStart != "" || *flagPosition != "" || *flagFocus

	app = tview.NewApplication()
	app.EnableMouse(true)
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ♞ tilechess ")

	// Game view setup
	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(cfg, gameHint)
	gameBoard.OnGameEnd(recordGame)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)
	showStats()

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.Deselect() {
				return nil
			}
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			gameBoard.Activate()
		case tcell.KeyEscape:
			gameBoard.Deselect()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, -1)
			case 'k':
				gameBoard.MoveSelection(0, 1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case ' ':
				gameBoard.Activate()
			case 'n':
				if err := gameBoard.NewGame(); err != nil {
					showError("Failed to restart the game", err)
				}
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard, gameHint)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
					showStats()
				}
			}
		}
		return event
	})

	// Results screen
	var source ui.ResultSource
	if stats != nil {
		source = stats
	}
	results := ui.NewResults(source, func() {
		rootPage.SwitchToPage("setup")
	})

	// Game setup screen
	setupUI := ui.NewGameSetup(baseCfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg, "")
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
		func() {
			results.Refresh()
			rootPage.SwitchToPage("results")
		},
	)

	// Color configuration screen
	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 60), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)
	rootPage.AddPage("results", results.Flex(), true, false)

	if quickStart {
		startGame(baseCfg, *flagPosition)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard, gameHint)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		log.Fatal(err)
	}
}

// newGame creates an engine for gameCfg. A non-empty position names a diagram
// file that replaces the board size and layout.
func newGame(gameCfg engine.GameConfig, position string) (*local.GameState, error) {
	if position == "" {
		return local.New(gameCfg)
	}
	data, err := os.ReadFile(position)
	if err != nil {
		return nil, err
	}
	diagram, err := notation.ParseDiagram(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", position, err)
	}
	gameCfg.Width, gameCfg.Height = diagram.Width, diagram.Height
	gameCfg.Layout = nil
	g, err := local.New(gameCfg)
	if err != nil {
		return nil, err
	}
	if err := diagram.Apply(g); err != nil {
		return nil, fmt.Errorf("%s: %w", position, err)
	}
	return g, nil
}

// startGame starts a game with the given configuration. position names a
// diagram file to start from, or is empty for the configured layout.
func startGame(gameCfg engine.GameConfig, position string) {
	g, err := newGame(gameCfg, position)
	if err != nil {
		showError("Failed to start game", err)
		return
	}
	gameBoard.ConnectEngine(g)
	if gameBoard.IsFocusMode() {
		ui.BuildFocusLayout(gameFrame, gameBoard, gameHint)
	}
	rootPage.SwitchToPage("gameview")
}

// recordGame stores a finished game and refreshes the tally in the info panel.
func recordGame(s ui.GameSummary) {
	if stats == nil {
		return
	}
	err := stats.RecordGame(storage.GameResult{
		Winner:   s.Winner,
		Moves:    s.Moves,
		Captures: s.Captures,
		Duration: s.Duration,
		Width:    s.Width,
		Height:   s.Height,
	})
	if err != nil {
		log.Printf("recording game: %v", err)
		return
	}
	showStats()
}

func showStats() {
	if stats == nil {
		return
	}
	if tally, err := stats.LoadStats(); err == nil {
		gameBoard.SetStatsText(ui.FormatStats(tally))
	}
}

func showError(title string, err error) {
	text := fmt.Sprintf("%s:\n%s", title, err.Error())
	var setupErr *engine.SetupError
	if errors.As(err, &setupErr) && setupErr.Entry != "" {
		text = fmt.Sprintf("%s:\nbad %s piece %q on %s", title, setupErr.Side, setupErr.Entry, notation.FormatCoord(setupErr.Coord))
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.HidePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// buildGameConfigFromFlags creates a GameConfig from the config file and
// command-line flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return gameCfg, err
	}

	if *flagWidth > 0 {
		if *flagWidth > notation.MaxFiles {
			return gameCfg, fmt.Errorf("-width %d: at most %d files", *flagWidth, notation.MaxFiles)
		}
		gameCfg.Width = *flagWidth
	}
	if *flagHeight > 0 {
		gameCfg.Height = *flagHeight
	}

	switch *flagStart {
	case "":
	case "white", "w":
		gameCfg.StartingSide = types.White
	case "black", "b":
		gameCfg.StartingSide = types.Black
	default:
		return gameCfg, fmt.Errorf("-start %q: want white or black", *flagStart)
	}

	return gameCfg, nil
}
