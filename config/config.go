package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"github.com/adrg/xdg"

	"tilechess/engine"
	"tilechess/notation"
	"tilechess/types"
)

var (
	cfgFile = "tilechess/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare   int `json:"light_square"`
	DarkSquare    int `json:"dark_square"`
	WhitePiece    int `json:"white"`
	BlackPiece    int `json:"black"`
	CursorColorBG int `json:"cursor_bg"`
	HeldColorBG   int `json:"held_bg"`
	TargetColorBG int `json:"target_bg"`
	LastMoveBG    int `json:"last_move_bg"`
}

type ConfigSymbols struct {
	Pawn   rune `json:"pawn"`
	Rook   rune `json:"rook"`
	Knight rune `json:"knight"`
	Bishop rune `json:"bishop"`
	Queen  rune `json:"queen"`
	King   rune `json:"king"`
	Empty  rune `json:"empty"`
	Target rune `json:"target"`
}

// For returns the symbol drawn for kind.
func (s ConfigSymbols) For(kind types.PieceKind) rune {
	switch kind {
	case types.Pawn:
		return s.Pawn
	case types.Rook:
		return s.Rook
	case types.Knight:
		return s.Knight
	case types.Bishop:
		return s.Bishop
	case types.Queen:
		return s.Queen
	case types.King:
		return s.King
	}
	return s.Empty
}

type Theme struct {
	UseLetters           bool          `json:"use_letters"`
	DrawCursorBackground bool          `json:"draw_cursor_bg"`
	DrawLastMove         bool          `json:"draw_last_move"`
	ShowTargets          bool          `json:"show_targets"`
	Colors               ConfigColors  `json:"colors"`
	Symbols              ConfigSymbols `json:"symbols"`
}

// SideRanks is one side's starting position as rank strings, back rank first.
type SideRanks struct {
	Back  string `json:"back"`
	Front string `json:"front"`
}

// GameSettings holds the defaults for a new game.
type GameSettings struct {
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	StartingSide int          `json:"starting_side"`
	Layout       [2]SideRanks `json:"layout"`
}

// StorageSettings controls the finished-game statistics store.
type StorageSettings struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"` // empty for the XDG data directory
}

type Config struct {
	Theme   Theme           `json:"theme"`
	Game    GameSettings    `json:"game"`
	Storage StorageSettings `json:"storage"`
}

func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load reads the config file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, &InvalidConfig{fmt.Sprintf("%s: %v", path, err)}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	s := c.Theme.Symbols
	for _, r := range []rune{s.Pawn, s.Rook, s.Knight, s.Bishop, s.Queen, s.King, s.Empty, s.Target} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}

	g := c.Game
	if g.Width < 1 || g.Width > notation.MaxFiles {
		return &InvalidConfig{fmt.Sprintf("board width must be between 1 and %d, got %d", notation.MaxFiles, g.Width)}
	}
	if g.Height < 4 {
		return &InvalidConfig{fmt.Sprintf("board height must be at least 4, got %d", g.Height)}
	}
	if !types.Side(g.StartingSide).Valid() {
		return &InvalidConfig{fmt.Sprintf("starting side must be 0 or 1, got %d", g.StartingSide)}
	}
	if _, err := c.Layout(); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

// Layout parses the configured rank strings.
func (c *Config) Layout() (engine.Layout, error) {
	layout := make(engine.Layout, 2)
	for i, ranks := range c.Game.Layout {
		side := types.Side(i)
		back, err := notation.ParseRank(ranks.Back)
		if err != nil {
			return nil, fmt.Errorf("%s back rank: %w", side, err)
		}
		front, err := notation.ParseRank(ranks.Front)
		if err != nil {
			return nil, fmt.Errorf("%s front rank: %w", side, err)
		}
		if len(back) > c.Game.Width || len(front) > c.Game.Width {
			return nil, fmt.Errorf("%s ranks are wider than the board (%d files)", side, c.Game.Width)
		}
		layout[side] = engine.SideLayout{Back: back, Front: front}
	}
	return layout, nil
}

// GameConfig builds the engine configuration for a new game.
func (c *Config) GameConfig() (engine.GameConfig, error) {
	layout, err := c.Layout()
	if err != nil {
		return engine.GameConfig{}, err
	}
	return engine.GameConfig{
		Width:        c.Game.Width,
		Height:       c.Game.Height,
		StartingSide: types.Side(c.Game.StartingSide),
		Layout:       layout,
	}, nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, a)
}
