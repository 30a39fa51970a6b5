package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tilechess/types"
)

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	gc, err := c.GameConfig()
	if err != nil {
		t.Fatal(err)
	}
	if gc.Width != 8 || gc.Height != 8 || gc.StartingSide != types.White {
		t.Errorf("GameConfig = %+v", gc)
	}
	if got := gc.Layout[types.Black].Back[4]; got != "King" {
		t.Errorf("black back rank e-file = %q, want King", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"control symbol", func(c *Config) { c.Theme.Symbols.King = 7 }},
		{"C1 symbol", func(c *Config) { c.Theme.Symbols.Empty = 130 }},
		{"zero width", func(c *Config) { c.Game.Width = 0 }},
		{"too wide", func(c *Config) { c.Game.Width = 27 }},
		{"too short", func(c *Config) { c.Game.Height = 3 }},
		{"bad side", func(c *Config) { c.Game.StartingSide = 2 }},
		{"bad letter", func(c *Config) { c.Game.Layout[1].Back = "RNBXKBNR" }},
		{"rank too long", func(c *Config) { c.Game.Width = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig
			tt.modify(&c)
			err := c.Validate()
			var invalid *InvalidConfig
			if !errors.As(err, &invalid) {
				t.Errorf("Validate() = %v, want *InvalidConfig", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{
  "game": {
    "width": 5,
    "height": 6,
    "starting_side": 1,
    "layout": [
      {"back": "RNBQK", "front": "PPPPP"},
      {"back": "KQBNR", "front": "P.P.P"}
    ]
  }
}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Theme != DefaultTheme {
		t.Error("theme not taken from defaults")
	}
	if !c.Storage.Enabled {
		t.Error("storage default lost")
	}
	gc, err := c.GameConfig()
	if err != nil {
		t.Fatal(err)
	}
	if gc.StartingSide != types.Black || gc.Width != 5 || gc.Height != 6 {
		t.Errorf("GameConfig = %+v", gc)
	}
	front := gc.Layout[types.Black].Front
	if len(front) != 5 || front[1] != "" || front[2] != "Pawn" {
		t.Errorf("black front rank = %q", front)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("Load accepted malformed JSON")
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Load accepted a missing file")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"game": {"height": 2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	var ic *InvalidConfig
	if _, err := Load(invalid); !errors.As(err, &ic) {
		t.Errorf("Load(height 2) = %v, want *InvalidConfig", err)
	}
}

func TestSaveCfgFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	c := DefaultConfig
	c.Game.Width = 6
	c.Game.Layout[0] = SideRanks{Back: "RNQKNR", Front: "PPPPPP"}
	c.Game.Layout[1] = c.Game.Layout[0]
	if err := saveCfgFile(path, &c, 0644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Game != c.Game {
		t.Errorf("Game = %+v, want %+v", got.Game, c.Game)
	}
}

func TestSymbolsFor(t *testing.T) {
	s := DefaultTheme.Symbols
	if s.For(types.Knight) != '♞' || s.For(types.NoKind) != ' ' {
		t.Errorf("For returned %q, %q", s.For(types.Knight), s.For(types.NoKind))
	}
}
