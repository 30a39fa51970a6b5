package notation

import (
	"errors"
	"strings"
	"testing"

	"tilechess/engine"
	"tilechess/engine/local"
	"tilechess/types"
)

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		c    types.Coord
		want string
	}{
		{types.Coord{X: 0, Y: 0}, "a1"},
		{types.Coord{X: 4, Y: 3}, "e4"},
		{types.Coord{X: 7, Y: 7}, "h8"},
		{types.Coord{X: 2, Y: 11}, "c12"},
		{types.Coord{X: 30, Y: 0}, "(30, 0)"},
		{types.Coord{X: -1, Y: 2}, "(-1, 2)"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.c); got != tt.want {
			t.Errorf("FormatCoord(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		input   string
		want    types.Coord
		wantErr bool
	}{
		{"a1", types.Coord{X: 0, Y: 0}, false},
		{"E4", types.Coord{X: 4, Y: 3}, false},
		{" h8 ", types.Coord{X: 7, Y: 7}, false},
		{"i1", types.Coord{}, true},
		{"a9", types.Coord{}, true},
		{"a0", types.Coord{}, true},
		{"a", types.Coord{}, true},
		{"1a", types.Coord{}, true},
		{"ax", types.Coord{}, true},
	}
	for _, tt := range tests {
		got, err := ParseCoord(tt.input, 8, 8)
		if tt.wantErr {
			if !errors.Is(err, ErrBadCoord) {
				t.Errorf("ParseCoord(%q) err = %v, want ErrBadCoord", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoord(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCoord(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCoordRoundTrip(t *testing.T) {
	for y := 0; y < 10; y++ {
		for x := 0; x < 12; x++ {
			c := types.Coord{X: x, Y: y}
			got, err := ParseCoord(FormatCoord(c), 12, 10)
			if err != nil || got != c {
				t.Errorf("round trip %v = %v, %v", c, got, err)
			}
		}
	}
}

func TestParseRank(t *testing.T) {
	got, err := ParseRank("rN.q k")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Rook", "Knight", "", "Queen", "King"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ParseRank = %q, want %q", got, want)
	}

	if _, err := ParseRank("RNZ"); !errors.Is(err, ErrBadRank) {
		t.Errorf("ParseRank(RNZ) err = %v, want ErrBadRank", err)
	}
}

func TestFormatRank(t *testing.T) {
	got, err := FormatRank(engine.StandardLayout()[types.White].Back)
	if err != nil {
		t.Fatal(err)
	}
	if got != "RNBQKBNR" {
		t.Errorf("FormatRank = %q, want RNBQKBNR", got)
	}

	got, err = FormatRank([]string{"", "pawn", ".", "k"})
	if err != nil || got != ".P.K" {
		t.Errorf("FormatRank = %q, %v, want .P.K", got, err)
	}

	if _, err := FormatRank([]string{"Camel"}); !errors.Is(err, ErrBadRank) {
		t.Errorf("FormatRank(Camel) err = %v, want ErrBadRank", err)
	}
}

func TestFormatDiagram(t *testing.T) {
	g, err := local.New(engine.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	got := FormatDiagram(g.Snapshot())
	want := strings.Join([]string{
		"8 r n b q k b n r",
		"7 p p p p p p p p",
		"6 . . . . . . . .",
		"5 . . . . . . . .",
		"4 . . . . . . . .",
		"3 . . . . . . . .",
		"2 P P P P P P P P",
		"1 R N B Q K B N R",
		"  a b c d e f g h",
		"White to move",
		"",
	}, "\n")
	if got != want {
		t.Errorf("FormatDiagram:\n%s\nwant:\n%s", got, want)
	}
}

func TestDiagramRoundTrip(t *testing.T) {
	cfg := engine.GameConfig{Width: 5, Height: 10}
	g, err := local.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	pieces := []engine.Placement{
		{Kind: types.King, Side: types.White, At: types.Coord{X: 2, Y: 0}},
		{Kind: types.Pawn, Side: types.White, At: types.Coord{X: 1, Y: 1}},
		{Kind: types.Knight, Side: types.Black, At: types.Coord{X: 4, Y: 9}},
		{Kind: types.Bishop, Side: types.Black, At: types.Coord{X: 0, Y: 5}},
	}
	for _, pl := range pieces {
		if err := g.PlacePiece(pl.Kind, pl.Side, pl.At); err != nil {
			t.Fatal(err)
		}
	}
	text := FormatDiagram(g.Snapshot())
	if !strings.HasPrefix(text, "10 . . . . n\n") {
		t.Errorf("top rank line not padded as expected:\n%s", text)
	}

	d, err := ParseDiagram(text)
	if err != nil {
		t.Fatalf("ParseDiagram: %v\n%s", err, text)
	}
	if d.Width != 5 || d.Height != 10 {
		t.Fatalf("size = %dx%d, want 5x10", d.Width, d.Height)
	}
	if len(d.Pieces) != len(pieces) {
		t.Fatalf("pieces = %v, want %v", d.Pieces, pieces)
	}

	g2, err := local.New(engine.GameConfig{Width: 1, Height: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Apply(g2); err != nil {
		t.Fatal(err)
	}
	if again := FormatDiagram(g2.Snapshot()); again != text {
		t.Errorf("applied diagram differs:\n%s\nwant:\n%s", again, text)
	}
}

func TestParseDiagramErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "  a b c\nWhite to move\n"},
		{"ragged", "2 . . .\n1 K .\n"},
		{"gap", "3 . .\n1 K .\n"},
		{"repeated", "1 . .\n1 K .\n"},
		{"letter", "2 . .\n1 X .\n"},
		{"wide cell", "2 . .\n1 Kq .\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDiagram(tt.text); !errors.Is(err, ErrBadDiagram) {
				t.Errorf("err = %v, want ErrBadDiagram", err)
			}
		})
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	d := Diagram{Width: 3, Height: 3, Pieces: []engine.Placement{
		{Kind: types.Rook, Side: types.White, At: types.Coord{X: 0, Y: 0}},
		{Kind: types.Rook, Side: types.Black, At: types.Coord{X: 0, Y: 0}},
	}}
	g, err := local.New(engine.GameConfig{Width: 3, Height: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Apply(g); !errors.Is(err, engine.ErrOccupied) {
		t.Errorf("err = %v, want ErrOccupied", err)
	}
}
