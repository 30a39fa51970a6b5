// Package types contains shared data structures for tilechess.
package types

import (
	"fmt"
	"strings"
)

// Side identifies one of the two players. Side 0 moves toward increasing y.
type Side int

const (
	White Side = 0
	Black Side = 1
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

// Valid reports whether s is 0 or 1.
func (s Side) Valid() bool {
	return s == White || s == Black
}

func (s Side) String() string {
	switch s {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// PieceKind is the closed set of piece variants.
// The numeric order matches the layout index table used by older configs (0=Pawn ... 5=King).
type PieceKind int

const (
	Pawn PieceKind = iota
	Rook
	Knight
	Bishop
	Queen
	King
	NoKind
)

var kindNames = [...]string{"Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}
var kindLetters = [...]byte{'P', 'R', 'N', 'B', 'Q', 'K'}

func (k PieceKind) String() string {
	if k < Pawn || k >= NoKind {
		return "None"
	}
	return kindNames[k]
}

// Letter returns the upper-case notation letter for the kind, or '.' for NoKind.
func (k PieceKind) Letter() byte {
	if k < Pawn || k >= NoKind {
		return '.'
	}
	return kindLetters[k]
}

// ParseKind resolves a kind by name ("rook", "Queen") or by letter ("N").
// Case is ignored. ok is false for anything else.
func ParseKind(name string) (PieceKind, bool) {
	name = strings.TrimSpace(name)
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return PieceKind(k), true
		}
	}
	if len(name) == 1 {
		return KindFromLetter(name[0])
	}
	return NoKind, false
}

// KindFromLetter maps a notation letter of either case to its kind.
func KindFromLetter(c byte) (PieceKind, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	for k, l := range kindLetters {
		if l == c {
			return PieceKind(k), true
		}
	}
	return NoKind, false
}

// Coord represents a position on the board.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// TurnState is either ToMove(Side) or GameOver.
type TurnState struct {
	Side   Side // side to move; meaningless once Over
	Over   bool
	Winner Side // valid only when Over
}

// ToMove returns the state where side is to move.
func ToMove(side Side) TurnState {
	return TurnState{Side: side}
}

func (t TurnState) String() string {
	if t.Over {
		return fmt.Sprintf("Game over (%s wins)", t.Winner)
	}
	return fmt.Sprintf("%s to move", t.Side)
}

// Outcome classifies the result of a move attempt.
type Outcome int

const (
	Invalid Outcome = iota
	Moved
	Captured
	GameOver
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "Moved"
	case Captured:
		return "Captured"
	case GameOver:
		return "GameOver"
	default:
		return "Invalid"
	}
}

// MoveResult reports what an attempted move did. Only Outcome is set for Invalid.
type MoveResult struct {
	Outcome  Outcome
	Mover    PieceKind // kind before promotion
	Captured PieceKind // NoKind unless Outcome is Captured or GameOver
	From     Coord
	To       Coord
	Promoted bool
	Touched  []Coord // squares whose occupancy changed
}

// Succeeded returns true for any outcome that changed the board.
func (r MoveResult) Succeeded() bool {
	return r.Outcome != Invalid
}

// CaptureEvent describes a capture for the presentation layer.
type CaptureEvent struct {
	Attacker     PieceKind
	AttackerSide Side
	Defender     PieceKind
	DefenderSide Side
	At           Coord
}

// Cell is one square of a Snapshot.
type Cell struct {
	Kind PieceKind `json:"kind"`
	Side Side      `json:"side"`
}

// Empty returns true if no piece occupies the cell.
func (c Cell) Empty() bool {
	return c.Kind == NoKind
}

// Snapshot is a read-only copy of the board for rendering.
// Cells is indexed as Cells[y][x].
type Snapshot struct {
	MoveNumber int       `json:"move_number"`
	Turn       TurnState `json:"turn"`
	Cells      [][]Cell  `json:"cells"`
	Held       *Coord    `json:"held,omitempty"`
	LastMove   *[2]Coord `json:"last_move,omitempty"`
}

// Finished returns true if the game is over.
func (s *Snapshot) Finished() bool {
	return s.Turn.Over
}

// Height returns the board height.
func (s *Snapshot) Height() int {
	return len(s.Cells)
}

// Width returns the board width.
func (s *Snapshot) Width() int {
	if s.Height() == 0 {
		return 0
	}
	return len(s.Cells[0])
}

// At returns the cell at c, or an empty cell if c is off the board.
func (s *Snapshot) At(c Coord) Cell {
	if c.Y < 0 || c.Y >= s.Height() || c.X < 0 || c.X >= s.Width() {
		return Cell{Kind: NoKind}
	}
	return s.Cells[c.Y][c.X]
}

// NewSnapshot creates an empty snapshot of the given size with side 0 to move.
func NewSnapshot(width, height int) *Snapshot {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Kind: NoKind}
		}
	}
	return &Snapshot{
		Turn:  ToMove(White),
		Cells: cells,
	}
}
