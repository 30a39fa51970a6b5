package engine

import (
	"errors"
	"fmt"
	"strings"

	"tilechess/types"
)

var (
	ErrUnknownKind = errors.New("unknown piece kind")
	ErrOutOfBounds = errors.New("coordinate outside the board")
	ErrOccupied    = errors.New("square already occupied")
	ErrNoBoard     = errors.New("board has not been set up")
	ErrBadSide     = errors.New("side must be 0 or 1")
)

// SetupError reports a configuration problem found while setting up a game.
// These are data errors, not game conditions; hosts should abort on them.
type SetupError struct {
	Side  types.Side
	Coord types.Coord
	Entry string
	Err   error
}

func (e *SetupError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("setup %s %s: %q: %v", e.Side, e.Coord, e.Entry, e.Err)
	}
	return fmt.Sprintf("setup %s %s: %v", e.Side, e.Coord, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// SideLayout lists one side's starting ranks file by file.
// Entries are kind names or letters; "" and "." leave the file empty.
type SideLayout struct {
	Back  []string `json:"back"`
	Front []string `json:"front"`
}

// Layout maps each side to its starting ranks. Side 0's back rank is y=0 and
// its front rank y=1; side 1 mirrors this at the far edge.
type Layout map[types.Side]SideLayout

// StandardLayout is the orthodox chess arrangement.
func StandardLayout() Layout {
	back := []string{"Rook", "Knight", "Bishop", "Queen", "King", "Bishop", "Knight", "Rook"}
	front := []string{"Pawn", "Pawn", "Pawn", "Pawn", "Pawn", "Pawn", "Pawn", "Pawn"}
	return Layout{
		types.White: {Back: back, Front: front},
		types.Black: {Back: back, Front: front},
	}
}

// Placement is one resolved piece of a layout.
type Placement struct {
	Kind types.PieceKind
	Side types.Side
	At   types.Coord
}

// Resolve turns the layout into placements for a board of the given height.
// Empty entries are skipped. Any unknown entry fails the whole layout.
func (l Layout) Resolve(height int) ([]Placement, error) {
	for side := range l {
		if !side.Valid() {
			return nil, &SetupError{Side: side, Err: ErrBadSide}
		}
	}
	var out []Placement
	for _, side := range []types.Side{types.White, types.Black} {
		sl, ok := l[side]
		if !ok {
			continue
		}
		backY, frontY := 0, 1
		if side == types.Black {
			backY, frontY = height-1, height-2
		}
		for _, rank := range []struct {
			y       int
			entries []string
		}{{backY, sl.Back}, {frontY, sl.Front}} {
			for x, entry := range rank.entries {
				at := types.Coord{X: x, Y: rank.y}
				name := strings.TrimSpace(entry)
				if name == "" || name == "." {
					continue
				}
				kind, ok := types.ParseKind(name)
				if !ok {
					return nil, &SetupError{Side: side, Coord: at, Entry: entry, Err: ErrUnknownKind}
				}
				out = append(out, Placement{Kind: kind, Side: side, At: at})
			}
		}
	}
	return out, nil
}
