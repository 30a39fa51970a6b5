// Package rules implements the movement legality predicates.
//
// Every predicate is a pure geometric query over (board, moving piece, target
// square). None of them checks whose turn it is or which side owns the target's
// occupant; that arbitration belongs to the game state.
package rules

import (
	"golang.org/x/exp/constraints"

	"tilechess/board"
	"tilechess/types"
)

// Predicate decides whether p may move to target.
type Predicate func(b *board.Board, p *board.Piece, target *board.Square) bool

// For returns the predicate for a kind, or nil for NoKind.
func For(kind types.PieceKind) Predicate {
	switch kind {
	case types.Pawn:
		return Pawn
	case types.Rook:
		return Rook
	case types.Knight:
		return Knight
	case types.Bishop:
		return Bishop
	case types.Queen:
		return Queen
	case types.King:
		return King
	}
	return nil
}

// Legal dispatches to the predicate matching p.Kind.
func Legal(b *board.Board, p *board.Piece, target *board.Square) bool {
	pred := For(p.Kind)
	if pred == nil {
		return false
	}
	return pred(b, p, target)
}

// Targets lists every square of b that p's predicate accepts, in rank-major order.
func Targets(b *board.Board, p *board.Piece) []types.Coord {
	pred := For(p.Kind)
	if pred == nil || p.Square() == nil {
		return nil
	}
	var out []types.Coord
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			sq, _ := b.SquareAt(x, y)
			if pred(b, p, sq) {
				out = append(out, sq.Coord())
			}
		}
	}
	return out
}

// delta returns the piece's origin and the offset to target.
// ok is false when the piece is off the board or target is not one of b's squares.
func delta(b *board.Board, p *board.Piece, target *board.Square) (from types.Coord, dx, dy int, ok bool) {
	if target == nil {
		return from, 0, 0, false
	}
	from, placed := p.Coord()
	if !placed {
		return from, 0, 0, false
	}
	if own, found := b.SquareAt(target.X(), target.Y()); !found || own != target {
		return from, 0, 0, false
	}
	return from, target.X() - from.X, target.Y() - from.Y, true
}

// walk steps from origin toward target one square at a time. An occupied square
// before the target blocks; reaching the target, empty or not, succeeds.
func walk(b *board.Board, from types.Coord, stepX, stepY, steps int, target *board.Square) bool {
	for i := 1; i <= steps; i++ {
		sq, ok := b.SquareAt(from.X+i*stepX, from.Y+i*stepY)
		if !ok {
			return false
		}
		if sq == target {
			return true
		}
		if !sq.Empty() {
			return false
		}
	}
	return false
}

func abs[T constraints.Signed](v T) T {
	if v < 0 {
		return -v
	}
	return v
}

func sign[T constraints.Signed](v T) T {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
