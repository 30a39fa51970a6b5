package rules

import (
	"tilechess/board"
	"tilechess/types"
)

var knightOffsets = [8][2]int{
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
}

// King accepts any square within one step in each axis. The null move passes this
// test; the game state rejects moves onto the piece's own square separately.
func King(b *board.Board, p *board.Piece, target *board.Square) bool {
	_, dx, dy, ok := delta(b, p, target)
	return ok && abs(dx) <= 1 && abs(dy) <= 1
}

// Knight accepts the eight fixed L-shaped offsets and ignores blockers.
func Knight(b *board.Board, p *board.Piece, target *board.Square) bool {
	_, dx, dy, ok := delta(b, p, target)
	if !ok {
		return false
	}
	for _, off := range knightOffsets {
		if off[0] == dx && off[1] == dy {
			return true
		}
	}
	return false
}

// Rook accepts pure horizontal or vertical moves over an empty path.
func Rook(b *board.Board, p *board.Piece, target *board.Square) bool {
	from, dx, dy, ok := delta(b, p, target)
	if !ok || (dx == 0) == (dy == 0) {
		return false
	}
	return walk(b, from, sign(dx), sign(dy), max(abs(dx), abs(dy)), target)
}

// Bishop accepts diagonal moves over an empty path. The diagonal test compares
// absolute deltas, so a same-rank or same-file target is simply rejected.
func Bishop(b *board.Board, p *board.Piece, target *board.Square) bool {
	from, dx, dy, ok := delta(b, p, target)
	if !ok || dx == 0 || abs(dx) != abs(dy) {
		return false
	}
	return walk(b, from, sign(dx), sign(dy), abs(dx), target)
}

// Queen is the union of Rook and Bishop.
func Queen(b *board.Board, p *board.Piece, target *board.Square) bool {
	return Rook(b, p, target) || Bishop(b, p, target)
}

// Pawn advances one square (two if it has not moved and the path is clear) onto an
// empty square, or steps diagonally forward onto an occupied one.
func Pawn(b *board.Board, p *board.Piece, target *board.Square) bool {
	from, dx, dy, ok := delta(b, p, target)
	if !ok {
		return false
	}
	dir := Direction(p.Side)

	if !target.Empty() {
		return abs(dx) == 1 && dy == dir
	}
	if dx != 0 {
		return false
	}
	switch dy {
	case dir:
		return true
	case 2 * dir:
		if p.Moved {
			return false
		}
		mid, found := b.SquareAt(from.X, from.Y+dir)
		return found && mid.Empty()
	}
	return false
}

// Direction is the forward rank step of a side's pawns.
func Direction(side types.Side) int {
	if side == types.White {
		return 1
	}
	return -1
}

// PromotionRank is the far rank for side on a board of the given height.
func PromotionRank(side types.Side, height int) int {
	if side == types.White {
		return height - 1
	}
	return 0
}

// Promotes reports whether p is a pawn standing on its promotion rank.
func Promotes(b *board.Board, p *board.Piece) bool {
	c, ok := p.Coord()
	return ok && p.Kind == types.Pawn && c.Y == PromotionRank(p.Side, b.Height())
}
