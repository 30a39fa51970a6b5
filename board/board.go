// Package board owns the grid of squares and the piece-on-square relation.
// It performs no rule checks; callers decide what is legal before mutating.
package board

import (
	"errors"
	"fmt"

	"tilechess/types"
)

var (
	ErrDimensions    = errors.New("board dimensions must be positive")
	ErrOccupied      = errors.New("square is occupied")
	ErrAlreadyPlaced = errors.New("piece is already on the board")
	ErrNotPlaced     = errors.New("piece is not on the board")
	ErrForeignSquare = errors.New("square belongs to another board")
)

// Square is one cell of the grid. Its coordinates never change after New.
type Square struct {
	x, y  int
	piece *Piece
}

// X returns the file of the square.
func (s *Square) X() int { return s.x }

// Y returns the rank of the square.
func (s *Square) Y() int { return s.y }

// Coord returns the square's coordinates.
func (s *Square) Coord() types.Coord {
	return types.Coord{X: s.x, Y: s.y}
}

// Piece returns the occupant, or nil.
func (s *Square) Piece() *Piece { return s.piece }

// Empty returns true if nothing occupies the square.
func (s *Square) Empty() bool { return s.piece == nil }

// Board is a width x height grid of squares.
type Board struct {
	width, height int
	squares       []Square // row-major, index y*width+x
}

// New generates every square of a width x height board.
func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	b := &Board{
		width:   width,
		height:  height,
		squares: make([]Square, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.squares[y*width+x] = Square{x: x, y: y}
		}
	}
	return b, nil
}

// Width returns the number of files.
func (b *Board) Width() int { return b.width }

// Height returns the number of ranks.
func (b *Board) Height() int { return b.height }

// SquareAt returns the square at (x, y). ok is false for out-of-range coordinates;
// movement rules probe past the edges while walking, so this never panics.
func (b *Board) SquareAt(x, y int) (*Square, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return nil, false
	}
	return &b.squares[y*b.width+x], true
}

// At is SquareAt for a Coord.
func (b *Board) At(c types.Coord) (*Square, bool) {
	return b.SquareAt(c.X, c.Y)
}

// PieceAt returns the occupant at c, or nil if c is empty or off the board.
func (b *Board) PieceAt(c types.Coord) *Piece {
	sq, ok := b.At(c)
	if !ok {
		return nil
	}
	return sq.piece
}

func (b *Board) owns(sq *Square) bool {
	if sq == nil {
		return false
	}
	own, ok := b.SquareAt(sq.x, sq.y)
	return ok && own == sq
}

// Place puts a piece that is not yet on the board onto an empty square.
func (b *Board) Place(p *Piece, sq *Square) error {
	if !b.owns(sq) {
		return ErrForeignSquare
	}
	if p.square != nil {
		return fmt.Errorf("%w: %s at %s", ErrAlreadyPlaced, p.Kind, p.square.Coord())
	}
	if sq.piece != nil {
		return fmt.Errorf("%w: %s", ErrOccupied, sq.Coord())
	}
	sq.piece = p
	p.square = sq
	return nil
}

// Vacate clears the square and detaches its occupant, which is returned (nil if empty).
func (b *Board) Vacate(sq *Square) *Piece {
	if !b.owns(sq) || sq.piece == nil {
		return nil
	}
	p := sq.piece
	sq.piece = nil
	p.square = nil
	return p
}

// Relocate moves p to dst and reports the squares whose occupancy changed.
// The destination must already have been validated; an occupant still on dst is
// detached, so callers capturing a piece should Vacate it first.
func (b *Board) Relocate(p *Piece, dst *Square) []types.Coord {
	src := p.square
	if src == nil || !b.owns(dst) || src == dst {
		return nil
	}
	if dst.piece != nil {
		dst.piece.square = nil
	}
	src.piece = nil
	dst.piece = p
	p.square = dst
	return []types.Coord{src.Coord(), dst.Coord()}
}

// Replace swaps old for repl on old's square. repl must not be on the board.
// old is detached and should be discarded.
func (b *Board) Replace(old, repl *Piece) error {
	sq := old.square
	if sq == nil {
		return ErrNotPlaced
	}
	if repl.square != nil {
		return ErrAlreadyPlaced
	}
	sq.piece = repl
	repl.square = sq
	old.square = nil
	return nil
}

// Pieces returns the pieces of side in rank-major order.
func (b *Board) Pieces(side types.Side) []*Piece {
	var out []*Piece
	for i := range b.squares {
		if p := b.squares[i].piece; p != nil && p.Side == side {
			out = append(out, p)
		}
	}
	return out
}

// Clear removes every piece.
func (b *Board) Clear() {
	for i := range b.squares {
		b.Vacate(&b.squares[i])
	}
}

// Validate checks that every occupant points back at the square holding it.
func (b *Board) Validate() error {
	for i := range b.squares {
		sq := &b.squares[i]
		if sq.piece == nil {
			continue
		}
		if sq.piece.square != sq {
			return fmt.Errorf("%s at %s points at %v", sq.piece.Kind, sq.Coord(), sq.piece.square)
		}
	}
	return nil
}
