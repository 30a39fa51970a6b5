package board

import "tilechess/types"

// Piece is a single piece instance. Moved only matters for pawns.
type Piece struct {
	Kind  types.PieceKind
	Side  types.Side
	Moved bool

	square *Square // maintained by Board
}

// NewPiece creates a piece that is not yet on any board.
func NewPiece(kind types.PieceKind, side types.Side) *Piece {
	return &Piece{Kind: kind, Side: side}
}

// Square returns the square the piece occupies, or nil once removed.
func (p *Piece) Square() *Square {
	return p.square
}

// Coord returns the piece's coordinates. ok is false if it is off the board.
func (p *Piece) Coord() (types.Coord, bool) {
	if p.square == nil {
		return types.Coord{}, false
	}
	return p.square.Coord(), true
}

func (p *Piece) String() string {
	return p.Side.String() + " " + p.Kind.String()
}
