package board

import (
	"errors"
	"testing"

	"tilechess/types"
)

func mustBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	b, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return b
}

func mustSquare(t *testing.T, b *Board, x, y int) *Square {
	t.Helper()
	sq, ok := b.SquareAt(x, y)
	if !ok {
		t.Fatalf("SquareAt(%d, %d) missing", x, y)
	}
	return sq
}

func TestNewRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, 3}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrDimensions) {
			t.Errorf("New(%d, %d) err = %v, want ErrDimensions", dims[0], dims[1], err)
		}
	}
}

func TestSquareAt(t *testing.T) {
	b := mustBoard(t, 8, 6)
	if b.Width() != 8 || b.Height() != 6 {
		t.Fatalf("size = %dx%d, want 8x6", b.Width(), b.Height())
	}

	sq := mustSquare(t, b, 7, 5)
	if sq.X() != 7 || sq.Y() != 5 {
		t.Errorf("square coords = (%d, %d), want (7, 5)", sq.X(), sq.Y())
	}

	outside := []types.Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 8, Y: 0}, {X: 0, Y: 6}, {X: 100, Y: 100}}
	for _, c := range outside {
		if _, ok := b.At(c); ok {
			t.Errorf("At(%v) should be absent", c)
		}
		if p := b.PieceAt(c); p != nil {
			t.Errorf("PieceAt(%v) = %v, want nil", c, p)
		}
	}
}

func TestPlaceAndVacate(t *testing.T) {
	b := mustBoard(t, 8, 8)
	sq := mustSquare(t, b, 3, 3)
	p := NewPiece(types.Rook, types.White)

	if err := b.Place(p, sq); err != nil {
		t.Fatalf("Place: %v", err)
	}
	if sq.Piece() != p || p.Square() != sq {
		t.Fatal("occupancy and back-reference disagree after Place")
	}

	if err := b.Place(NewPiece(types.Pawn, types.Black), sq); !errors.Is(err, ErrOccupied) {
		t.Errorf("Place on occupied square err = %v, want ErrOccupied", err)
	}
	if err := b.Place(p, mustSquare(t, b, 0, 0)); !errors.Is(err, ErrAlreadyPlaced) {
		t.Errorf("Place of placed piece err = %v, want ErrAlreadyPlaced", err)
	}

	other := mustBoard(t, 8, 8)
	if err := b.Place(NewPiece(types.Pawn, types.Black), mustSquare(t, other, 0, 0)); !errors.Is(err, ErrForeignSquare) {
		t.Errorf("Place on foreign square err = %v, want ErrForeignSquare", err)
	}

	if got := b.Vacate(sq); got != p {
		t.Errorf("Vacate returned %v, want the rook", got)
	}
	if !sq.Empty() || p.Square() != nil {
		t.Error("Vacate left occupancy behind")
	}
	if got := b.Vacate(sq); got != nil {
		t.Errorf("Vacate of empty square = %v, want nil", got)
	}
}

func TestRelocate(t *testing.T) {
	b := mustBoard(t, 8, 8)
	src := mustSquare(t, b, 0, 0)
	dst := mustSquare(t, b, 0, 5)
	p := NewPiece(types.Rook, types.White)
	if err := b.Place(p, src); err != nil {
		t.Fatal(err)
	}

	touched := b.Relocate(p, dst)
	want := []types.Coord{{X: 0, Y: 0}, {X: 0, Y: 5}}
	if len(touched) != 2 || touched[0] != want[0] || touched[1] != want[1] {
		t.Errorf("touched = %v, want %v", touched, want)
	}
	if !src.Empty() || dst.Piece() != p || p.Square() != dst {
		t.Error("Relocate did not move occupancy atomically")
	}
	if got := b.Relocate(p, dst); got != nil {
		t.Errorf("Relocate onto own square = %v, want nil", got)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRelocateDetachesLeftoverOccupant(t *testing.T) {
	b := mustBoard(t, 4, 4)
	a := NewPiece(types.Queen, types.White)
	d := NewPiece(types.Knight, types.Black)
	if err := b.Place(a, mustSquare(t, b, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := b.Place(d, mustSquare(t, b, 2, 2)); err != nil {
		t.Fatal(err)
	}

	b.Relocate(a, mustSquare(t, b, 2, 2))
	if d.Square() != nil {
		t.Error("overwritten occupant still has a back-reference")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReplace(t *testing.T) {
	b := mustBoard(t, 8, 8)
	sq := mustSquare(t, b, 3, 7)
	pawn := NewPiece(types.Pawn, types.White)
	pawn.Moved = true
	if err := b.Place(pawn, sq); err != nil {
		t.Fatal(err)
	}

	queen := NewPiece(types.Queen, types.White)
	if err := b.Replace(pawn, queen); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if sq.Piece() != queen || queen.Square() != sq || pawn.Square() != nil {
		t.Error("Replace left inconsistent occupancy")
	}
	if err := b.Replace(pawn, NewPiece(types.Queen, types.White)); !errors.Is(err, ErrNotPlaced) {
		t.Errorf("Replace of detached piece err = %v, want ErrNotPlaced", err)
	}
}

func TestPiecesAndClear(t *testing.T) {
	b := mustBoard(t, 8, 8)
	for x := 0; x < 8; x++ {
		if err := b.Place(NewPiece(types.Pawn, types.White), mustSquare(t, b, x, 1)); err != nil {
			t.Fatal(err)
		}
		if err := b.Place(NewPiece(types.Pawn, types.Black), mustSquare(t, b, x, 6)); err != nil {
			t.Fatal(err)
		}
	}
	if n := len(b.Pieces(types.White)); n != 8 {
		t.Errorf("white pieces = %d, want 8", n)
	}
	if n := len(b.Pieces(types.Black)); n != 8 {
		t.Errorf("black pieces = %d, want 8", n)
	}

	all := append(b.Pieces(types.White), b.Pieces(types.Black)...)
	b.Clear()
	if n := len(b.Pieces(types.White)) + len(b.Pieces(types.Black)); n != 0 {
		t.Errorf("pieces after Clear = %d, want 0", n)
	}
	for _, p := range all {
		if p.Square() != nil {
			t.Fatalf("%s kept its square after Clear", p)
		}
	}
}
