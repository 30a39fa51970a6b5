// Package engine defines the interface between the presentation layer and a game engine.
package engine

import "tilechess/types"

// GameEngine is the API the presentation layer drives. Every intent is applied
// fully or not at all; rejected intents leave the game untouched.
type GameEngine interface {
	// SetupBoard creates an empty board of the given size and resets the turn.
	SetupBoard(width, height int) error

	// PlaceInitialPieces fills both sides' starting ranks from layout.
	// An unknown kind aborts setup and leaves the board as it was.
	PlaceInitialPieces(layout Layout) error

	// PlacePiece places a single piece on an empty square during setup.
	PlacePiece(kind types.PieceKind, side types.Side, at types.Coord) error

	// Select holds the piece at c if it belongs to the side to move.
	Select(c types.Coord) bool

	// Deselect drops the held piece. It always succeeds.
	Deselect()

	// AttemptMove moves the held piece to c.
	AttemptMove(c types.Coord) types.MoveResult

	// Held returns the coordinates of the held piece.
	Held() (types.Coord, bool)

	// Targets returns the squares the held piece may move to.
	Targets() []types.Coord

	// Snapshot returns a copy of the board for rendering.
	Snapshot() *types.Snapshot

	// CurrentTurn returns ToMove(side) or GameOver.
	CurrentTurn() types.TurnState

	// Reset rebuilds the last setup for a new game.
	Reset() error

	// OnHeldChanged registers a callback for selection changes. ok is false when nothing is held.
	OnHeldChanged(func(c types.Coord, ok bool))

	// OnTurnChanged registers a callback for turn changes, including the switch to GameOver.
	OnTurnChanged(func(turn types.TurnState))

	// OnCapture registers a callback for captures.
	OnCapture(func(ev types.CaptureEvent))

	// OnGameEnd registers a callback for when a king is captured.
	OnGameEnd(func(winner types.Side))
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Width        int
	Height       int
	StartingSide types.Side
	Layout       Layout
}

// DefaultConfig returns the standard 8x8 setup with side 0 moving first.
func DefaultConfig() GameConfig {
	return GameConfig{
		Width:        8,
		Height:       8,
		StartingSide: types.White,
		Layout:       StandardLayout(),
	}
}
