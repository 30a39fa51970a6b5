// Package local implements engine.GameEngine in process: a board, a turn
// controller and the orchestration that validates and applies intents.
package local

import (
	"fmt"
	"io"
	"log"
	"sync"

	"tilechess/board"
	"tilechess/engine"
	"tilechess/types"
)

var debugLog = log.New(io.Discard, "engine ", log.Ltime|log.Lmicroseconds)

// SetDebugOutput sends the engine's debug log to w.
func SetDebugOutput(w io.Writer) {
	debugLog.SetOutput(w)
}

// GameState is the sole mutator of its board and turn controller.
//
// Intents are serialized by mu; callbacks run after the intent has finished and
// the lock has been released, so they may call back into the GameState.
type GameState struct {
	mu sync.Mutex

	start  types.Side
	width  int
	height int
	setup  []engine.Placement // everything placed since the last SetupBoard, for Reset

	board      *board.Board
	turn       *TurnController
	held       *board.Piece
	moveNumber int
	lastMove   *[2]types.Coord

	heldCallback    func(c types.Coord, ok bool)
	turnCallback    func(turn types.TurnState)
	captureCallback func(ev types.CaptureEvent)
	endCallback     func(winner types.Side)
}

var _ engine.GameEngine = (*GameState)(nil)

// NewGameState wraps an existing board and turn controller. Pieces already on b
// become part of the setup restored by Reset.
func NewGameState(b *board.Board, turn *TurnController) *GameState {
	g := &GameState{
		start:  turn.State().Side,
		width:  b.Width(),
		height: b.Height(),
		board:  b,
		turn:   turn,
	}
	for _, side := range []types.Side{types.White, types.Black} {
		for _, p := range b.Pieces(side) {
			c, _ := p.Coord()
			g.setup = append(g.setup, engine.Placement{Kind: p.Kind, Side: p.Side, At: c})
		}
	}
	return g
}

// New sets up a game from cfg. A nil layout leaves the board empty.
func New(cfg engine.GameConfig) (*GameState, error) {
	if !cfg.StartingSide.Valid() {
		return nil, &engine.SetupError{Side: cfg.StartingSide, Err: engine.ErrBadSide}
	}
	g := &GameState{start: cfg.StartingSide}
	if err := g.SetupBoard(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if cfg.Layout != nil {
		if err := g.PlaceInitialPieces(cfg.Layout); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// SetupBoard replaces the board with an empty width x height one and restarts the turn.
func (g *GameState) SetupBoard(width, height int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.setupBoard(width, height)
}

func (g *GameState) setupBoard(width, height int) error {
	b, err := board.New(width, height)
	if err != nil {
		return fmt.Errorf("setup board: %w", err)
	}
	g.board = b
	g.width, g.height = width, height
	g.turn = NewTurnController(g.start)
	g.held = nil
	g.moveNumber = 0
	g.lastMove = nil
	g.setup = nil
	debugLog.Printf("SetupBoard: %dx%d, %s", width, height, g.turn.State())
	return nil
}

// PlaceInitialPieces places both sides' starting ranks. The layout is checked in
// full before the first piece is placed.
func (g *GameState) PlaceInitialPieces(layout engine.Layout) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board == nil {
		return &engine.SetupError{Err: engine.ErrNoBoard}
	}
	placements, err := layout.Resolve(g.height)
	if err != nil {
		debugLog.Printf("PlaceInitialPieces: %v", err)
		return err
	}
	seen := make(map[types.Coord]bool, len(placements))
	for _, pl := range placements {
		sq, ok := g.board.At(pl.At)
		if !ok {
			return &engine.SetupError{Side: pl.Side, Coord: pl.At, Entry: pl.Kind.String(), Err: engine.ErrOutOfBounds}
		}
		if !sq.Empty() || seen[pl.At] {
			return &engine.SetupError{Side: pl.Side, Coord: pl.At, Entry: pl.Kind.String(), Err: engine.ErrOccupied}
		}
		seen[pl.At] = true
	}
	for _, pl := range placements {
		if err := g.place(pl); err != nil {
			return err
		}
	}
	debugLog.Printf("PlaceInitialPieces: placed %d pieces", len(placements))
	return nil
}

// PlacePiece places one piece on an empty square.
func (g *GameState) PlacePiece(kind types.PieceKind, side types.Side, at types.Coord) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board == nil {
		return &engine.SetupError{Side: side, Coord: at, Err: engine.ErrNoBoard}
	}
	if !side.Valid() {
		return &engine.SetupError{Side: side, Coord: at, Err: engine.ErrBadSide}
	}
	if kind < types.Pawn || kind >= types.NoKind {
		return &engine.SetupError{Side: side, Coord: at, Entry: kind.String(), Err: engine.ErrUnknownKind}
	}
	return g.place(engine.Placement{Kind: kind, Side: side, At: at})
}

func (g *GameState) place(pl engine.Placement) error {
	sq, ok := g.board.At(pl.At)
	if !ok {
		return &engine.SetupError{Side: pl.Side, Coord: pl.At, Entry: pl.Kind.String(), Err: engine.ErrOutOfBounds}
	}
	if !sq.Empty() {
		return &engine.SetupError{Side: pl.Side, Coord: pl.At, Entry: pl.Kind.String(), Err: engine.ErrOccupied}
	}
	if err := g.board.Place(board.NewPiece(pl.Kind, pl.Side), sq); err != nil {
		return &engine.SetupError{Side: pl.Side, Coord: pl.At, Entry: pl.Kind.String(), Err: err}
	}
	g.setup = append(g.setup, pl)
	return nil
}

// Reset rebuilds the board from the recorded setup and restarts the game.
func (g *GameState) Reset() error {
	g.mu.Lock()
	setup := g.setup
	if err := g.setupBoard(g.width, g.height); err != nil {
		g.mu.Unlock()
		return err
	}
	for _, pl := range setup {
		if err := g.place(pl); err != nil {
			g.mu.Unlock()
			return err
		}
	}
	turn := g.turn.State()
	g.mu.Unlock()

	debugLog.Printf("Reset: %d pieces restored", len(setup))
	g.notifyHeld(types.Coord{}, false)
	g.notifyTurn(turn)
	return nil
}

// CurrentTurn returns the turn state.
func (g *GameState) CurrentTurn() types.TurnState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.turn.State()
}

// Held returns the coordinates of the held piece.
func (g *GameState) Held() (types.Coord, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held == nil {
		return types.Coord{}, false
	}
	return g.held.Coord()
}

// Snapshot copies the board for rendering.
func (g *GameState) Snapshot() *types.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.board == nil {
		return types.NewSnapshot(0, 0)
	}
	snap := types.NewSnapshot(g.board.Width(), g.board.Height())
	for y := 0; y < g.board.Height(); y++ {
		for x := 0; x < g.board.Width(); x++ {
			sq, _ := g.board.SquareAt(x, y)
			if p := sq.Piece(); p != nil {
				snap.Cells[y][x] = types.Cell{Kind: p.Kind, Side: p.Side}
			}
		}
	}
	snap.Turn = g.turn.State()
	snap.MoveNumber = g.moveNumber
	if g.held != nil {
		if c, ok := g.held.Coord(); ok {
			snap.Held = &c
		}
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		snap.LastMove = &lm
	}
	return snap
}

// OnHeldChanged registers a callback for selection changes.
func (g *GameState) OnHeldChanged(callback func(c types.Coord, ok bool)) {
	g.heldCallback = callback
}

// OnTurnChanged registers a callback for turn changes.
func (g *GameState) OnTurnChanged(callback func(turn types.TurnState)) {
	g.turnCallback = callback
}

// OnCapture registers a callback for captures.
func (g *GameState) OnCapture(callback func(ev types.CaptureEvent)) {
	g.captureCallback = callback
}

// OnGameEnd registers a callback for when the game ends.
func (g *GameState) OnGameEnd(callback func(winner types.Side)) {
	g.endCallback = callback
}

func (g *GameState) notifyHeld(c types.Coord, ok bool) {
	if g.heldCallback != nil {
		g.heldCallback(c, ok)
	}
}

func (g *GameState) notifyTurn(turn types.TurnState) {
	if g.turnCallback != nil {
		g.turnCallback(turn)
	}
}
