package local

import (
	"tilechess/board"
	"tilechess/rules"
	"tilechess/types"
)

// Select holds the piece at c if it belongs to the side to move.
// Selecting another own piece while one is held switches the selection.
func (g *GameState) Select(c types.Coord) bool {
	g.mu.Lock()

	if g.board == nil || g.turn.State().Over {
		g.mu.Unlock()
		debugLog.Printf("Select %s: game not running", c)
		return false
	}
	p := g.board.PieceAt(c)
	if p == nil {
		g.mu.Unlock()
		debugLog.Printf("Select %s: no piece", c)
		return false
	}
	if !g.turn.IsToMove(p.Side) {
		g.mu.Unlock()
		debugLog.Printf("Select %s: %s is not to move", c, p)
		return false
	}
	changed := g.held != p
	g.held = p
	g.mu.Unlock()

	debugLog.Printf("Select %s: holding %s", c, p)
	if changed {
		g.notifyHeld(c, true)
	}
	return true
}

// Deselect drops the held piece.
func (g *GameState) Deselect() {
	g.mu.Lock()
	had := g.held != nil
	g.held = nil
	g.mu.Unlock()

	if had {
		g.notifyHeld(types.Coord{}, false)
	}
}

// Targets returns the squares the held piece may move to, after the same
// own-square and same-side checks AttemptMove applies.
func (g *GameState) Targets() []types.Coord {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held == nil || g.turn.State().Over {
		return nil
	}
	var out []types.Coord
	for _, c := range rules.Targets(g.board, g.held) {
		sq, _ := g.board.At(c)
		if g.arbitrate(g.held, sq) {
			out = append(out, c)
		}
	}
	return out
}

// arbitrate applies the occupancy rules the geometric predicates leave out:
// a piece never moves onto its own square or onto a piece of its own side.
func (g *GameState) arbitrate(p *board.Piece, dst *board.Square) bool {
	if dst == p.Square() {
		return false
	}
	if occ := dst.Piece(); occ != nil && occ.Side == p.Side {
		return false
	}
	return true
}

// AttemptMove moves the held piece to c. A rejected attempt changes nothing and
// keeps the selection so another target can be tried.
func (g *GameState) AttemptMove(c types.Coord) types.MoveResult {
	invalid := types.MoveResult{Outcome: types.Invalid, Mover: types.NoKind, Captured: types.NoKind}

	g.mu.Lock()

	if g.board == nil || g.turn.State().Over {
		g.mu.Unlock()
		debugLog.Printf("AttemptMove %s: game not running", c)
		return invalid
	}
	p := g.held
	if p == nil {
		g.mu.Unlock()
		debugLog.Printf("AttemptMove %s: nothing held", c)
		return invalid
	}
	dst, ok := g.board.At(c)
	if !ok {
		g.mu.Unlock()
		debugLog.Printf("AttemptMove %s: off the board", c)
		return invalid
	}
	if !g.arbitrate(p, dst) || !rules.Legal(g.board, p, dst) {
		g.mu.Unlock()
		debugLog.Printf("AttemptMove %s: illegal for %s", c, p)
		return invalid
	}

	from, _ := p.Coord()
	res := types.MoveResult{
		Outcome:  types.Moved,
		Mover:    p.Kind,
		Captured: types.NoKind,
		From:     from,
		To:       c,
	}

	defender := g.board.Vacate(dst)
	res.Touched = g.board.Relocate(p, dst)
	p.Moved = true
	g.held = nil

	if rules.Promotes(g.board, p) {
		queen := board.NewPiece(types.Queen, p.Side)
		if err := g.board.Replace(p, queen); err == nil {
			res.Promoted = true
		}
	}

	g.moveNumber++
	g.lastMove = &[2]types.Coord{from, c}

	var capture *types.CaptureEvent
	if defender != nil {
		res.Captured = defender.Kind
		res.Outcome = types.Captured
		capture = &types.CaptureEvent{
			Attacker:     res.Mover,
			AttackerSide: p.Side,
			Defender:     defender.Kind,
			DefenderSide: defender.Side,
			At:           c,
		}
	}

	ended := false
	if defender != nil && defender.Kind == types.King {
		ended = g.turn.End(p.Side)
		res.Outcome = types.GameOver
	} else {
		g.turn.Advance()
	}
	turn := g.turn.State()
	g.mu.Unlock()

	debugLog.Printf("AttemptMove %s->%s: %s %s (captured %s, promoted %v)", from, c, p.Side, res.Outcome, res.Captured, res.Promoted)

	g.notifyHeld(types.Coord{}, false)
	if capture != nil && g.captureCallback != nil {
		g.captureCallback(*capture)
	}
	g.notifyTurn(turn)
	if ended && g.endCallback != nil {
		g.endCallback(turn.Winner)
	}
	return res
}
