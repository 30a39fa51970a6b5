package local

import "tilechess/types"

// TurnController tracks whose turn it is. GameOver is terminal: once ended,
// neither Advance nor End changes the state again.
type TurnController struct {
	state types.TurnState
}

// NewTurnController starts with start to move.
func NewTurnController(start types.Side) *TurnController {
	return &TurnController{state: types.ToMove(start)}
}

// State returns the current turn state.
func (t *TurnController) State() types.TurnState {
	return t.state
}

// IsToMove returns true if the game is running and side is to move.
func (t *TurnController) IsToMove(side types.Side) bool {
	return !t.state.Over && t.state.Side == side
}

// Advance passes the turn to the other side. Returns false once the game is over.
func (t *TurnController) Advance() bool {
	if t.state.Over {
		return false
	}
	t.state.Side = t.state.Side.Other()
	return true
}

// End moves to GameOver with winner. Returns false if the game had already ended.
func (t *TurnController) End(winner types.Side) bool {
	if t.state.Over {
		return false
	}
	t.state = types.TurnState{Side: t.state.Side, Over: true, Winner: winner}
	return true
}
