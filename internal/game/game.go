package game

import (
	"context"

	"go-sweep/internal/board"
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"
)

// Game is one board from first click to win or loss, independent of the UI.
type Game struct {
	State        *state.State
	Score        *scoring.Scoring // nil when records are disabled
	Elapsed      int              // seconds spent in the active phase
	TimerEnabled bool
}

// NewGame builds a fresh board awaiting its first click.
func NewGame(cfg board.Config, opts state.Options, score *scoring.Scoring, timerEnabled bool) (*Game, error) {
	st, err := state.NewState(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Game{
		State:        st,
		Score:        score,
		TimerEnabled: timerEnabled,
	}, nil
}

// HandleTick advances the clock by one second while the game is active.
func (g *Game) HandleTick() {
	if !g.TimerEnabled || g.State.Phase() != state.Active {
		return
	}
	g.Elapsed++
}

// HandlePrimaryClick reveals c.
func (g *Game) HandlePrimaryClick(c board.Coordinate) (board.RevealOutcome, error) {
	if g.State.Phase().Over() {
		return board.RevealOutcome{Kind: board.NoChange}, nil
	}
	// No cancellation applies to a single click.
	return g.State.Reveal(context.Background(), c)
}

// HandleSecondaryClick toggles the flag on c.
func (g *Game) HandleSecondaryClick(c board.Coordinate) board.FlagOutcome {
	return g.State.ToggleFlag(c)
}
