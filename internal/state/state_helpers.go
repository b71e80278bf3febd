package state

import (
	"fmt"

	"go-sweep/internal/board"
)

// Phase is the externally visible stage of a game. The machine passes through
// internal states while handling a click, but callers only ever observe these.
type Phase int

const (
	AwaitingFirstClick Phase = iota
	Active
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case AwaitingFirstClick:
		return "awaiting first click"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == Won || p == Lost
}

// FSM state names.
const (
	stAwaiting  = "awaitingFirstClick"
	stPlacing   = "placingMines"
	stResolving = "resolving"
	stActive    = "active"
	stWon       = "won"
	stLost      = "lost"
)

func phaseOf(current string) Phase {
	switch current {
	case stActive, stResolving:
		return Active
	case stWon:
		return Won
	case stLost:
		return Lost
	default:
		return AwaitingFirstClick
	}
}

func (s *State) Phase() Phase {
	return phaseOf(s.FSM.Current())
}

// TileView returns the snapshot of c with the end-of-game pictures applied.
func (s *State) TileView(c board.Coordinate) (board.TileSnapshot, bool) {
	snap, ok := s.Board.Snapshot(c)
	if !ok {
		return snap, false
	}
	switch {
	case s.Loss:
		if hint, marked := s.LossHints[c]; marked {
			snap.Hint = hint
		}
	case s.Win:
		if snap.Covered {
			snap.Hint = board.HintFlagged
		}
	}
	return snap, true
}

// MinesRemaining is the mine count minus the flags placed. It goes negative
// when the player over-flags.
func (s *State) MinesRemaining() int {
	return s.Board.MineCount() - s.Board.FlagCount()
}
