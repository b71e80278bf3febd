package state

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go-sweep/internal/board"
	"go-sweep/internal/logx"

	"github.com/looplab/fsm"
)

type Options struct {
	// Rand drives mine placement. A nil Rand is seeded from the runtime.
	Rand *rand.Rand
	// Layout, when set, fixes the mines instead of placing them randomly.
	// The first click is not protected in that case.
	Layout []board.Coordinate
	Logger logx.Logger
}

type State struct {
	Board     *board.Board
	FSM       *fsm.FSM
	Win       bool
	Loss      bool
	Target    board.Coordinate    // tile being revealed
	Outcome   board.RevealOutcome // result of the last reveal
	Err       error               // placement failure from the last first click
	LossHints map[board.Coordinate]board.DisplayHint
	Options   Options
}

func NewState(cfg board.Config, opts Options) (*State, error) {
	b, err := board.NewBoard(cfg)
	if err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}

	s := &State{
		Board:   b,
		Options: opts,
	}
	s.FSM = fsm.NewFSM(
		stAwaiting,
		getStateTransitions(),
		getStateCallbacks(s),
	)
	return s, nil
}

// Reveal handles a primary click. Clicks off the board or after the game has
// ended change nothing. The only error is a first click on a board whose
// mines cannot be placed around it.
func (s *State) Reveal(ctx context.Context, c board.Coordinate) (board.RevealOutcome, error) {
	if !s.Board.InBounds(c) {
		return board.RevealOutcome{Kind: board.NoChange}, nil
	}

	s.Target = c
	s.Outcome = board.RevealOutcome{Kind: board.NoChange}
	s.Err = nil

	var err error
	switch s.FSM.Current() {
	case stAwaiting:
		err = s.FSM.Event(ctx, "open", c)
	case stActive:
		err = s.FSM.Event(ctx, "reveal", c)
	default:
		return s.Outcome, nil
	}
	if s.Err != nil {
		return s.Outcome, s.Err
	}
	if err != nil {
		return s.Outcome, fmt.Errorf("reveal %s: %w", c, err)
	}
	return s.Outcome, nil
}

// ToggleFlag handles a secondary click. Flags can only be placed while the
// game is active.
func (s *State) ToggleFlag(c board.Coordinate) board.FlagOutcome {
	if s.Phase() != Active {
		return board.FlagUnchanged
	}
	return s.Board.ToggleFlag(c)
}

func (s *State) placeMines(c board.Coordinate) error {
	if s.Options.Layout != nil {
		return s.Board.PlaceMinesAt(s.Options.Layout)
	}
	return s.Board.PlaceMines(c, s.Options.Rand)
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		// First click
		{Name: "open", Src: []string{stAwaiting}, Dst: stPlacing},
		{Name: "abort", Src: []string{stPlacing}, Dst: stAwaiting},
		{Name: "mined", Src: []string{stPlacing}, Dst: stResolving},

		// Later clicks
		{Name: "reveal", Src: []string{stActive}, Dst: stResolving},

		// Outcome of a reveal
		{Name: "detonate", Src: []string{stResolving}, Dst: stLost},
		{Name: "clear", Src: []string{stResolving}, Dst: stWon},
		{Name: "settle", Src: []string{stResolving}, Dst: stActive},
	}
}

func getStateCallbacks(s *State) map[string]fsm.Callback {
	log := s.Options.Logger
	return fsm.Callbacks{
		"enter_" + stPlacing: func(ctx context.Context, e *fsm.Event) {
			if err := s.placeMines(s.Target); err != nil {
				log.Warnw("mine placement failed", "safe", s.Target.String(), "error", err)
				s.Err = err
				e.FSM.Event(ctx, "abort")
				return
			}
			log.Debugw("mines placed", "safe", s.Target.String(), "board", s.Board.Config().Key())
			e.FSM.Event(ctx, "mined")
		},
		"enter_" + stResolving: func(ctx context.Context, e *fsm.Event) {
			s.Outcome = s.Board.Reveal(s.Target)

			if s.Outcome.Kind == board.HitMine {
				e.FSM.Event(ctx, "detonate")
				return
			}
			if s.Board.IsCleared() {
				e.FSM.Event(ctx, "clear")
				return
			}
			e.FSM.Event(ctx, "settle")
		},
		"enter_" + stLost: func(ctx context.Context, e *fsm.Event) {
			s.Loss = true
			s.LossHints = s.Board.LossHints()
			log.Infow("mine hit", "tile", s.Target.String(), "board", s.Board.Config().Key())
		},
		"enter_" + stWon: func(ctx context.Context, e *fsm.Event) {
			s.Win = true
			log.Infow("board cleared", "board", s.Board.Config().Key())
		},
	}
}
