package game

import (
	"fmt"
	"math/rand/v2"

	"go-sweep/internal/board"
	"go-sweep/internal/logx"
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"
)

type Options struct {
	// Rand drives every board of the session. A nil Rand is seeded from the runtime.
	Rand *rand.Rand
	// Storage persists finished games. Records are disabled when nil.
	Storage      scoring.RecordStorage
	Logger       logx.Logger
	TimerEnabled bool
}

// Session is the engine's face towards the presentation layer. It owns the
// current game and replaces it wholesale on every reset.
type Session struct {
	CurrentGame *Game
	Difficulty  board.Difficulty
	Config      board.Config
	Layout      *Layout // fixed mines for the current board, if any
	Options     Options
}

// NewSession starts a game of the given difficulty awaiting its first click.
func NewSession(d board.Difficulty, opts Options) (*Session, error) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = logx.Nop()
	}
	s := &Session{Options: opts}
	if err := s.SetDifficulty(d); err != nil {
		return nil, err
	}
	return s, nil
}

// SetDifficulty discards the current board and starts a preset one.
// It is accepted in every phase.
func (s *Session) SetDifficulty(d board.Difficulty) error {
	if err := s.start(d.Config(), nil); err != nil {
		return err
	}
	s.Difficulty = d
	return nil
}

// SetConfig discards the current board and starts a custom one.
func (s *Session) SetConfig(cfg board.Config) error {
	return s.start(cfg, nil)
}

// SetLayout discards the current board and starts one with fixed mines.
func (s *Session) SetLayout(l *Layout) error {
	return s.start(l.Config, l)
}

// Reset starts a new board with the current shape (and layout, if any).
func (s *Session) Reset() error {
	return s.start(s.Config, s.Layout)
}

// start swaps in a new game only once it has been built.
func (s *Session) start(cfg board.Config, layout *Layout) error {
	var score *scoring.Scoring
	if s.Options.Storage != nil {
		sc, err := scoring.InitScoring(cfg.Key(), s.Options.Storage)
		if err != nil {
			return err
		}
		score = sc
	}

	opts := state.Options{
		Rand:   s.Options.Rand,
		Logger: s.Options.Logger,
	}
	if layout != nil {
		opts.Layout = layout.Mines
	}

	g, err := NewGame(cfg, opts, score, s.Options.TimerEnabled)
	if err != nil {
		return fmt.Errorf("new %s board: %w", cfg.Key(), err)
	}

	s.Config = cfg
	s.Layout = layout
	s.CurrentGame = g
	s.Options.Logger.Infow("new game", "board", cfg.Key(), "fixed_layout", layout != nil)
	return nil
}

// HandlePrimaryClick reveals c. Clicks off the board or after the game has
// ended are ignored.
func (s *Session) HandlePrimaryClick(c board.Coordinate) (board.RevealOutcome, error) {
	out, err := s.CurrentGame.HandlePrimaryClick(c)
	if err != nil {
		return out, err
	}
	s.Update()
	return out, nil
}

// HandleSecondaryClick toggles the flag on c. Flags are only accepted while
// the game is active.
func (s *Session) HandleSecondaryClick(c board.Coordinate) board.FlagOutcome {
	return s.CurrentGame.HandleSecondaryClick(c)
}

// HandleTick forwards a one-second tick to the current game.
func (s *Session) HandleTick() {
	s.CurrentGame.HandleTick()
}

// Update records the current game once it is over.
func (s *Session) Update() {
	g := s.CurrentGame
	phase := g.State.Phase()
	if !phase.Over() || g.Score == nil || g.Score.Finished() {
		return
	}

	g.Score.Finish(phase == state.Won, g.Elapsed)
	if err := g.Score.SaveEntries(); err != nil {
		s.Options.Logger.Errorw("could not save game record", "board", s.Config.Key(), "error", err)
		return
	}
	s.Options.Logger.Infow("game recorded", "board", s.Config.Key(), "won", phase == state.Won, "seconds", g.Elapsed)
}

func (s *Session) Phase() state.Phase {
	return s.CurrentGame.State.Phase()
}

// TileView returns what the renderer should draw at c.
func (s *Session) TileView(c board.Coordinate) (board.TileSnapshot, bool) {
	return s.CurrentGame.State.TileView(c)
}

func (s *Session) MinesRemaining() int {
	return s.CurrentGame.State.MinesRemaining()
}

func (s *Session) Elapsed() int {
	return s.CurrentGame.Elapsed
}

func (s *Session) Board() *board.Board {
	return s.CurrentGame.State.Board
}
