package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"go-sweep/internal/board"
	"go-sweep/internal/game"
	"go-sweep/internal/logx"
	"go-sweep/internal/scoring"
	"go-sweep/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Loss messages
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Win messages
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Status line
	coverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Classic minesweeper number colours, indexed by neighbour count.
var numberColors = []lipgloss.Color{"7", "12", "10", "9", "4", "1", "6", "15", "8"}

// hintGlyph picks the two-cell picture for a tile.
func hintGlyph(h board.DisplayHint) string {
	switch h {
	case board.HintCovered:
		return "■ "
	case board.HintFlagged:
		return "⚑ "
	case board.HintExploded:
		return "✹ "
	case board.HintMine:
		return "● "
	case board.HintWrongFlag:
		return "✗ "
	}
	n, _ := h.Count()
	if n == 0 {
		return "· "
	}
	return strconv.Itoa(n) + " "
}

func hintStyle(h board.DisplayHint) lipgloss.Style {
	switch h {
	case board.HintCovered:
		return coverStyle
	case board.HintFlagged:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	case board.HintExploded, board.HintWrongFlag:
		return redStyle.Bold(true)
	case board.HintMine:
		return redStyle
	}
	n, _ := h.Count()
	return lipgloss.NewStyle().Foreground(numberColors[n])
}

type LocalState struct {
	Session *game.Session
	Cursor  board.Coordinate
	Keys    keyMap
	Help    help.Model
	Err     error
	Log     logx.Logger
}

type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func newLocalState(sess *game.Session, log logx.Logger) *LocalState {
	return &LocalState{
		Session: sess,
		Cursor:  board.Coordinate{Col: 1, Row: 1},
		Keys:    defaultKeyMap(),
		Help:    help.New(),
		Log:     log,
	}
}

func (s *LocalState) Init() tea.Cmd {
	if s.Session.Options.TimerEnabled {
		return tickCmd()
	}
	return nil
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		s.Session.HandleTick()
		return s, tickCmd()
	case tea.WindowSizeMsg:
		s.Help.Width = msg.Width
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *LocalState) handleKey(msg tea.KeyMsg) tea.Cmd {
	b := s.Session.Board()
	s.Err = nil
	switch {
	case key.Matches(msg, s.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.Keys.Up):
		s.moveCursor(0, -1)
	case key.Matches(msg, s.Keys.Down):
		s.moveCursor(0, 1)
	case key.Matches(msg, s.Keys.Left):
		s.moveCursor(-1, 0)
	case key.Matches(msg, s.Keys.Right):
		s.moveCursor(1, 0)
	case key.Matches(msg, s.Keys.Reveal):
		_, s.Err = s.Session.HandlePrimaryClick(s.Cursor)
	case key.Matches(msg, s.Keys.Flag):
		s.Session.HandleSecondaryClick(s.Cursor)
	case key.Matches(msg, s.Keys.Reset):
		s.Err = s.Session.Reset()
	case key.Matches(msg, s.Keys.Easy):
		s.Err = s.Session.SetDifficulty(board.Easy)
	case key.Matches(msg, s.Keys.Medium):
		s.Err = s.Session.SetDifficulty(board.Medium)
	case key.Matches(msg, s.Keys.Hard):
		s.Err = s.Session.SetDifficulty(board.Hard)
	case key.Matches(msg, s.Keys.Expert):
		s.Err = s.Session.SetDifficulty(board.Expert)
	case key.Matches(msg, s.Keys.Help):
		s.Help.ShowAll = !s.Help.ShowAll
	}
	if s.Session.Board() != b {
		s.moveCursor(0, 0)
	}
	if s.Err != nil {
		s.Log.Warnw("click rejected", "tile", s.Cursor.String(), "error", s.Err)
	}
	return nil
}

// moveCursor shifts the cursor and keeps it on the board.
func (s *LocalState) moveCursor(dc, dr int) {
	b := s.Session.Board()
	s.Cursor.Col = min(max(s.Cursor.Col+dc, 1), b.Width())
	s.Cursor.Row = min(max(s.Cursor.Row+dr, 1), b.Height())
}

func (s *LocalState) RenderBoard() string {
	var sb strings.Builder
	b := s.Session.Board()
	showCursor := !s.Session.Phase().Over()

	for row := 1; row <= b.Height(); row++ {
		for col := 1; col <= b.Width(); col++ {
			c := board.Coordinate{Col: col, Row: row}
			view, _ := s.Session.TileView(c)
			style := hintStyle(view.Hint)
			if showCursor && c == s.Cursor {
				style = style.Inherit(cursorStyle)
			}
			sb.WriteString(style.Render(hintGlyph(view.Hint)))
		}
		if row < b.Height() {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (s *LocalState) View() string {
	sess := s.Session
	cfg := sess.Config

	name := sess.Difficulty.String()
	if sess.Layout != nil {
		name = "layout " + sess.Layout.Source
	} else if cfg != sess.Difficulty.Config() {
		name = "custom"
	}
	banner := fmt.Sprintf("MINES: %s (%s)", strings.ToUpper(name), cfg.Key())

	statusLine := fmt.Sprintf("LEFT: %d", sess.MinesRemaining())
	if sess.Options.TimerEnabled {
		statusLine += fmt.Sprintf(" | TIME: %02d:%02d", sess.Elapsed()/60, sess.Elapsed()%60)
	}
	if score := sess.CurrentGame.Score; score != nil {
		statusLine += fmt.Sprintf(" | W/L: %d/%d", score.Wins, score.Losses)
		if best := score.GetBestTime(); best != nil {
			statusLine += fmt.Sprintf(" | BEST: %ds", best.Seconds)
		}
	}

	display := banner + "\n" + borderStyle.Render(s.RenderBoard()) + "\n" + scoreStyle.Render(statusLine)

	switch sess.Phase() {
	case state.AwaitingFirstClick:
		display += "\nPick a tile. The first one is always safe."
	case state.Won:
		msg := "Cleared!"
		if sess.Options.TimerEnabled {
			msg += fmt.Sprintf(" Time: %ds", sess.Elapsed())
		}
		if score := sess.CurrentGame.Score; score != nil && score.GotBestTime() {
			msg += " New best time!"
		}
		display += "\n" + greenStyle.Render(msg)
	case state.Lost:
		display += "\n" + redStyle.Render("Boom! Press r to try again.")
	}

	if s.Err != nil {
		display += "\n" + redStyle.Render(s.Err.Error())
	}

	return display + "\n\n" + s.Help.View(s.Keys)
}

func getLogger(file *os.File, c *cli.Command) *logx.Logx {
	l := logx.NewLogx(
		logx.GetLoggerLevelByString(c.String("level")),
		c.Bool("dev"),
		c.Bool("console"),
	)
	l.InitLogger(file)
	return l
}

// customConfig reads --width/--height/--mines. All three must be given together.
func customConfig(c *cli.Command) (*board.Config, error) {
	set := 0
	for _, name := range []string{"width", "height", "mines"} {
		if c.IsSet(name) {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 3:
		cfg := board.Config{
			Width:  int(c.Int("width")),
			Height: int(c.Int("height")),
			Mines:  int(c.Int("mines")),
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return nil, errors.New("--width, --height and --mines must be given together")
}

func newRand(seed string) (*rand.Rand, error) {
	if seed == "" || seed == "0" {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), nil
	}
	v, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	return rand.New(rand.NewPCG(v, v)), nil
}

func run(ctx context.Context, c *cli.Command) error {
	difficulty, err := board.ParseDifficulty(c.String("difficulty"))
	if err != nil {
		return err
	}
	custom, err := customConfig(c)
	if err != nil {
		return err
	}
	r, err := newRand(c.String("seed"))
	if err != nil {
		return err
	}

	file, err := os.OpenFile(c.String("log-file"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer file.Close()
	logger := getLogger(file, c)
	defer logger.Sync()

	opts := game.Options{
		Rand:         r,
		Logger:       logger,
		TimerEnabled: !c.Bool("no-timer"),
	}
	if !c.Bool("no-records") {
		storage, err := scoring.NewJSONFileStorage(c.String("records"))
		if err != nil {
			return fmt.Errorf("failed to create record storage: %w", err)
		}
		opts.Storage = storage
	}

	sess, err := game.NewSession(difficulty, opts)
	if err != nil {
		return err
	}
	switch {
	case c.String("layout") != "":
		layout, err := game.LoadLayout(c.String("layout"))
		if err != nil {
			return err
		}
		if err := sess.SetLayout(layout); err != nil {
			return err
		}
	case custom != nil:
		if err := sess.SetConfig(*custom); err != nil {
			return err
		}
	}

	p := tea.NewProgram(newLocalState(sess, logger), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Errorw("program stopped", "error", err)
		return fmt.Errorf("error running the program: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "go-sweep",
		Usage: "minesweeper in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "difficulty",
				Aliases: []string{"d"},
				Usage:   "easy, medium, hard or expert",
				Value:   "easy",
				Sources: cli.EnvVars("GOSWEEP_DIFFICULTY"),
			},
			&cli.IntFlag{Name: "width", Usage: "custom board columns", Sources: cli.EnvVars("GOSWEEP_WIDTH")},
			&cli.IntFlag{Name: "height", Usage: "custom board rows", Sources: cli.EnvVars("GOSWEEP_HEIGHT")},
			&cli.IntFlag{Name: "mines", Usage: "custom board mine count", Sources: cli.EnvVars("GOSWEEP_MINES")},
			&cli.StringFlag{
				Name:    "seed",
				Usage:   "random seed for mine placement (0 picks one)",
				Sources: cli.EnvVars("GOSWEEP_SEED"),
			},
			&cli.StringFlag{
				Name:    "layout",
				Usage:   "path to a fixed mine layout ('*' mine, '.' safe)",
				Sources: cli.EnvVars("GOSWEEP_LAYOUT"),
			},
			&cli.StringFlag{
				Name:        "records",
				Usage:       "path to the records file",
				DefaultText: "~/.config/go-sweep/records.json",
				Sources:     cli.EnvVars("GOSWEEP_RECORDS"),
			},
			&cli.BoolFlag{Name: "no-records", Usage: "do not load or save records", Sources: cli.EnvVars("GOSWEEP_NO_RECORDS")},
			&cli.BoolFlag{Name: "no-timer", Usage: "disable the clock", Sources: cli.EnvVars("GOSWEEP_NO_TIMER")},
			&cli.StringFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "log level",
				Value:   "info",
				Sources: cli.EnvVars("GOSWEEP_LEVEL"),
			},
			&cli.BoolFlag{Name: "dev", Usage: "development log encoding", Sources: cli.EnvVars("GOSWEEP_DEV")},
			&cli.BoolFlag{Name: "console", Aliases: []string{"c"}, Usage: "log to stderr instead of the log file"},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "log file path",
				Value:   "go-sweep.log",
				Sources: cli.EnvVars("GOSWEEP_LOG_FILE"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "go-sweep: %v\n", err)
		os.Exit(1)
	}
}
