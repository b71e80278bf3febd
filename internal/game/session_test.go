package game

import (
	"errors"
	"testing"

	"go-sweep/internal/board"
	"go-sweep/internal/state"
)

func TestSession_Init(t *testing.T) {
	sess, err := NewSession(board.Easy, Options{Rand: seededRand()})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if sess.Phase() != state.AwaitingFirstClick {
		t.Errorf("Expected AwaitingFirstClick, got %v", sess.Phase())
	}
	if sess.Board().Width() != 10 || sess.Board().Height() != 10 {
		t.Errorf("Expected 10x10, got %dx%d", sess.Board().Width(), sess.Board().Height())
	}
	if sess.MinesRemaining() != 10 {
		t.Errorf("Expected 10 mines remaining, got %d", sess.MinesRemaining())
	}
}

func TestSession_FirstClickAtCorner(t *testing.T) {
	sess, _ := NewSession(board.Easy, Options{Rand: seededRand()})
	c := board.Coordinate{Col: 1, Row: 1}

	if _, err := sess.HandlePrimaryClick(c); err != nil {
		t.Fatalf("HandlePrimaryClick failed: %v", err)
	}
	if sess.Phase() != state.Active {
		t.Errorf("Expected Active, got %v", sess.Phase())
	}
	view, ok := sess.TileView(c)
	if !ok || view.Covered {
		t.Error("Clicked tile should be uncovered")
	}
	for row := 1; row <= 2; row++ {
		for col := 1; col <= 2; col++ {
			tile, _ := sess.Board().Tile(board.Coordinate{Col: col, Row: row})
			if tile.Mine {
				t.Errorf("Mine at (%d,%d) inside the safe zone", col, row)
			}
		}
	}
}

func TestSession_ResetFromLost(t *testing.T) {
	layout := &Layout{
		Config: board.Config{Width: 2, Height: 2, Mines: 1},
		Mines:  []board.Coordinate{{Col: 2, Row: 2}},
	}
	sess, _ := NewSession(board.Easy, Options{Rand: seededRand()})
	if err := sess.SetLayout(layout); err != nil {
		t.Fatalf("SetLayout failed: %v", err)
	}
	sess.HandlePrimaryClick(board.Coordinate{Col: 1, Row: 1})
	sess.HandleSecondaryClick(board.Coordinate{Col: 1, Row: 2})
	sess.HandlePrimaryClick(board.Coordinate{Col: 2, Row: 2})
	if sess.Phase() != state.Lost {
		t.Fatalf("Expected Lost, got %v", sess.Phase())
	}

	if err := sess.SetDifficulty(board.Medium); err != nil {
		t.Fatalf("SetDifficulty failed: %v", err)
	}
	if sess.Phase() != state.AwaitingFirstClick {
		t.Errorf("Expected AwaitingFirstClick, got %v", sess.Phase())
	}
	b := sess.Board()
	if b.Width() != 12 || b.Height() != 12 {
		t.Errorf("Expected 12x12, got %dx%d", b.Width(), b.Height())
	}
	if sess.Layout != nil {
		t.Error("Difficulty change should drop the fixed layout")
	}
	for row := 1; row <= 12; row++ {
		for col := 1; col <= 12; col++ {
			view, _ := sess.TileView(board.Coordinate{Col: col, Row: row})
			if !view.Covered || view.Flagged {
				t.Fatalf("Tile (%d,%d) should be covered and unflagged", col, row)
			}
		}
	}
}

func TestSession_ResetKeepsLayout(t *testing.T) {
	layout := &Layout{
		Config: board.Config{Width: 3, Height: 1, Mines: 1},
		Mines:  []board.Coordinate{{Col: 3, Row: 1}},
	}
	sess, _ := NewSession(board.Easy, Options{})
	sess.SetLayout(layout)
	sess.HandlePrimaryClick(board.Coordinate{Col: 1, Row: 1})
	if sess.Phase() != state.Won {
		t.Fatalf("Expected Won, got %v", sess.Phase())
	}

	if err := sess.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if sess.Phase() != state.AwaitingFirstClick {
		t.Errorf("Expected AwaitingFirstClick, got %v", sess.Phase())
	}
	out, _ := sess.HandlePrimaryClick(board.Coordinate{Col: 3, Row: 1})
	if out.Kind != board.HitMine {
		t.Errorf("Layout should survive a reset, got %v", out.Kind)
	}
}

func TestSession_CustomConfigNoRoom(t *testing.T) {
	sess, _ := NewSession(board.Easy, Options{Rand: seededRand()})
	if err := sess.SetConfig(board.Config{Width: 3, Height: 3, Mines: 1}); err != nil {
		t.Fatalf("SetConfig failed: %v", err)
	}

	_, err := sess.HandlePrimaryClick(board.Coordinate{Col: 2, Row: 2})
	if !errors.Is(err, board.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if sess.Phase() != state.AwaitingFirstClick {
		t.Errorf("Expected AwaitingFirstClick, got %v", sess.Phase())
	}

	if err := sess.SetConfig(board.Config{Width: 0, Height: 3, Mines: 0}); !errors.Is(err, board.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty board, got %v", err)
	}
}

func TestSession_RecordsWin(t *testing.T) {
	store := &MockStorage{}
	layout := &Layout{
		Config: board.Config{Width: 3, Height: 1, Mines: 1},
		Mines:  []board.Coordinate{{Col: 2, Row: 1}},
	}
	sess, _ := NewSession(board.Easy, Options{Storage: store, TimerEnabled: true})
	sess.SetLayout(layout)

	sess.HandlePrimaryClick(board.Coordinate{Col: 1, Row: 1})
	sess.HandleTick()
	sess.HandleTick()
	sess.HandleTick()
	sess.HandlePrimaryClick(board.Coordinate{Col: 3, Row: 1})

	if sess.Phase() != state.Won {
		t.Fatalf("Expected Won, got %v", sess.Phase())
	}
	if !store.SaveCalled {
		t.Fatal("Finished game should be saved")
	}
	if len(store.Entries) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(store.Entries))
	}
	rec := store.Entries[0]
	if rec.Board != "3x1/1" || !rec.Won || rec.Seconds != 3 {
		t.Errorf("Unexpected record %+v", rec)
	}
	if !sess.CurrentGame.Score.GotBestTime() {
		t.Error("First win should be a best time")
	}

	// Further clicks do not record twice.
	sess.HandlePrimaryClick(board.Coordinate{Col: 2, Row: 1})
	if len(store.Entries) != 1 {
		t.Errorf("Game recorded twice: %d records", len(store.Entries))
	}
}

func TestSession_RecordsLoss(t *testing.T) {
	store := &MockStorage{}
	layout := &Layout{
		Config: board.Config{Width: 3, Height: 1, Mines: 1},
		Mines:  []board.Coordinate{{Col: 2, Row: 1}},
	}
	sess, _ := NewSession(board.Easy, Options{Storage: store})
	sess.SetLayout(layout)

	sess.HandlePrimaryClick(board.Coordinate{Col: 1, Row: 1})
	sess.HandlePrimaryClick(board.Coordinate{Col: 2, Row: 1})

	if sess.Phase() != state.Lost {
		t.Fatalf("Expected Lost, got %v", sess.Phase())
	}
	if len(store.Entries) != 1 || store.Entries[0].Won {
		t.Errorf("Expected one lost record, got %+v", store.Entries)
	}
}

func TestSession_InvalidConfigKeepsCurrentGame(t *testing.T) {
	sess, _ := NewSession(board.Easy, Options{Rand: seededRand()})
	before := sess.CurrentGame

	err := sess.SetConfig(board.Config{Width: 2, Height: 2, Mines: 4})
	if !errors.Is(err, board.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if sess.CurrentGame != before {
		t.Error("A rejected config must not replace the current game")
	}
	if sess.Config != board.Easy.Config() {
		t.Errorf("Expected the easy board to remain, got %s", sess.Config.Key())
	}
}
