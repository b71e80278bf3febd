package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-sweep/internal/board"
)

func TestLoadLayout_File(t *testing.T) {
	content := "# corner mines\n*...\n....\n\n...*\n"
	path := filepath.Join(t.TempDir(), "layout.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}

	want := board.Config{Width: 4, Height: 3, Mines: 2}
	if layout.Config != want {
		t.Errorf("Expected %v, got %v", want, layout.Config)
	}
	if layout.Source != path {
		t.Errorf("Expected source %s, got %s", path, layout.Source)
	}
	if len(layout.Mines) != 2 ||
		layout.Mines[0] != (board.Coordinate{Col: 1, Row: 1}) ||
		layout.Mines[1] != (board.Coordinate{Col: 4, Row: 3}) {
		t.Errorf("Unexpected mines %v", layout.Mines)
	}
}

func TestLoadLayout_MissingFile(t *testing.T) {
	if _, err := LoadLayout(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestParseLayout_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"ragged", "...\n..\n"},
		{"bad char", "..x\n...\n"},
		{"all mines", "**\n**\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLayout(strings.NewReader(tt.content), tt.name)
			if !errors.Is(err, board.ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
