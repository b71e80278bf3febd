package board

import (
	"fmt"
	"strings"
)

// Difficulty names one of the preset board sizes.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// Config holds the dimensions and mine count of a board.
type Config struct {
	Width  int // columns
	Height int // rows
	Mines  int
}

// Key identifies boards with the same shape, e.g. "10x10/10".
func (c Config) Key() string {
	return fmt.Sprintf("%dx%d/%d", c.Width, c.Height, c.Mines)
}

func (c Config) String() string {
	return c.Key()
}

// Validate checks the construction rules shared by every board.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d board has no tiles", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Mines < 0 || c.Mines >= c.Width*c.Height {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board", ErrInvalidConfig, c.Mines, c.Width, c.Height)
	}
	return nil
}

// The source table lists (rows, columns); Width is the column count.
var difficultyTable = map[Difficulty]Config{
	Easy:   {Width: 10, Height: 10, Mines: 10},
	Medium: {Width: 12, Height: 12, Mines: 26},
	Hard:   {Width: 15, Height: 15, Mines: 40},
	Expert: {Width: 30, Height: 16, Mines: 99},
}

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Expert: "expert",
}

// Difficulties lists the presets in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}

// Config returns the board shape for the preset.
func (d Difficulty) Config() Config {
	return difficultyTable[d]
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty accepts a preset name, case-insensitively.
func ParseDifficulty(name string) (Difficulty, error) {
	for d, n := range difficultyNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return d, nil
		}
	}
	return Easy, fmt.Errorf("unknown difficulty %q (use easy, medium, hard or expert)", name)
}
