package game

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go-sweep/internal/board"
)

// Layout is a board with fixed mine positions.
type Layout struct {
	Config board.Config
	Mines  []board.Coordinate
	Source string
}

var layoutRowRe = regexp.MustCompile(`^[.*]+$`)

// LoadLayout reads a layout file: one row per line, '*' for a mine and '.'
// for a safe tile. Blank lines and lines starting with '#' are skipped.
func LoadLayout(path string) (*Layout, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout %s: %w", path, err)
	}
	defer file.Close()

	return parseLayout(file, path)
}

func parseLayout(r io.Reader, source string) (*Layout, error) {
	layout := &Layout{Source: source}
	width := 0
	row := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !layoutRowRe.MatchString(line) {
			return nil, fmt.Errorf("%w: %s: row %d has characters other than '.' and '*'", board.ErrInvalidConfig, source, row+1)
		}
		if width == 0 {
			width = len(line)
		} else if len(line) != width {
			return nil, fmt.Errorf("%w: %s: row %d is %d wide, expected %d", board.ErrInvalidConfig, source, row+1, len(line), width)
		}
		row++
		for i, ch := range line {
			if ch == '*' {
				layout.Mines = append(layout.Mines, board.Coordinate{Col: i + 1, Row: row})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan layout %s: %w", source, err)
	}

	layout.Config = board.Config{Width: width, Height: row, Mines: len(layout.Mines)}
	if err := layout.Config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return layout, nil
}
