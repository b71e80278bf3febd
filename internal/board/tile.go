package board

import "fmt"

// Coordinate addresses a tile. Both axes start at 1.
type Coordinate struct {
	Col int
	Row int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Tile is one cell of the grid.
type Tile struct {
	Mine     bool
	Adjacent int // meaningful only when !Mine
	Covered  bool
	Flagged  bool
}

// DisplayHint tells the presentation layer which picture to draw for a tile.
type DisplayHint int

const (
	HintCovered DisplayHint = iota
	HintFlagged
	HintExploded  // the uncovered mine that ended the game
	HintMine      // covered, unflagged mine shown after a loss
	HintWrongFlag // flag on a safe tile shown after a loss
	HintOpen0
	HintOpen1
	HintOpen2
	HintOpen3
	HintOpen4
	HintOpen5
	HintOpen6
	HintOpen7
	HintOpen8
)

// Number returns the hint for an uncovered safe tile with n mined neighbours.
func Number(n int) DisplayHint {
	if n < 0 || n > 8 {
		panic(fmt.Sprintf("board: adjacent count %d out of range", n))
	}
	return HintOpen0 + DisplayHint(n)
}

// Count reports the neighbour count carried by an open hint.
func (h DisplayHint) Count() (int, bool) {
	if h < HintOpen0 || h > HintOpen8 {
		return 0, false
	}
	return int(h - HintOpen0), true
}

// TileSnapshot is the read-only view of a tile handed to the renderer.
// Mine and Adjacent are only filled in once the tile is uncovered.
type TileSnapshot struct {
	Coord    Coordinate
	Covered  bool
	Flagged  bool
	Mine     bool
	Adjacent int
	Hint     DisplayHint
}

// HintFor maps a snapshot to the picture used while the game is running.
func HintFor(s TileSnapshot) DisplayHint {
	switch {
	case s.Covered && s.Flagged:
		return HintFlagged
	case s.Covered:
		return HintCovered
	case s.Mine:
		return HintExploded
	default:
		return Number(s.Adjacent)
	}
}
