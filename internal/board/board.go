package board

import (
	"fmt"
	"math/rand/v2"
)

// RevealKind classifies the result of uncovering a tile.
type RevealKind int

const (
	NoChange RevealKind = iota
	Revealed
	HitMine
)

func (k RevealKind) String() string {
	switch k {
	case Revealed:
		return "revealed"
	case HitMine:
		return "hit mine"
	default:
		return "no change"
	}
}

// RevealOutcome lists the tiles whose covered flag flipped during a reveal.
type RevealOutcome struct {
	Kind    RevealKind
	Changed []Coordinate
}

// FlagOutcome is the result of a flag toggle.
type FlagOutcome int

const (
	FlagUnchanged FlagOutcome = iota
	FlagSet
	FlagCleared
)

// Board owns the tile grid. Tiles are stored row-major.
type Board struct {
	cfg         Config
	tiles       []Tile
	minesPlaced bool
	flags       int
}

// NewBoard allocates a covered, mine-free board. Mines are placed later with
// PlaceMines once the first click is known.
func NewBoard(cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tiles := make([]Tile, cfg.Width*cfg.Height)
	for i := range tiles {
		tiles[i].Covered = true
	}
	return &Board{cfg: cfg, tiles: tiles}, nil
}

func (b *Board) Config() Config    { return b.cfg }
func (b *Board) Width() int        { return b.cfg.Width }
func (b *Board) Height() int       { return b.cfg.Height }
func (b *Board) MineCount() int    { return b.cfg.Mines }
func (b *Board) MinesPlaced() bool { return b.minesPlaced }
func (b *Board) FlagCount() int    { return b.flags }

// InBounds reports whether c lies on the grid.
func (b *Board) InBounds(c Coordinate) bool {
	return c.Col >= 1 && c.Col <= b.cfg.Width && c.Row >= 1 && c.Row <= b.cfg.Height
}

func (b *Board) at(c Coordinate) *Tile {
	if !b.InBounds(c) {
		return nil
	}
	return &b.tiles[(c.Row-1)*b.cfg.Width+(c.Col-1)]
}

// Tile returns a copy of the tile at c.
func (b *Board) Tile(c Coordinate) (Tile, bool) {
	t := b.at(c)
	if t == nil {
		return Tile{}, false
	}
	return *t, true
}

// Neighbors returns the up-to-8 in-bounds tiles around c.
func (b *Board) Neighbors(c Coordinate) []Coordinate {
	out := make([]Coordinate, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Coordinate{Col: c.Col + dc, Row: c.Row + dr}
			if b.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// SafeZone returns c and its in-bounds neighbours.
func (b *Board) SafeZone(c Coordinate) []Coordinate {
	if !b.InBounds(c) {
		return nil
	}
	return append([]Coordinate{c}, b.Neighbors(c)...)
}

// PlaceMines lays out the mines so that none falls in the 3x3 block around
// safe, then computes every adjacency count.
func (b *Board) PlaceMines(safe Coordinate, r *rand.Rand) error {
	if b.minesPlaced {
		return ErrAlreadyPlaced
	}
	if !b.InBounds(safe) {
		return fmt.Errorf("%w: safe tile %s is off the %dx%d board", ErrInvalidConfig, safe, b.cfg.Width, b.cfg.Height)
	}

	zone := make(map[Coordinate]struct{}, 9)
	for _, c := range b.SafeZone(safe) {
		zone[c] = struct{}{}
	}
	eligible := len(b.tiles) - len(zone)
	if b.cfg.Mines > eligible {
		return fmt.Errorf("%w: %d mines but only %d tiles outside the safe zone of %s",
			ErrInvalidConfig, b.cfg.Mines, eligible, safe)
	}

	selected := make(map[Coordinate]struct{}, b.cfg.Mines)
	for len(selected) < b.cfg.Mines {
		c := Coordinate{Col: r.IntN(b.cfg.Width) + 1, Row: r.IntN(b.cfg.Height) + 1}
		if _, ok := zone[c]; ok {
			continue
		}
		if _, ok := selected[c]; ok {
			continue
		}
		selected[c] = struct{}{}
	}

	for c := range selected {
		b.at(c).Mine = true
	}
	b.minesPlaced = true
	b.computeAdjacent()
	return nil
}

// PlaceMinesAt lays out an exact set of mines, for fixed layouts.
func (b *Board) PlaceMinesAt(mines []Coordinate) error {
	if b.minesPlaced {
		return ErrAlreadyPlaced
	}
	if len(mines) != b.cfg.Mines {
		return fmt.Errorf("%w: layout has %d mines, board expects %d", ErrInvalidConfig, len(mines), b.cfg.Mines)
	}
	seen := make(map[Coordinate]struct{}, len(mines))
	for _, c := range mines {
		if !b.InBounds(c) {
			return fmt.Errorf("%w: mine %s is off the board", ErrInvalidConfig, c)
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("%w: mine %s listed twice", ErrInvalidConfig, c)
		}
		seen[c] = struct{}{}
	}
	for c := range seen {
		b.at(c).Mine = true
	}
	b.minesPlaced = true
	b.computeAdjacent()
	return nil
}

func (b *Board) computeAdjacent() {
	for row := 1; row <= b.cfg.Height; row++ {
		for col := 1; col <= b.cfg.Width; col++ {
			c := Coordinate{Col: col, Row: row}
			t := b.at(c)
			if t.Mine {
				continue
			}
			count := 0
			for _, n := range b.Neighbors(c) {
				if b.at(n).Mine {
					count++
				}
			}
			t.Adjacent = count
		}
	}
}

// Reveal uncovers c. A zero tile floods outward through every connected zero
// tile, uncovering the numbered rim as well. Flagged tiles are never opened.
func (b *Board) Reveal(c Coordinate) RevealOutcome {
	t := b.at(c)
	if t == nil || !t.Covered || t.Flagged {
		return RevealOutcome{Kind: NoChange}
	}
	t.Covered = false
	if t.Mine {
		return RevealOutcome{Kind: HitMine, Changed: []Coordinate{c}}
	}

	changed := []Coordinate{c}
	var queue []Coordinate
	if t.Adjacent == 0 {
		queue = append(queue, c)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range b.Neighbors(cur) {
			nt := b.at(n)
			if !nt.Covered || nt.Flagged || nt.Mine {
				continue
			}
			nt.Covered = false
			changed = append(changed, n)
			if nt.Adjacent == 0 {
				queue = append(queue, n)
			}
		}
	}
	return RevealOutcome{Kind: Revealed, Changed: changed}
}

// ToggleFlag flips the flag on a covered tile.
func (b *Board) ToggleFlag(c Coordinate) FlagOutcome {
	t := b.at(c)
	if t == nil || !t.Covered {
		return FlagUnchanged
	}
	t.Flagged = !t.Flagged
	if t.Flagged {
		b.flags++
		return FlagSet
	}
	b.flags--
	return FlagCleared
}

// IsCleared reports whether every safe tile is uncovered. Flags do not matter.
func (b *Board) IsCleared() bool {
	for _, t := range b.tiles {
		if !t.Mine && t.Covered {
			return false
		}
	}
	return true
}

// CoveredCount returns the number of tiles still covered.
func (b *Board) CoveredCount() int {
	n := 0
	for _, t := range b.tiles {
		if t.Covered {
			n++
		}
	}
	return n
}

// LossHints returns the tiles that change picture when the game is lost:
// unflagged covered mines and flags placed on safe tiles. The board is not
// modified.
func (b *Board) LossHints() map[Coordinate]DisplayHint {
	hints := make(map[Coordinate]DisplayHint)
	for i, t := range b.tiles {
		c := Coordinate{Col: i%b.cfg.Width + 1, Row: i/b.cfg.Width + 1}
		switch {
		case t.Covered && t.Mine && !t.Flagged:
			hints[c] = HintMine
		case t.Flagged && !t.Mine:
			hints[c] = HintWrongFlag
		}
	}
	return hints
}

// Snapshot returns what the renderer may know about c.
func (b *Board) Snapshot(c Coordinate) (TileSnapshot, bool) {
	t := b.at(c)
	if t == nil {
		return TileSnapshot{}, false
	}
	s := TileSnapshot{Coord: c, Covered: t.Covered, Flagged: t.Flagged}
	if !t.Covered {
		s.Mine = t.Mine
		if !t.Mine {
			s.Adjacent = t.Adjacent
		}
	}
	s.Hint = HintFor(s)
	return s, true
}
