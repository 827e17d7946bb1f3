package board

import (
	"slices"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
)

// Placement binds a tile identity and orientation to an anchor cell. Cells
// holds the absolute board cells the placement occupies: the anchor plus each
// offset of the orientation.
type Placement struct {
	// Tile is the name of the placed tile.
	Tile string `json:"tile"`
	// Orientation is the canonical shape variant used for this placement.
	Orientation geom.Shape `json:"orientation"`
	// Anchor is the board cell the orientation's (0,0) offset maps to.
	Anchor geom.Cell `json:"anchor"`
	// Cells are the absolute board cells covered, in orientation order.
	Cells []geom.Cell `json:"cells"`
}

// Place resolves an orientation at an anchor into a concrete placement.
func Place(tileName string, orientation geom.Shape, anchor geom.Cell) Placement {
	cells := make([]geom.Cell, len(orientation))
	for i, off := range orientation {
		cells[i] = anchor.Add(off)
	}
	return Placement{Tile: tileName, Orientation: orientation, Anchor: anchor, Cells: cells}
}

// State is the mutable covering state of a board during search: which cells
// are occupied, and by which tile. A single State is owned exclusively by the
// in-progress solve call; it is not safe for concurrent use.
type State struct {
	board   *Board
	covered map[geom.Cell]string
}

// NewState creates an empty covering state for the board.
func NewState(b *Board) *State {
	return &State{board: b, covered: make(map[geom.Cell]string, b.FreeCells())}
}

// Board returns the fixed board this state covers.
func (s *State) Board() *Board { return s.board }

// Free reports whether the cell can still receive a tile cell: in bounds,
// not blocked, not covered.
func (s *State) Free(c geom.Cell) bool {
	if !s.board.Playable(c) {
		return false
	}
	_, covered := s.covered[c]
	return !covered
}

// CoveredBy returns the name of the tile covering the cell, if any.
func (s *State) CoveredBy(c geom.Cell) (string, bool) {
	name, ok := s.covered[c]
	return name, ok
}

// Fits reports whether every cell of the placement is free. Cost is
// proportional to the placement size.
func (s *State) Fits(p Placement) bool {
	for _, c := range p.Cells {
		if !s.Free(c) {
			return false
		}
	}
	return true
}

// Commit marks the placement's cells as covered. The caller must have
// verified Fits first; Commit does not re-check.
func (s *State) Commit(p Placement) {
	for _, c := range p.Cells {
		s.covered[c] = p.Tile
	}
}

// Undo removes the placement's cells from the covering. After Commit
// followed by Undo the state is structurally identical to before.
func (s *State) Undo(p Placement) {
	for _, c := range p.Cells {
		delete(s.covered, c)
	}
}

// Complete reports whether every playable cell is covered.
func (s *State) Complete() bool {
	return len(s.covered) == s.board.FreeCells()
}

// FirstUncovered returns the topologically first playable cell that is not
// yet covered (minimum row, then minimum column), or false when the covering
// is complete. Any valid tile filling the board must cover this cell, which
// bounds the branching of the search.
func (s *State) FirstUncovered() (geom.Cell, bool) {
	for row := 0; row < s.board.height; row++ {
		for col := 0; col < s.board.width; col++ {
			c := geom.Cell{Row: row, Col: col}
			if s.Free(c) {
				return c, true
			}
		}
	}
	return geom.Cell{}, false
}

// Snapshot returns the covered cells in topological order, for structural
// comparison in tests and invariant checks.
func (s *State) Snapshot() []geom.Cell {
	out := make([]geom.Cell, 0, len(s.covered))
	for c := range s.covered {
		out = append(out, c)
	}
	slices.SortFunc(out, geom.Compare)
	return out
}

// Equal reports whether two states cover the same cells with the same tiles.
func (s *State) Equal(o *State) bool {
	if len(s.covered) != len(o.covered) {
		return false
	}
	for c, name := range s.covered {
		if other, ok := o.covered[c]; !ok || other != name {
			return false
		}
	}
	return true
}
