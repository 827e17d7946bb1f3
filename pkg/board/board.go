// Package board models the puzzle board: a finite rectangular grid with
// permanently blocked cells (holes), immutable virus markers, and the
// adjacency rules that decide whether a tile placement is locally consistent
// with the markers it covers or borders.
//
// The board itself is fixed after construction. All search-time mutation goes
// through State, whose Commit and Undo are exact inverses so that a
// backtracking solver can restore any prior position bit for bit.
package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
)

var (
	// ErrOutOfBounds is returned when a hole or marker lies outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrBlockedCell is returned when a marker is placed on a hole.
	ErrBlockedCell = errors.New("cell is blocked")

	// ErrDuplicateMarker is returned when two markers share a cell.
	ErrDuplicateMarker = errors.New("duplicate marker cell")

	// ErrBadSize is returned by New for non-positive board dimensions.
	ErrBadSize = errors.New("board dimensions must be positive")
)

// Marker is a fixed virus annotation on a board cell. Markers are placed at
// instance construction and never move; adjacency rules read them to accept
// or reject candidate placements.
type Marker struct {
	Cell  geom.Cell `json:"cell" toml:"cell"`
	Color string    `json:"color" toml:"color"`
}

// Board is a fixed rectangular grid of Width x Height cells, some of which
// may be permanently blocked. A cell is in bounds iff both coordinates lie in
// [0, Height) x [0, Width). Board is immutable once built and therefore safe
// to share between solver runs.
type Board struct {
	width   int
	height  int
	blocked map[geom.Cell]struct{}
	markers map[geom.Cell]Marker
}

// New creates a board of the given dimensions with the given holes and virus
// markers. It rejects out-of-bounds holes, markers outside the grid or on a
// hole, and markers sharing a cell.
func New(width, height int, holes []geom.Cell, markers []Marker) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadSize, width, height)
	}
	b := &Board{
		width:   width,
		height:  height,
		blocked: make(map[geom.Cell]struct{}, len(holes)),
		markers: make(map[geom.Cell]Marker, len(markers)),
	}
	for _, h := range holes {
		if !b.InBounds(h) {
			return nil, fmt.Errorf("hole %s: %w", h, ErrOutOfBounds)
		}
		b.blocked[h] = struct{}{}
	}
	for _, m := range markers {
		if !b.InBounds(m.Cell) {
			return nil, fmt.Errorf("marker %s: %w", m.Cell, ErrOutOfBounds)
		}
		if _, hole := b.blocked[m.Cell]; hole {
			return nil, fmt.Errorf("marker %s: %w", m.Cell, ErrBlockedCell)
		}
		if _, dup := b.markers[m.Cell]; dup {
			return nil, fmt.Errorf("marker %s: %w", m.Cell, ErrDuplicateMarker)
		}
		b.markers[m.Cell] = m
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// InBounds reports whether the cell lies within the grid.
func (b *Board) InBounds(c geom.Cell) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

// Blocked reports whether the cell is a permanent hole.
func (b *Board) Blocked(c geom.Cell) bool {
	_, ok := b.blocked[c]
	return ok
}

// Playable reports whether the cell is in bounds and not blocked.
func (b *Board) Playable(c geom.Cell) bool {
	return b.InBounds(c) && !b.Blocked(c)
}

// FreeCells returns the number of playable cells, the figure a full covering
// must match exactly.
func (b *Board) FreeCells() int {
	return b.width*b.height - len(b.blocked)
}

// MarkerAt returns the marker on the given cell, if any.
func (b *Board) MarkerAt(c geom.Cell) (Marker, bool) {
	m, ok := b.markers[c]
	return m, ok
}

// Markers returns all virus markers in topological cell order.
func (b *Board) Markers() []Marker {
	out := make([]Marker, 0, len(b.markers))
	for _, m := range b.markers {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, o Marker) int { return geom.Compare(a.Cell, o.Cell) })
	return out
}

// Holes returns all blocked cells in topological order.
func (b *Board) Holes() []geom.Cell {
	out := make([]geom.Cell, 0, len(b.blocked))
	for c := range b.blocked {
		out = append(out, c)
	}
	slices.SortFunc(out, geom.Compare)
	return out
}

// MarkersCovered returns the markers lying under the placement's cells, in
// topological order. The cost is proportional to the placement size.
func (b *Board) MarkersCovered(p Placement) []Marker {
	var out []Marker
	for _, c := range p.Cells {
		if m, ok := b.markers[c]; ok {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, o Marker) int { return geom.Compare(a.Cell, o.Cell) })
	return out
}

// MarkersTouched returns the markers the placement covers or borders
// orthogonally, deduplicated and in topological order. The cost is
// proportional to the placement size, not the board size.
func (b *Board) MarkersTouched(p Placement) []Marker {
	seen := make(map[geom.Cell]struct{}, len(p.Cells)*5)
	var out []Marker
	add := func(c geom.Cell) {
		if _, dup := seen[c]; dup {
			return
		}
		seen[c] = struct{}{}
		if m, ok := b.markers[c]; ok {
			out = append(out, m)
		}
	}
	for _, c := range p.Cells {
		add(c)
		add(geom.Cell{Row: c.Row - 1, Col: c.Col})
		add(geom.Cell{Row: c.Row + 1, Col: c.Col})
		add(geom.Cell{Row: c.Row, Col: c.Col - 1})
		add(geom.Cell{Row: c.Row, Col: c.Col + 1})
	}
	slices.SortFunc(out, func(a, o Marker) int { return geom.Compare(a.Cell, o.Cell) })
	return out
}
