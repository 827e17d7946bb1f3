package board

import (
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// Rule is the adjacency constraint between a candidate placement and the
// board's fixed virus markers. Implementations must be pure functions of the
// placement and the marker layout, decidable in time proportional to the
// placement's cell count, so the solver can evaluate every candidate without
// an asymptotic blow-up.
//
// The exact rule of the physical game is configuration, not code: pick the
// shipped rules that match the rulebook, or provide your own.
type Rule interface {
	// Allows reports whether the placement of tile t is locally consistent
	// with the markers it covers or borders.
	Allows(b *Board, t tile.Tile, p Placement) bool
}

// ColorRule requires every virus marker covered by a tile cell to carry the
// tile's own color. Markers of a foreign color block the placement.
type ColorRule struct{}

// Allows implements Rule.
func (ColorRule) Allows(b *Board, t tile.Tile, p Placement) bool {
	for _, c := range p.Cells {
		if m, ok := b.MarkerAt(c); ok && m.Color != t.Color {
			return false
		}
	}
	return true
}

// CountRule requires the number of markers a tile covers or borders to equal
// the count printed on the tile. Tiles with tile.AnyCount are unconstrained.
type CountRule struct{}

// Allows implements Rule.
func (CountRule) Allows(b *Board, t tile.Tile, p Placement) bool {
	if t.Count == tile.AnyCount {
		return true
	}
	return len(b.MarkersTouched(p)) == t.Count
}

// Rules combines rules conjunctively: a placement is allowed only if every
// rule allows it.
type Rules []Rule

// Allows implements Rule.
func (rs Rules) Allows(b *Board, t tile.Tile, p Placement) bool {
	for _, r := range rs {
		if !r.Allows(b, t, p) {
			return false
		}
	}
	return true
}

// DefaultRule returns the rule used when an instance does not specify one:
// color matching between tile cells and covered markers.
func DefaultRule() Rule { return ColorRule{} }
