// Package tile defines the puzzle pieces and the orientation
// equivalence-class reducer.
//
// A tile is a plain data value: a footprint shape plus an identity, a display
// color, and an optional marker-count attribute consumed by the board's
// adjacency rules. The solver's logic is uniform across tiles, so there is no
// per-kind behavior here.
package tile

import (
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
)

// AnyCount marks a tile that places no requirement on the number of virus
// markers it touches.
const AnyCount = -1

// Tile is a rigid puzzle piece. The zero value is not usable: a tile needs a
// unique Name and a non-empty Shape before it can join an instance.
type Tile struct {
	// Name identifies the tile within an instance. Instance construction
	// rejects duplicate names.
	Name string `json:"name" toml:"name"`

	// Color is the tile's display color (hex, e.g. "#e50000"). It doubles as
	// the identity matched against virus markers by the color adjacency rule.
	Color string `json:"color" toml:"color"`

	// Shape is the canonical footprint of the tile before placement.
	Shape geom.Shape `json:"shape" toml:"shape"`

	// Count is the number of virus markers this tile must touch when placed,
	// or AnyCount for no requirement. Consumed by the count adjacency rule.
	Count int `json:"count" toml:"count"`
}

// New builds a tile with no marker-count requirement.
func New(name, color string, cells ...geom.Cell) Tile {
	return Tile{Name: name, Color: color, Shape: geom.NewShape(cells...), Count: AnyCount}
}

// Size returns the number of board cells the tile occupies.
func (t Tile) Size() int { return t.Shape.Len() }

// Standard returns the nine-piece inventory of the physical Anti-Virus game.
// Footprints and colors follow the original game booklet; each call returns a
// fresh slice safe to modify.
func Standard() []Tile {
	return []Tile{
		New("rouge", "#e50000", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}),
		New("bleu", "#0343df", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}),
		New("foret", "#01a049", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 1}),
		New("rose", "#ff81c0", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 1}),
		New("orange", "#f97306", geom.Cell{Row: 0, Col: 1}, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}),
		New("violet", "#be03fd", geom.Cell{Row: 1, Col: 1}, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: -1}),
		New("pomme", "#89fe05", geom.Cell{Row: 1, Col: 0}, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: -1, Col: -1}),
		New("jaune", "#fffd01", geom.Cell{Row: 1, Col: 0}, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: -1, Col: 1}),
		New("nuit", "#0504aa", geom.Cell{Row: 1, Col: 1}, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: -1, Col: -1}),
	}
}

// ByName returns the tile with the given name from the standard inventory.
func ByName(name string) (Tile, bool) {
	for _, t := range Standard() {
		if t.Name == name {
			return t, true
		}
	}
	return Tile{}, false
}
