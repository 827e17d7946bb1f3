package tile

import (
	"fmt"
	"slices"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
)

// Orientations returns the reduced orientation set of the tile: the minimal
// set of distinct shapes a solver must try so that no placement is missed and
// none is attempted twice. It is a pure function of the footprint; callers
// that place tiles repeatedly should compute it once and reuse it.
func Orientations(t Tile) []geom.Shape {
	return geom.Orientations(t.Shape)
}

// OrientationCount returns the number of equivalence classes of dihedral
// transforms of the tile's footprint: 1 for a fully symmetric shape, up to 8
// for a shape with no symmetry. The count always divides 8.
func OrientationCount(t Tile) int {
	return len(geom.Orientations(t.Shape))
}

// ClassCount pairs a tile name with its distinct-orientation count.
type ClassCount struct {
	Name  string
	Cells int
	Count int
}

// Report aggregates orientation equivalence classes over a tile multiset.
type Report struct {
	// PerTile lists each tile's class count in inventory order.
	PerTile []ClassCount
	// Total is the sum of the per-tile counts: the number of distinct
	// (tile, orientation) configurations the inventory admits.
	Total int
}

// Classes computes the equivalence-class report for an inventory. An
// inventory of N fully symmetric tiles reports a total of N; N tiles with no
// symmetry report 8N.
func Classes(tiles []Tile) Report {
	r := Report{PerTile: make([]ClassCount, 0, len(tiles))}
	for _, t := range tiles {
		n := OrientationCount(t)
		r.PerTile = append(r.PerTile, ClassCount{Name: t.Name, Cells: t.Size(), Count: n})
		r.Total += n
	}
	return r
}

// Max returns the largest per-tile class count in the report, or zero for an
// empty inventory. Useful for sizing display columns.
func (r Report) Max() int {
	m := 0
	for _, c := range r.PerTile {
		m = max(m, c.Count)
	}
	return m
}

// Names returns the tile names in the report, in order.
func (r Report) Names() []string {
	names := make([]string, len(r.PerTile))
	for i, c := range r.PerTile {
		names[i] = c.Name
	}
	return names
}

// Dedupe returns the tiles with exact duplicates (same shape key, color and
// count requirement) removed, preserving first-appearance order. The solver
// uses this property to prune symmetric branches when an inventory carries
// identical pieces.
func Dedupe(tiles []Tile) []Tile {
	seen := make(map[string]struct{}, len(tiles))
	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		k := fmt.Sprintf("%s|%s|%d", t.Shape.Key(), t.Color, t.Count)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return slices.Clip(out)
}
