// Package geom provides the grid geometry for tile-placement puzzles.
//
// A board cell is addressed by (row, column). A tile footprint is a Shape: a
// set of relative cell offsets, canonicalized so that its minimal row and
// minimal column are both zero. Orientations computes the distinct rotation
// and reflection variants of a shape under the dihedral group of order 8,
// which is the only part of the system where symmetry bugs (missed or
// duplicated orientations) can hide.
package geom

import (
	"fmt"
	"slices"
	"strings"
)

// Cell identifies one unit square of a board by row and column.
// Rows grow downward, columns grow rightward.
type Cell struct {
	Row int `json:"row" toml:"row"`
	Col int `json:"col" toml:"col"`
}

// Add returns the cell translated by o.
func (c Cell) Add(o Cell) Cell { return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col} }

// Sub returns the cell translated by -o.
func (c Cell) Sub(o Cell) Cell { return Cell{Row: c.Row - o.Row, Col: c.Col - o.Col} }

// String returns the cell as "(row,col)".
func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Less orders cells topologically: by row first, then by column.
// This is the ordering the solver uses to pick the next cell to fill.
func Less(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// Compare returns -1, 0 or +1 comparing a and b in topological order.
func Compare(a, b Cell) int {
	if a.Row != b.Row {
		if a.Row < b.Row {
			return -1
		}
		return 1
	}
	if a.Col != b.Col {
		if a.Col < b.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Shape is an immutable set of relative cell offsets defining a tile
// footprint. A canonical shape is sorted in topological order, contains no
// duplicate offsets, and is translated so that its minimal row and minimal
// column are both zero. All shapes returned by NewShape, Normalize and
// Orientations are canonical.
type Shape []Cell

// NewShape builds a canonical shape from the given offsets.
// Duplicate offsets are collapsed. The empty shape is allowed here;
// callers that require non-empty footprints must check Len themselves.
func NewShape(cells ...Cell) Shape {
	return Shape(slices.Clone(cells)).Normalize()
}

// Len returns the number of cells in the footprint.
func (s Shape) Len() int { return len(s) }

// Contains reports whether the shape includes the given offset.
func (s Shape) Contains(c Cell) bool {
	_, ok := slices.BinarySearchFunc(s, c, Compare)
	return ok
}

// Normalize returns the canonical form of the shape: offsets translated so
// the minimal row and column are zero, sorted, with duplicates removed.
// The receiver is not modified.
func (s Shape) Normalize() Shape {
	if len(s) == 0 {
		return Shape{}
	}
	minRow, minCol := s[0].Row, s[0].Col
	for _, c := range s[1:] {
		minRow = min(minRow, c.Row)
		minCol = min(minCol, c.Col)
	}
	out := make(Shape, 0, len(s))
	for _, c := range s {
		out = append(out, Cell{Row: c.Row - minRow, Col: c.Col - minCol})
	}
	slices.SortFunc(out, Compare)
	return slices.CompactFunc(out, func(a, b Cell) bool { return a == b })
}

// Key returns a canonical string encoding of the shape, usable as a map key.
// Two shapes are geometrically identical iff their normalized keys are equal.
func (s Shape) Key() string {
	var b strings.Builder
	for i, c := range s {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%d,%d", c.Row, c.Col)
	}
	return b.String()
}

// Equal reports whether two canonical shapes are identical.
func (s Shape) Equal(o Shape) bool { return slices.Equal(s, o) }

// Bounds returns the height and width of the shape's bounding box.
// The empty shape has zero bounds.
func (s Shape) Bounds() (h, w int) {
	for _, c := range s {
		h = max(h, c.Row+1)
		w = max(w, c.Col+1)
	}
	return h, w
}

// rotate returns the shape rotated 90 degrees clockwise, canonicalized.
func (s Shape) rotate() Shape {
	out := make(Shape, 0, len(s))
	for _, c := range s {
		out = append(out, Cell{Row: c.Col, Col: -c.Row})
	}
	return out.Normalize()
}

// mirror returns the shape reflected across the vertical axis, canonicalized.
func (s Shape) mirror() Shape {
	out := make(Shape, 0, len(s))
	for _, c := range s {
		out = append(out, Cell{Row: c.Row, Col: -c.Col})
	}
	return out.Normalize()
}

// Orientations returns the distinct orientations of the shape under the
// dihedral group of order 8: the identity, three rotations, and the four
// rotations of the mirrored shape. Geometrically identical transforms are
// collapsed, so the result has 1, 2, 4 or 8 elements for typical shapes.
// Ordering is deterministic (first appearance in transform order), which in
// turn makes the solver deterministic.
func Orientations(s Shape) []Shape {
	seen := make(map[string]struct{}, 8)
	out := make([]Shape, 0, 8)
	cur := s.Normalize()
	for _, flipped := range []bool{false, true} {
		if flipped {
			cur = s.mirror()
		}
		for i := 0; i < 4; i++ {
			if k := cur.Key(); k != "" || len(cur) == 0 {
				if _, dup := seen[k]; !dup {
					seen[k] = struct{}{}
					out = append(out, cur)
				}
			}
			cur = cur.rotate()
		}
	}
	return out
}
