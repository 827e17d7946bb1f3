package geom

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Shape
		want Shape
	}{
		{
			name: "AlreadyCanonical",
			in:   Shape{{0, 0}, {1, 0}},
			want: Shape{{0, 0}, {1, 0}},
		},
		{
			name: "TranslatesToOrigin",
			in:   Shape{{3, 5}, {4, 5}},
			want: Shape{{0, 0}, {1, 0}},
		},
		{
			name: "NegativeOffsets",
			in:   Shape{{0, 1}, {0, 0}, {-1, -1}},
			want: Shape{{0, 0}, {1, 1}, {1, 2}},
		},
		{
			name: "DropsDuplicates",
			in:   Shape{{2, 2}, {2, 2}, {2, 3}},
			want: Shape{{0, 0}, {0, 1}},
		},
		{
			name: "Empty",
			in:   Shape{},
			want: Shape{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.Equal(tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrientationCounts(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"Monomino", NewShape(Cell{0, 0}), 1},
		{"Domino", NewShape(Cell{0, 0}, Cell{1, 0}), 2},
		{"Square", NewShape(Cell{0, 0}, Cell{0, 1}, Cell{1, 0}, Cell{1, 1}), 1},
		{"ITromino", NewShape(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}), 2},
		{"LTromino", NewShape(Cell{0, 0}, Cell{1, 0}, Cell{1, 1}), 4},
		{"TTetromino", NewShape(Cell{0, 0}, Cell{0, 1}, Cell{0, 2}, Cell{1, 1}), 4},
		{"STetromino", NewShape(Cell{0, 1}, Cell{0, 2}, Cell{1, 0}, Cell{1, 1}), 4},
		{"LTetromino", NewShape(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{2, 1}), 8},
		{"Plus", NewShape(Cell{0, 1}, Cell{1, 0}, Cell{1, 1}, Cell{1, 2}, Cell{2, 1}), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Orientations(tt.shape)
			if len(got) != tt.want {
				t.Fatalf("len(Orientations) = %d, want %d", len(got), tt.want)
			}
			if 8%len(got) != 0 {
				t.Errorf("orientation count %d does not divide 8", len(got))
			}
		})
	}
}

// Every generated orientation, transformed again and re-normalized, must
// already be present in the returned set (closure under canonicalization),
// and the set must contain no duplicates.
func TestOrientationsClosedAndDuplicateFree(t *testing.T) {
	shapes := []Shape{
		NewShape(Cell{0, 0}),
		NewShape(Cell{0, 0}, Cell{1, 1}),
		NewShape(Cell{1, 0}, Cell{0, 0}, Cell{0, 1}),
		NewShape(Cell{1, 1}, Cell{0, 0}, Cell{-1, 1}),
		NewShape(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{2, 1}),
	}

	for _, s := range shapes {
		ors := Orientations(s)

		keys := make(map[string]struct{}, len(ors))
		for _, o := range ors {
			k := o.Key()
			if _, dup := keys[k]; dup {
				t.Fatalf("duplicate orientation %q for shape %q", k, s.Key())
			}
			keys[k] = struct{}{}
		}

		for _, o := range ors {
			for _, oo := range []Shape{o.rotate(), o.mirror()} {
				if _, ok := keys[oo.Key()]; !ok {
					t.Errorf("shape %q: transform %q of orientation %q missing from set",
						s.Key(), oo.Key(), o.Key())
				}
			}
		}
	}
}

func TestOrientationsDeterministic(t *testing.T) {
	s := NewShape(Cell{0, 0}, Cell{1, 0}, Cell{2, 0}, Cell{2, 1})
	a, b := Orientations(s), Orientations(s)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Errorf("orientation %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestShapeContains(t *testing.T) {
	s := NewShape(Cell{0, 0}, Cell{0, 1}, Cell{1, 1})
	if !s.Contains(Cell{1, 1}) {
		t.Error("Contains(1,1) = false, want true")
	}
	if s.Contains(Cell{1, 0}) {
		t.Error("Contains(1,0) = true, want false")
	}
}

func TestShapeBounds(t *testing.T) {
	h, w := NewShape(Cell{0, 0}, Cell{2, 1}).Bounds()
	if h != 3 || w != 2 {
		t.Errorf("Bounds() = (%d,%d), want (3,2)", h, w)
	}
}

func TestCellOrdering(t *testing.T) {
	cells := []Cell{{1, 0}, {0, 2}, {0, 0}, {1, 1}}
	slices.SortFunc(cells, Compare)
	want := []Cell{{0, 0}, {0, 2}, {1, 0}, {1, 1}}
	if !slices.Equal(cells, want) {
		t.Errorf("sorted = %v, want %v", cells, want)
	}
}
