package tile

import (
	"testing"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
)

func TestStandardInventory(t *testing.T) {
	tiles := Standard()
	if len(tiles) != 9 {
		t.Fatalf("len(Standard()) = %d, want 9", len(tiles))
	}

	seen := make(map[string]struct{})
	for _, tl := range tiles {
		if tl.Name == "" {
			t.Error("standard tile with empty name")
		}
		if _, dup := seen[tl.Name]; dup {
			t.Errorf("duplicate tile name %q", tl.Name)
		}
		seen[tl.Name] = struct{}{}

		if tl.Size() < 2 || tl.Size() > 3 {
			t.Errorf("tile %q has %d cells, want 2 or 3", tl.Name, tl.Size())
		}
		if !tl.Shape.Equal(tl.Shape.Normalize()) {
			t.Errorf("tile %q shape is not canonical: %v", tl.Name, tl.Shape)
		}
		if tl.Count != AnyCount {
			t.Errorf("tile %q count = %d, want AnyCount", tl.Name, tl.Count)
		}
	}
}

func TestByName(t *testing.T) {
	tl, ok := ByName("rouge")
	if !ok {
		t.Fatal(`ByName("rouge") not found`)
	}
	if tl.Size() != 2 {
		t.Errorf("rouge size = %d, want 2", tl.Size())
	}
	if _, ok := ByName("absent"); ok {
		t.Error(`ByName("absent") found, want miss`)
	}
}

func TestOrientationCountReduction(t *testing.T) {
	// A domino must not be tried in more than two orientations, and the two
	// diagonal dominoes (foret, rose) collapse the same way.
	for _, name := range []string{"rouge", "bleu", "foret", "rose"} {
		tl, _ := ByName(name)
		if got := OrientationCount(tl); got != 2 {
			t.Errorf("OrientationCount(%s) = %d, want 2", name, got)
		}
	}
}

func TestClassesAggregation(t *testing.T) {
	square := New("square", "#ffffff",
		geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1}, geom.Cell{Row: 1, Col: 0}, geom.Cell{Row: 1, Col: 1})
	ell := New("ell", "#000000",
		geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}, geom.Cell{Row: 2, Col: 0}, geom.Cell{Row: 2, Col: 1})

	t.Run("SymmetricTilesCountOnce", func(t *testing.T) {
		inv := make([]Tile, 0, 5)
		for i := 0; i < 5; i++ {
			s := square
			s.Name = string(rune('a' + i))
			inv = append(inv, s)
		}
		r := Classes(inv)
		if r.Total != 5 {
			t.Errorf("Total = %d, want 5", r.Total)
		}
	})

	t.Run("AsymmetricTilesCountEight", func(t *testing.T) {
		inv := make([]Tile, 0, 3)
		for i := 0; i < 3; i++ {
			s := ell
			s.Name = string(rune('a' + i))
			inv = append(inv, s)
		}
		r := Classes(inv)
		if r.Total != 24 {
			t.Errorf("Total = %d, want 24", r.Total)
		}
		if r.Max() != 8 {
			t.Errorf("Max = %d, want 8", r.Max())
		}
	})

	t.Run("StandardInventory", func(t *testing.T) {
		r := Classes(Standard())
		if len(r.PerTile) != 9 {
			t.Fatalf("PerTile = %d entries, want 9", len(r.PerTile))
		}
		for _, c := range r.PerTile {
			if 8%c.Count != 0 {
				t.Errorf("tile %s: count %d does not divide 8", c.Name, c.Count)
			}
		}
	})
}

func TestDedupe(t *testing.T) {
	a := New("a", "#e50000", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0})
	b := New("b", "#e50000", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}) // same shape+color
	c := New("c", "#0343df", geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}) // different color

	got := Dedupe([]Tile{a, b, c})
	if len(got) != 2 {
		t.Fatalf("len(Dedupe) = %d, want 2", len(got))
	}
	if got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("Dedupe order = %s,%s, want a,c", got[0].Name, got[1].Name)
	}
}
