package solver

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

const (
	red  = "#e50000"
	blue = "#0343df"
)

func domino(name, color string) tile.Tile {
	return tile.New(name, color, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 0, Col: 1})
}

func mustBoard(t *testing.T, w, h int, holes []geom.Cell, markers []board.Marker) *board.Board {
	t.Helper()
	b, err := board.New(w, h, holes, markers)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// checkSound verifies the solver-soundness property: every placement passes
// the rule, and the union of placement cells covers the playable cells of the
// board exactly once each.
func checkSound(t *testing.T, b *board.Board, pieces []Piece, rule board.Rule, sol *Solution) {
	t.Helper()
	if rule == nil {
		rule = board.DefaultRule()
	}
	byName := make(map[string]tile.Tile, len(pieces))
	for _, pc := range pieces {
		byName[pc.Tile.Name] = pc.Tile
	}

	covered := make(map[geom.Cell]struct{})
	for _, p := range sol.Placements {
		tl, ok := byName[p.Tile]
		if !ok {
			t.Fatalf("solution places unknown tile %q", p.Tile)
		}
		if !rule.Allows(b, tl, p) {
			t.Errorf("placement of %q at %s violates the rule", p.Tile, p.Anchor)
		}
		for _, c := range p.Cells {
			if !b.Playable(c) {
				t.Errorf("placement cell %s is not playable", c)
			}
			if _, dup := covered[c]; dup {
				t.Errorf("cell %s covered twice", c)
			}
			covered[c] = struct{}{}
		}
	}
	if len(covered) != b.FreeCells() {
		t.Errorf("solution covers %d cells, board has %d", len(covered), b.FreeCells())
	}
}

func TestSolveTwoDominoes(t *testing.T) {
	b := mustBoard(t, 2, 2, nil, nil)
	pieces := NewPieces([]tile.Tile{domino("a", red), domino("b", blue)})

	sol, stats, err := Solve(context.Background(), b, pieces, nil)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Moves() != 2 {
		t.Fatalf("Moves = %d, want 2", sol.Moves())
	}
	if stats.Nodes == 0 {
		t.Error("Stats.Nodes = 0, want > 0")
	}
	checkSound(t, b, pieces, nil, sol)
}

func TestSolveNoSolutionOnMarkerConflict(t *testing.T) {
	// A single red marker that only a blue inventory could cover.
	b := mustBoard(t, 2, 2, nil, []board.Marker{{Cell: geom.Cell{Row: 0, Col: 0}, Color: red}})
	pieces := NewPieces([]tile.Tile{domino("a", blue), domino("b", blue)})

	sol, _, err := Solve(context.Background(), b, pieces, board.ColorRule{})
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Solve error = %v, want ErrNoSolution", err)
	}
	if sol != nil {
		t.Errorf("Solve returned a solution alongside ErrNoSolution")
	}
}

func TestSolveNoSolutionOnParity(t *testing.T) {
	// Two horizontal-only cells short: 3 free cells cannot be covered by a
	// single domino plus nothing; the solver must exhaust, not hang.
	b := mustBoard(t, 3, 1, nil, nil)
	pieces := NewPieces([]tile.Tile{domino("a", red)})

	_, _, err := Solve(context.Background(), b, pieces, nil)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("Solve error = %v, want ErrNoSolution", err)
	}
}

func TestSolveWithHolesAndMarkers(t *testing.T) {
	// 3x3 with a central hole; two red cells must host the red domino.
	b := mustBoard(t, 3, 3, []geom.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 2}},
		[]board.Marker{
			{Cell: geom.Cell{Row: 0, Col: 0}, Color: red},
			{Cell: geom.Cell{Row: 0, Col: 1}, Color: red},
		})
	inv := []tile.Tile{
		domino("r", red),
		domino("b1", blue),
		tile.New("tri", blue, geom.Cell{Row: 0, Col: 0}, geom.Cell{Row: 1, Col: 0}, geom.Cell{Row: 1, Col: 1}),
	}
	pieces := NewPieces(inv)

	sol, _, err := Solve(context.Background(), b, pieces, board.ColorRule{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	checkSound(t, b, pieces, board.ColorRule{}, sol)

	for _, p := range sol.Placements {
		for _, c := range p.Cells {
			if m, ok := b.MarkerAt(c); ok && p.Tile != "r" {
				t.Errorf("marker %s covered by %q, want the red domino", m.Cell, p.Tile)
			}
		}
	}
}

func TestSolveDeterminism(t *testing.T) {
	b := mustBoard(t, 4, 2, nil, nil)
	inv := []tile.Tile{
		domino("a", red), domino("b", blue), domino("c", red), domino("d", blue),
	}

	first, _, err := Solve(context.Background(), b, NewPieces(inv), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := Solve(context.Background(), b, NewPieces(inv), nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Placements) != len(second.Placements) {
		t.Fatalf("placement counts differ: %d vs %d", first.Moves(), second.Moves())
	}
	for i := range first.Placements {
		a, o := first.Placements[i], second.Placements[i]
		if a.Tile != o.Tile || a.Anchor != o.Anchor || !slices.Equal(a.Cells, o.Cells) {
			t.Errorf("placement %d differs: %+v vs %+v", i, a, o)
		}
	}
}

func TestSolveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := mustBoard(t, 2, 2, nil, nil)
	pieces := NewPieces([]tile.Tile{domino("a", red), domino("b", blue)})

	_, _, err := Solve(ctx, b, pieces, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve error = %v, want context.Canceled", err)
	}
}

func TestPieceOrientationReduction(t *testing.T) {
	p := NewPiece(domino("a", red))
	if len(p.Orientations) != 2 {
		t.Errorf("domino orientations = %d, want 2", len(p.Orientations))
	}
}
