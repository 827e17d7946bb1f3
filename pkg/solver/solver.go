// Package solver implements the backtracking search that covers a board
// completely with a tile multiset, or proves that no covering exists.
//
// The search is single-threaded and deterministic: at each node it selects
// the topologically first uncovered cell, tries every remaining tile in every
// reduced orientation at every anchor that makes the orientation cover that
// cell, and recurses with an explicit commit/undo discipline. The first
// complete covering found is returned; exhaustion is reported as
// ErrNoSolution, which is an expected outcome, not a fault.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// ErrNoSolution is returned when the search space is exhausted without a
// complete covering. Callers must branch on it with errors.Is; it is the
// normal outcome for infeasible instances.
var ErrNoSolution = errors.New("no solution")

// Piece pairs a tile with its reduced orientation set, computed once so the
// search never re-derives or re-tries a geometrically identical orientation.
type Piece struct {
	Tile         tile.Tile
	Orientations []geom.Shape
}

// NewPiece precomputes the reduced orientation set for a tile.
func NewPiece(t tile.Tile) Piece {
	return Piece{Tile: t, Orientations: tile.Orientations(t)}
}

// NewPieces precomputes pieces for a whole inventory, preserving order.
func NewPieces(tiles []tile.Tile) []Piece {
	out := make([]Piece, len(tiles))
	for i, t := range tiles {
		out[i] = NewPiece(t)
	}
	return out
}

// dupKey identifies interchangeable pieces so the search does not explore the
// same covering once per permutation of identical tiles.
func (p Piece) dupKey() string {
	return fmt.Sprintf("%s|%s|%d", p.Tile.Shape.Key(), p.Tile.Color, p.Tile.Count)
}

// Solution is a complete valid covering: the sequence of placements in the
// order the search committed them.
type Solution struct {
	Placements []board.Placement `json:"placements"`
}

// Stats reports the work a solve performed.
type Stats struct {
	// Nodes is the number of candidate placements examined.
	Nodes int `json:"nodes"`
	// Depth is the maximum committed-placement depth reached.
	Depth int `json:"depth"`
	// Duration is the wall-clock search time.
	Duration time.Duration `json:"duration"`
}

// Solve searches for a complete covering of b by the given pieces under the
// given adjacency rule. It returns the first solution found, ErrNoSolution on
// exhaustion, or the context's error if the search was canceled. Two calls
// with identical piece and orientation ordering return identical solutions.
func Solve(ctx context.Context, b *board.Board, pieces []Piece, rule board.Rule) (*Solution, Stats, error) {
	if rule == nil {
		rule = board.DefaultRule()
	}
	start := time.Now()
	st := board.NewState(b)
	used := make([]bool, len(pieces))
	acc := make([]board.Placement, 0, len(pieces))
	var stats Stats

	var dfs func() bool
	dfs = func() bool {
		if ctx.Err() != nil {
			return false
		}
		cell, ok := st.FirstUncovered()
		if !ok {
			return true
		}
		for i, pc := range pieces {
			if used[i] {
				continue
			}
			// Identical unused pieces generate identical subtrees; only the
			// first of each group is tried at any node.
			if skipDuplicate(pieces, used, i) {
				continue
			}
			for _, or := range pc.Orientations {
				for _, off := range or {
					stats.Nodes++
					p := board.Place(pc.Tile.Name, or, cell.Sub(off))
					if !st.Fits(p) {
						continue
					}
					if !rule.Allows(b, pc.Tile, p) {
						continue
					}
					st.Commit(p)
					used[i] = true
					acc = append(acc, p)
					stats.Depth = max(stats.Depth, len(acc))
					if dfs() {
						return true
					}
					acc = acc[:len(acc)-1]
					used[i] = false
					st.Undo(p)
				}
			}
		}
		return false
	}

	found := dfs()
	stats.Duration = time.Since(start)
	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if !found {
		return nil, stats, ErrNoSolution
	}
	sol := &Solution{Placements: make([]board.Placement, len(acc))}
	copy(sol.Placements, acc)
	return sol, stats, nil
}

// skipDuplicate reports whether an earlier, still-unused piece is
// interchangeable with pieces[i].
func skipDuplicate(pieces []Piece, used []bool, i int) bool {
	key := pieces[i].dupKey()
	for j := 0; j < i; j++ {
		if !used[j] && pieces[j].dupKey() == key {
			return true
		}
	}
	return false
}

// Moves returns the number of placements in the solution.
func (s *Solution) Moves() int {
	if s == nil {
		return 0
	}
	return len(s.Placements)
}
