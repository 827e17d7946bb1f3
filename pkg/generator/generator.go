// Package generator samples random solvable puzzle instances.
//
// Generation mirrors the original game's problem creator: pick a board, carve
// holes so the cell-count arithmetic works out, sprinkle virus markers, then
// ask the solver whether the instance is feasible. "No solution" is a signal
// to resample, not an error; only exhausting the attempt budget fails.
package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// ErrExhausted is returned when no solvable instance was found within the
// attempt budget. Loosen the options (fewer markers, more attempts) and retry.
var ErrExhausted = errors.New("generator: attempt budget exhausted")

// DefaultAttempts bounds resampling when markers make instances infeasible.
const DefaultAttempts = 200

// Options configures instance sampling. The zero value is not usable; use
// Defaults as a starting point.
type Options struct {
	// Width and Height give the board dimensions.
	Width  int
	Height int

	// Inventory is the candidate tile set; a random subset is drawn each
	// attempt. Defaults to tile.Standard().
	Inventory []tile.Tile

	// Markers is the number of virus markers to place.
	Markers int

	// Rule is the adjacency rule instances are validated against.
	// Defaults to board.DefaultRule().
	Rule board.Rule

	// Seed makes sampling reproducible. Zero seeds from the clock.
	Seed int64

	// Attempts bounds resampling. Defaults to DefaultAttempts.
	Attempts int
}

// Defaults returns options for a small standard-inventory board.
func Defaults() Options {
	return Options{
		Width:    4,
		Height:   4,
		Markers:  2,
		Attempts: DefaultAttempts,
	}
}

// Result is a generated instance together with the witness solution that
// proves it solvable.
type Result struct {
	// ID is a fresh UUID identifying the generated puzzle.
	ID string
	// Definition is the sampled instance definition.
	Definition puzzle.Definition
	// Solution is the covering found while validating solvability.
	Solution *solver.Solution
	// Attempts is how many samples were drawn, including the successful one.
	Attempts int
}

// Generate samples random instances until one is solvable or the attempt
// budget runs out. Identical options (with a non-zero seed) produce identical
// results.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("generator: bad board size %dx%d", opts.Width, opts.Height)
	}
	inventory := opts.Inventory
	if inventory == nil {
		inventory = tile.Standard()
	}
	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for n := 1; n <= attempts; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		def, ok := sample(rng, opts, inventory)
		if !ok {
			continue
		}
		inst, err := puzzle.New(def, puzzle.WithRule(opts.Rule))
		if err != nil {
			// Sampling guarantees the arithmetic; anything else is a bug in
			// the inventory handed to us.
			return nil, err
		}
		sol, _, err := inst.Solve(ctx)
		if errors.Is(err, solver.ErrNoSolution) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &Result{
			ID:         uuid.NewString(),
			Definition: def,
			Solution:   sol,
			Attempts:   n,
		}, nil
	}
	return nil, fmt.Errorf("%w after %d attempts", ErrExhausted, attempts)
}

// sample draws one candidate definition: a random tile subset, holes filling
// the arithmetic gap, and random markers colored from the drawn tiles.
func sample(rng *rand.Rand, opts Options, inventory []tile.Tile) (puzzle.Definition, bool) {
	total := opts.Width * opts.Height

	// Draw tiles in random order until the next tile would overshoot the
	// board; the remaining gap becomes holes.
	shuffled := slices.Clone(inventory)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	var tiles []tile.Tile
	cells := 0
	for _, t := range shuffled {
		if cells+t.Size() > total {
			continue
		}
		tiles = append(tiles, t)
		cells += t.Size()
	}
	if len(tiles) == 0 {
		return puzzle.Definition{}, false
	}

	// Holes fill the gap so the covering arithmetic is exact.
	free := make([]geom.Cell, 0, total)
	for row := 0; row < opts.Height; row++ {
		for col := 0; col < opts.Width; col++ {
			free = append(free, geom.Cell{Row: row, Col: col})
		}
	}
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })
	holes := slices.Clone(free[:total-cells])
	free = free[total-cells:]

	// Markers land on distinct free cells, colored like randomly drawn tiles
	// so the color rule stays satisfiable.
	count := min(opts.Markers, len(free))
	markers := make([]board.Marker, 0, count)
	for i := 0; i < count; i++ {
		markers = append(markers, board.Marker{
			Cell:  free[i],
			Color: tiles[rng.Intn(len(tiles))].Color,
		})
	}

	return puzzle.Definition{
		Width:   opts.Width,
		Height:  opts.Height,
		Holes:   holes,
		Markers: markers,
		Tiles:   tiles,
	}, true
}
