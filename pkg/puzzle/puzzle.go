// Package puzzle binds a board, a virus layout and a tile inventory into a
// single solvable instance.
//
// Construction validates every precondition the solver relies on — cell-count
// arithmetic, marker placement, tile identities — so that search can never
// fail for a malformed reason. Solve and Render are the instance's entire
// contract towards external callers (generator, renderer, CLI, API).
package puzzle

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"slices"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	apperrors "github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/errors"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/geom"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/solver"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/tile"
)

// Definition is the raw, serializable description of an instance: board
// size, holes, virus markers and tile inventory. It carries no derived data;
// pkg/io reads and writes it as JSON or TOML.
type Definition struct {
	Width   int            `json:"width" toml:"width"`
	Height  int            `json:"height" toml:"height"`
	Holes   []geom.Cell    `json:"holes,omitempty" toml:"holes"`
	Markers []board.Marker `json:"markers,omitempty" toml:"markers"`
	Tiles   []tile.Tile    `json:"tiles" toml:"tiles"`
}

// Renderer consumes an instance and, optionally, a solved placement
// sequence, and produces a human-readable depiction. Implementations must
// treat their arguments as read-only views.
type Renderer interface {
	Render(w io.Writer, inst *Instance, sol *solver.Solution) error
}

// Option configures instance construction.
type Option func(*Instance)

// WithRule overrides the adjacency rule (default: board.DefaultRule).
func WithRule(r board.Rule) Option {
	return func(in *Instance) { in.rule = r }
}

// Instance is an immutable, solvable puzzle: board, precomputed reduced
// orientation sets, and the adjacency rule. A fresh board state is created
// for every Solve call, so an Instance may be solved repeatedly.
type Instance struct {
	def    Definition
	board  *board.Board
	pieces []solver.Piece
	rule   board.Rule
}

// New validates the definition and builds an instance. All precondition
// violations surface here, as structured errors with INVALID_* codes; a
// successfully constructed instance can only ever fail to solve by
// exhaustion.
func New(def Definition, opts ...Option) (*Instance, error) {
	b, err := board.New(def.Width, def.Height, def.Holes, def.Markers)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInstance, err,
			"invalid board %dx%d", def.Width, def.Height)
	}

	seen := make(map[string]struct{}, len(def.Tiles))
	cellCount := 0
	for _, t := range def.Tiles {
		if err := apperrors.ValidateTileName(t.Name); err != nil {
			return nil, err
		}
		if err := apperrors.ValidateColor(t.Color); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidTile, err, "tile %q", t.Name)
		}
		if t.Shape.Len() == 0 {
			return nil, apperrors.New(apperrors.ErrCodeInvalidTile, "tile %q has an empty shape", t.Name)
		}
		if !t.Shape.Equal(t.Shape.Normalize()) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidTile, "tile %q shape is not canonical", t.Name)
		}
		if _, dup := seen[t.Name]; dup {
			return nil, apperrors.New(apperrors.ErrCodeDuplicateTile, "duplicate tile %q", t.Name)
		}
		seen[t.Name] = struct{}{}
		cellCount += t.Shape.Len()
	}

	// An instance whose tiles cannot cover the free cells exactly can never
	// reach terminal success; reject before any search happens.
	if free := b.FreeCells(); cellCount != free {
		return nil, apperrors.New(apperrors.ErrCodeSizeMismatch,
			"tiles cover %d cells, board has %d free cells", cellCount, free)
	}

	in := &Instance{
		def:    cloneDefinition(def),
		board:  b,
		pieces: solver.NewPieces(def.Tiles),
		rule:   board.DefaultRule(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in, nil
}

// Solve runs the backtracking search and returns the first complete valid
// covering, solver.ErrNoSolution on exhaustion, or the context error if
// canceled. Repeated calls on the same instance return identical solutions.
func (in *Instance) Solve(ctx context.Context) (*solver.Solution, solver.Stats, error) {
	return solver.Solve(ctx, in.board, in.pieces, in.rule)
}

// Render delegates the display of the instance (and an optional solution) to
// the external renderer.
func (in *Instance) Render(w io.Writer, r Renderer, sol *solver.Solution) error {
	return r.Render(w, in, sol)
}

// Board returns the fixed board of the instance.
func (in *Instance) Board() *board.Board { return in.board }

// Tiles returns a copy of the tile inventory in definition order.
func (in *Instance) Tiles() []tile.Tile { return slices.Clone(in.def.Tiles) }

// TileByName returns the inventory tile with the given name.
func (in *Instance) TileByName(name string) (tile.Tile, bool) {
	for _, t := range in.def.Tiles {
		if t.Name == name {
			return t, true
		}
	}
	return tile.Tile{}, false
}

// Pieces returns the precomputed reduced orientation sets.
func (in *Instance) Pieces() []solver.Piece { return slices.Clone(in.pieces) }

// Definition returns a deep copy of the raw definition.
func (in *Instance) Definition() Definition { return cloneDefinition(in.def) }

// Fingerprint returns a stable hex digest of the definition, usable as a
// cache or storage key. Holes and markers are sorted before hashing so that
// equivalent definitions share a fingerprint.
func (in *Instance) Fingerprint() string {
	def := cloneDefinition(in.def)
	slices.SortFunc(def.Holes, geom.Compare)
	slices.SortFunc(def.Markers, func(a, b board.Marker) int { return geom.Compare(a.Cell, b.Cell) })
	data, _ := json.Marshal(def)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.Holes = slices.Clone(def.Holes)
	out.Markers = slices.Clone(def.Markers)
	out.Tiles = make([]tile.Tile, len(def.Tiles))
	for i, t := range def.Tiles {
		t.Shape = slices.Clone(t.Shape)
		out.Tiles[i] = t
	}
	return out
}
