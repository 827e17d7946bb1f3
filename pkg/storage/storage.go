// Package storage persists generated puzzles so they can be replayed,
// shared, or served later. A memory store backs tests and single-run use;
// a MongoDB store backs durable deployments.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/board"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/puzzle"
)

// ErrNotFound is returned when no record exists for the requested ID.
var ErrNotFound = errors.New("puzzle not found")

// Record is a stored puzzle together with the solution that certified it
// solvable at generation time.
type Record struct {
	ID         string            `json:"id" bson:"_id"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
	Definition puzzle.Definition `json:"definition" bson:"definition"`
	Moves      int               `json:"moves" bson:"moves"`
	Placements []board.Placement `json:"placements" bson:"placements"`
}

// Store is the interface both backends implement.
type Store interface {
	// Put inserts or replaces the record keyed by its ID.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID, returning ErrNotFound if absent.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all stored records ordered by creation time, newest
	// first.
	List(ctx context.Context) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
