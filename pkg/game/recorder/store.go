// Package recorder persists the transitions of rollouts.
package recorder

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"neugym/pkg/engine/world"
)

// Transition is one step of one episode.
type Transition struct {
	RunID   string          `json:"run_id"`
	Episode int             `json:"episode"`
	Time    int             `json:"time"`
	From    world.Coord     `json:"from"`
	Action  world.Direction `json:"action"`
	To      world.Coord     `json:"to"`
	Reward  float64         `json:"reward"`
	Done    bool            `json:"done"`
}

// Store defines append-only persistence for transitions.
type Store interface {
	Init(ctx context.Context) error
	Append(ctx context.Context, ts ...Transition) error
	Transitions(ctx context.Context, runID string) ([]Transition, error)
	Runs(ctx context.Context) ([]string, error)
	Close() error
}

// NewStore returns a store of the given kind: "memory" (the default) or
// "sqlite", which needs a database path.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}
