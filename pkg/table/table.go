package table

import (
	"sync"
	"time"

	"github.com/belot/belot/pkg/belot"
)

// Table pairs one game with the mutex that serializes every action on it.
// All engine transitions are synchronous and in-memory, so the lock is held
// only for bounded work.
type Table struct {
	id        string
	creator   int64
	createdAt time.Time

	mu   sync.Mutex
	game *belot.Game
}

// ID returns the table identifier.
func (t *Table) ID() string { return t.id }

// Creator returns the player who opened the table.
func (t *Table) Creator() int64 { return t.creator }

// CreatedAt returns when the table was opened.
func (t *Table) CreatedAt() time.Time { return t.createdAt }

// Do applies one action to the game under the table lock. An action either
// fully applies or is rejected with no partial mutation; the error is the
// engine's own classification.
func (t *Table) Do(fn func(g *belot.Game) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.game)
}

// Status snapshots the table's game.
func (t *Table) Status() belot.Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Status()
}
