package table

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"

	"github.com/belot/belot/pkg/belot"
	"github.com/belot/belot/pkg/config"
	"github.com/belot/belot/pkg/events"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTooManyTables = errors.New("too many open tables")
	ErrNotInTable    = errors.New("player is not seated at any table")
)

// Manager is the registry of live tables. A player sits at one table at a
// time; joining or creating a second table while the first is still waiting
// detaches them from the first. Finished tables are parked for a retention
// window so late status requests still resolve.
type Manager struct {
	mu       sync.RWMutex
	tables   map[string]*Table
	byPlayer map[int64]string

	finished *expirable.LRU[string, belot.Status]
	stream   *events.Stream

	maxTables int
	target    int
}

// Option customizes a Manager.
type Option func(*Manager)

// WithStream attaches an event stream. Lifecycle events are published after
// the mutation that caused them has committed.
func WithStream(s *events.Stream) Option {
	return func(m *Manager) { m.stream = s }
}

// WithMaxTables caps the number of simultaneously open tables.
func WithMaxTables(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxTables = n
		}
	}
}

// WithTarget overrides the game-over score threshold for new tables.
func WithTarget(target int) Option {
	return func(m *Manager) {
		if target > 0 {
			m.target = target
		}
	}
}

// NewManager builds a registry with limits taken from configuration unless
// overridden by options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		tables:    make(map[string]*Table),
		byPlayer:  make(map[int64]string),
		maxTables: config.MaxTables(),
		target:    config.TargetScore(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.finished = expirable.NewLRU[string, belot.Status](m.maxTables, nil, config.FinishedRetention())
	return m
}

func newTableID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// Create opens a table and seats the creator. A creator still waiting at
// another table is detached from it first.
func (m *Manager) Create(ctx context.Context, creator int64, name string, seats int) (*Table, error) {
	m.mu.Lock()
	if len(m.tables) >= m.maxTables {
		m.mu.Unlock()
		return nil, ErrTooManyTables
	}
	evs, err := m.detachLocked(creator)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	id := newTableID()
	for m.tables[id] != nil {
		id = newTableID()
	}
	t := &Table{
		id:        id,
		creator:   creator,
		createdAt: time.Now(),
		game:      belot.NewGame(id, seats, belot.WithTarget(m.target)),
	}
	t.game.AddPlayer(creator, name)
	m.tables[id] = t
	m.byPlayer[creator] = id
	m.mu.Unlock()

	log.Info().Str("table", id).Int64("creator", creator).Int("seats", t.game.Mode()).Msg("table created")
	evs = append(evs, events.New(events.TypeTableCreated, id).WithPlayer(creator))
	m.publish(ctx, evs)
	return t, nil
}

// Join seats a player at an open table. Filling the last seat starts the
// first round immediately.
func (m *Manager) Join(ctx context.Context, tableID string, playerID int64, name string) (*Table, error) {
	m.mu.Lock()
	t := m.tables[tableID]
	if t == nil {
		m.mu.Unlock()
		return nil, ErrTableNotFound
	}
	if m.byPlayer[playerID] == tableID {
		m.mu.Unlock()
		return nil, belot.ErrAlreadySeated
	}
	evs, err := m.detachLocked(playerID)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}

	t.mu.Lock()
	if err := t.game.AddPlayer(playerID, name); err != nil {
		t.mu.Unlock()
		m.mu.Unlock()
		m.publish(ctx, evs)
		return nil, err
	}
	started := false
	if t.game.IsFull() {
		if _, err := t.game.StartRound(); err == nil {
			started = true
		}
	}
	t.mu.Unlock()
	m.byPlayer[playerID] = tableID
	m.mu.Unlock()

	log.Info().Str("table", tableID).Int64("player", playerID).Bool("started", started).Msg("player joined")
	evs = append(evs, events.New(events.TypePlayerJoined, tableID).WithPlayer(playerID))
	if started {
		evs = append(evs, events.New(events.TypeRoundStarted, tableID))
	}
	m.publish(ctx, evs)
	return t, nil
}

// Leave unseats a player from a table that has not started. The creator
// leaving closes the table for everyone.
func (m *Manager) Leave(ctx context.Context, playerID int64) error {
	m.mu.Lock()
	id, ok := m.byPlayer[playerID]
	if !ok {
		m.mu.Unlock()
		return ErrNotInTable
	}
	t := m.tables[id]

	t.mu.Lock()
	if t.game.State() != belot.StateWaiting {
		t.mu.Unlock()
		m.mu.Unlock()
		return belot.ErrWrongPhase
	}
	var evs []events.Event
	if playerID == t.creator {
		evs = m.closeLocked(t)
	} else {
		t.game.RemovePlayer(playerID)
		delete(m.byPlayer, playerID)
		evs = append(evs, events.New(events.TypePlayerLeft, id).WithPlayer(playerID))
	}
	t.mu.Unlock()
	m.mu.Unlock()

	log.Info().Str("table", id).Int64("player", playerID).Msg("player left")
	m.publish(ctx, evs)
	return nil
}

// Close removes a table regardless of phase and parks its final status.
func (m *Manager) Close(ctx context.Context, tableID string) error {
	m.mu.Lock()
	t := m.tables[tableID]
	if t == nil {
		m.mu.Unlock()
		return ErrTableNotFound
	}
	t.mu.Lock()
	evs := m.closeLocked(t)
	t.mu.Unlock()
	m.mu.Unlock()

	log.Info().Str("table", tableID).Msg("table closed")
	m.publish(ctx, evs)
	return nil
}

// closeLocked drops the table, unseats everyone and parks the last status.
// Both m.mu and t.mu must be held.
func (m *Manager) closeLocked(t *Table) []events.Event {
	for _, p := range t.game.Players() {
		delete(m.byPlayer, p)
	}
	delete(m.tables, t.id)
	m.finished.Add(t.id, t.game.Status())
	return []events.Event{events.New(events.TypeTableClosed, t.id)}
}

// detachLocked removes the player from a previous still-waiting table, if
// any. A player mid-game elsewhere is rejected instead of detached. A
// creator detaching closes their old table. m.mu must be held.
func (m *Manager) detachLocked(playerID int64) ([]events.Event, error) {
	id, ok := m.byPlayer[playerID]
	if !ok {
		return nil, nil
	}
	t := m.tables[id]
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game.State() != belot.StateWaiting {
		return nil, belot.ErrAlreadySeated
	}
	if playerID == t.creator {
		return m.closeLocked(t), nil
	}
	t.game.RemovePlayer(playerID)
	delete(m.byPlayer, playerID)
	return []events.Event{events.New(events.TypePlayerLeft, id).WithPlayer(playerID)}, nil
}

// Get returns a live table by id.
func (m *Manager) Get(tableID string) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[tableID]
	return t, ok
}

// ByPlayer returns the live table a player is seated at.
func (m *Manager) ByPlayer(playerID int64) (*Table, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byPlayer[playerID]
	if !ok {
		return nil, false
	}
	return m.tables[id], true
}

// Finished returns the parked status of a recently closed table.
func (m *Manager) Finished(tableID string) (belot.Status, bool) {
	return m.finished.Get(tableID)
}

// Count returns the number of live tables.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *Manager) publish(ctx context.Context, evs []events.Event) {
	if m.stream == nil {
		return
	}
	for _, ev := range evs {
		if err := m.stream.Publish(ctx, ev); err != nil {
			log.Warn().Err(err).Str("table", ev.TableID).Str("type", string(ev.Type)).Msg("publish event failed")
		}
	}
}
