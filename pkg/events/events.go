package events

import (
	"time"

	"github.com/goccy/go-json"
)

// Type tags a game event.
type Type string

const (
	TypeTableCreated Type = "table_created"
	TypePlayerJoined Type = "player_joined"
	TypePlayerLeft   Type = "player_left"
	TypeRoundStarted Type = "round_started"
	TypeTrumpFixed   Type = "trump_fixed"
	TypeTrickDone    Type = "trick_done"
	TypeRoundEnded   Type = "round_ended"
	TypeGameOver     Type = "game_over"
	TypeTableClosed  Type = "table_closed"
)

// Event is one table-scoped notification. Events are emitted strictly after
// the engine mutation that caused them has committed; the stream carries no
// rules logic of its own.
type Event struct {
	Type    Type            `json:"type"`
	TableID string          `json:"table_id"`
	Player  int64           `json:"player,omitempty"`
	At      int64           `json:"at"` // unix milliseconds
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New stamps a fresh event.
func New(typ Type, tableID string) Event {
	return Event{
		Type:    typ,
		TableID: tableID,
		At:      time.Now().UnixMilli(),
	}
}

// WithPlayer attaches the acting player.
func (e Event) WithPlayer(playerID int64) Event {
	e.Player = playerID
	return e
}

// WithPayload attaches an arbitrary JSON payload.
func (e Event) WithPayload(v any) Event {
	data, err := json.Marshal(v)
	if err != nil {
		return e
	}
	e.Payload = data
	return e
}
