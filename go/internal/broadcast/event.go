// Package broadcast publishes per-session change notifications and lets the
// realtime gateway subscribe to them. Delivery is at-most-once and nothing is stored.
package broadcast

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// EventKind names what changed in a session.
type EventKind string

const (
	TeamUpdate EventKind = "team_update"
	GameUpdate EventKind = "game_update"
)

// ChangeEvent is the payload sent on a session channel.
type ChangeEvent struct {
	Type       EventKind `json:"type"`
	SessionID  uuid.UUID `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with the clock's current time.
func NewEvent(clock clockwork.Clock, kind EventKind, sessionID uuid.UUID) ChangeEvent {
	return ChangeEvent{
		Type:       kind,
		SessionID:  sessionID,
		OccurredAt: clock.Now().UTC(),
	}
}

// Encode renders the wire payload.
func (e ChangeEvent) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// Channel is the per-session channel name, used verbatim as NATS subject and
// Postgres NOTIFY channel.
func Channel(sessionID uuid.UUID) string {
	return "session:" + sessionID.String() + ":updates"
}
