package models

import (
	"time"

	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusFinished GameStatus = "finished"
)

// Game is a team's occupancy of a court. At most one active game exists per
// (session, court) and per (session, team).
type Game struct {
	ID         uuid.UUID  `json:"id"`
	SessionID  uuid.UUID  `json:"session_id"`
	TeamID     uuid.UUID  `json:"team_id"`
	Court      int        `json:"court"`
	Status     GameStatus `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}
