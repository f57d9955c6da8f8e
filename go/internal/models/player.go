package models

import (
	"time"

	"github.com/google/uuid"
)

// Player records a principal's membership of a team within a session.
// A principal has at most one Player row per session.
type Player struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	SessionID uuid.UUID `json:"session_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

// TeamMembership is the shape returned when asking which team a principal is on
type TeamMembership struct {
	TeamID uuid.UUID      `json:"team_id"`
	Team   MembershipTeam `json:"team"`
}

type MembershipTeam struct {
	SessionID uuid.UUID `json:"session_id"`
}
