package games

import (
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/google/uuid"
)

// AssignTeamRequest is the body of PATCH /{session_id}/add_team_to_game
type AssignTeamRequest struct {
	TeamID string `json:"team_id"`
	Court  *int   `json:"court"`
}

// Validate parses the team id and checks the court is positive. The upper
// bound is the session's number_of_courts, which only the store knows.
func (r AssignTeamRequest) Validate() (uuid.UUID, int, error) {
	if strings.TrimSpace(r.TeamID) == "" {
		return uuid.Nil, 0, apperrors.Validation("team_id is required")
	}
	teamID, err := uuid.Parse(strings.TrimSpace(r.TeamID))
	if err != nil {
		return uuid.Nil, 0, apperrors.Validation("team_id must be a valid UUID")
	}
	if r.Court == nil {
		return uuid.Nil, 0, apperrors.Validation("court is required")
	}
	if *r.Court < 1 {
		return uuid.Nil, 0, apperrors.Validation("court must be at least 1")
	}
	return teamID, *r.Court, nil
}

// Assignment outcomes reported to metrics.
const (
	OutcomeAssigned = "assigned"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)
