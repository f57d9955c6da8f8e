package teams

import (
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
)

const maxTeamNameLength = 50

// CreateTeamRequest is the body of POST /{session_id}/create-team
type CreateTeamRequest struct {
	TeamName string `json:"team_name"`
}

// Validate returns the trimmed team name.
func (r CreateTeamRequest) Validate() (string, error) {
	name := strings.TrimSpace(r.TeamName)
	if name == "" {
		return "", apperrors.Validation("team_name is required")
	}
	if len(name) > maxTeamNameLength {
		return "", apperrors.Validationf("team_name must be at most %d characters", maxTeamNameLength)
	}
	return name, nil
}
