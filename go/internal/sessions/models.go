package sessions

import (
	"strings"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sports"
)

const maxSessionNameLength = 100

// CreateSessionRequest is the body of POST /api/session/create
type CreateSessionRequest struct {
	SessionName    string  `json:"session_name"`
	Description    *string `json:"description"`
	Sport          string  `json:"sport"`
	TeamSize       *int    `json:"team_size"`
	MaxTeams       *int    `json:"max_teams"`
	StartsAt       string  `json:"starts_at"`
	RotationMode   string  `json:"rotation_mode"`
	WinnerMaxWins  *int    `json:"winner_max_wins"`
	NumberOfCourts *int    `json:"number_of_courts"`
}

// CreateSessionParams is a validated session ready to insert
type CreateSessionParams struct {
	SessionName    string
	Description    *string
	Sport          string
	TeamSize       int
	MaxTeams       int
	StartsAt       time.Time
	RotationMode   models.RotationMode
	WinnerMaxWins  *int
	NumberOfCourts int
}

// Validate checks required fields and ranges and applies defaults.
func (r CreateSessionRequest) Validate(catalog *sports.Catalog) (CreateSessionParams, error) {
	name := strings.TrimSpace(r.SessionName)
	if name == "" {
		return CreateSessionParams{}, apperrors.Validation("session_name is required")
	}
	if len(name) > maxSessionNameLength {
		return CreateSessionParams{}, apperrors.Validationf("session_name must be at most %d characters", maxSessionNameLength)
	}

	sport := strings.ToLower(strings.TrimSpace(r.Sport))
	if sport == "" {
		return CreateSessionParams{}, apperrors.Validation("sport is required")
	}

	if r.TeamSize == nil {
		return CreateSessionParams{}, apperrors.Validation("team_size is required")
	}
	if *r.TeamSize < 1 {
		return CreateSessionParams{}, apperrors.Validation("team_size must be at least 1")
	}

	if r.MaxTeams == nil {
		return CreateSessionParams{}, apperrors.Validation("max_teams is required")
	}
	if *r.MaxTeams < 1 {
		return CreateSessionParams{}, apperrors.Validation("max_teams must be at least 1")
	}

	if strings.TrimSpace(r.StartsAt) == "" {
		return CreateSessionParams{}, apperrors.Validation("starts_at is required")
	}
	startsAt, err := time.Parse(time.RFC3339, strings.TrimSpace(r.StartsAt))
	if err != nil {
		return CreateSessionParams{}, apperrors.Validation("starts_at must be an RFC 3339 timestamp")
	}

	mode := models.RotationMode(r.RotationMode)
	if !mode.Valid() {
		return CreateSessionParams{}, apperrors.Validation("rotation_mode must be one of winner_stays, loser_stays, rotate_all, winner_max")
	}

	if r.WinnerMaxWins != nil && *r.WinnerMaxWins < 1 {
		return CreateSessionParams{}, apperrors.Validation("winner_max_wins must be at least 1")
	}

	courts := 1
	if r.NumberOfCourts != nil {
		courts = *r.NumberOfCourts
	}
	if courts < 1 {
		return CreateSessionParams{}, apperrors.Validation("number_of_courts must be at least 1")
	}

	if catalog != nil {
		if err := catalog.Validate(sport, *r.TeamSize); err != nil {
			return CreateSessionParams{}, err
		}
	}

	var description *string
	if r.Description != nil {
		if d := strings.TrimSpace(*r.Description); d != "" {
			description = &d
		}
	}

	return CreateSessionParams{
		SessionName:    name,
		Description:    description,
		Sport:          sport,
		TeamSize:       *r.TeamSize,
		MaxTeams:       *r.MaxTeams,
		StartsAt:       startsAt.UTC(),
		RotationMode:   mode,
		WinnerMaxWins:  r.WinnerMaxWins,
		NumberOfCourts: courts,
	}, nil
}
