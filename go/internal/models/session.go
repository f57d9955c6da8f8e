package models

import (
	"time"

	"github.com/google/uuid"
)

// RotationMode is how teams cycle through courts. Stored and validated only.
type RotationMode string

const (
	RotationWinnerStays RotationMode = "winner_stays"
	RotationLoserStays  RotationMode = "loser_stays"
	RotationRotateAll   RotationMode = "rotate_all"
	RotationWinnerMax   RotationMode = "winner_max"
)

// Valid reports whether m is a known rotation mode
func (m RotationMode) Valid() bool {
	switch m {
	case RotationWinnerStays, RotationLoserStays, RotationRotateAll, RotationWinnerMax:
		return true
	}
	return false
}

// Session represents a scheduled pickup gathering at a venue
type Session struct {
	ID             uuid.UUID    `json:"id"`
	SessionName    string       `json:"session_name"`
	Description    *string      `json:"description"`
	HostID         uuid.UUID    `json:"host_id"`
	Sport          string       `json:"sport"`
	TeamSize       int          `json:"team_size"`
	MaxTeams       int          `json:"max_teams"`
	StartsAt       time.Time    `json:"starts_at"`
	RotationMode   RotationMode `json:"rotation_mode"`
	WinnerMaxWins  *int         `json:"winner_max_wins"`
	NumberOfCourts int          `json:"number_of_courts"`
	CreatedAt      time.Time    `json:"created_at"`
}
