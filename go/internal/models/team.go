package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a named group of players within one session
type Team struct {
	ID        uuid.UUID       `json:"id"`
	SessionID uuid.UUID       `json:"session_id"`
	TeamName  string          `json:"team_name"`
	CaptainID uuid.UUID       `json:"captain_id"`
	CreatedAt time.Time       `json:"created_at"`
	Captain   *CaptainProfile `json:"profiles,omitempty"`
}

// CaptainProfile is the slice of the captain's profile embedded in team listings
type CaptainProfile struct {
	FullName *string `json:"full_name"`
}
