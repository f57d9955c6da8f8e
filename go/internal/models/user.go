package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the application-side record of an authenticated principal
type Profile struct {
	ID                  uuid.UUID `json:"id"`
	Username            *string   `json:"username"`
	FullName            *string   `json:"full_name"`
	AvatarURL           *string   `json:"avatar_url"`
	HasCompletedProfile bool      `json:"has_completed_profile"`
	UpdatedAt           time.Time `json:"updated_at"`
}
