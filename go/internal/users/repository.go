package users

import (
	"context"
	"fmt"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Creates the row on first update; the provider does not provision profiles.
const upsertProfileSQL = `
INSERT INTO profiles (id, username, full_name, avatar_url, has_completed_profile, updated_at)
VALUES ($1, $2, $3, $4, true, now())
ON CONFLICT (id) DO UPDATE
    SET username              = COALESCE(EXCLUDED.username, profiles.username),
        full_name             = COALESCE(EXCLUDED.full_name, profiles.full_name),
        avatar_url            = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
        has_completed_profile = true,
        updated_at            = now()
RETURNING id, username, full_name, avatar_url, has_completed_profile, updated_at`

// Repository implements profile data access operations
type Repository struct {
	db db.Querier
}

// NewRepository creates a new users repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{db: querier}
}

// UpsertProfile writes the provided fields and marks the profile complete
func (r *Repository) UpsertProfile(ctx context.Context, id uuid.UUID, p ProfileParams) (*models.Profile, error) {
	var (
		profile   models.Profile
		username  pgtype.Text
		fullName  pgtype.Text
		avatarURL pgtype.Text
	)
	err := r.db.QueryRow(ctx, upsertProfileSQL,
		id,
		sqlutil.ToText(p.Username),
		sqlutil.ToText(p.FullName),
		sqlutil.ToText(p.AvatarURL),
	).Scan(&profile.ID, &username, &fullName, &avatarURL, &profile.HasCompletedProfile, &profile.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", sqlutil.Classify(err, "profile"))
	}
	profile.Username = sqlutil.FromText(username)
	profile.FullName = sqlutil.FromText(fullName)
	profile.AvatarURL = sqlutil.FromText(avatarURL)
	return &profile, nil
}
