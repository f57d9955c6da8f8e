package users

import (
	"context"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/clients/gotrue"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	UpsertProfile(ctx context.Context, id uuid.UUID, p ProfileParams) (*models.Profile, error)
}

// IdentityProvider is the hosted auth service that owns credentials
type IdentityProvider interface {
	SendMagicLink(ctx context.Context, email string) error
	UpdateUserMetadata(ctx context.Context, userID uuid.UUID, metadata map[string]any) error
}

// App handles sign-in and profile business logic
type App struct {
	repo     UsersRepository
	provider IdentityProvider
	timeout  time.Duration
}

// NewApp creates a new users App
func NewApp(repo UsersRepository, provider IdentityProvider, timeout time.Duration) *App {
	return &App{
		repo:     repo,
		provider: provider,
		timeout:  timeout,
	}
}

// SendMagicLink asks the identity provider to email a sign-in link
func (a *App) SendMagicLink(ctx context.Context, req MagicLinkRequest) error {
	email, err := req.Validate()
	if err != nil {
		return err
	}

	ctx, cancel := db.Detached(ctx, a.timeout)
	defer cancel()

	if err := a.provider.SendMagicLink(ctx, email); err != nil {
		return providerError(err, "could not send magic link")
	}
	log.Info().Str("email", email).Msg("magic link sent")
	return nil
}

// UpdateProfile stores the caller's profile and mirrors the display name to
// the identity provider.
func (a *App) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*models.Profile, error) {
	params, err := req.Validate()
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.Detached(ctx, a.timeout)
	defer cancel()

	profile, err := a.repo.UpsertProfile(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	if params.FullName != nil {
		metadata := map[string]any{"full_name": *params.FullName}
		if err := a.provider.UpdateUserMetadata(ctx, userID, metadata); err != nil {
			return nil, providerError(err, "could not update account metadata")
		}
	}

	log.Info().Str("user_id", userID.String()).Msg("profile updated")
	return profile, nil
}

// providerError keeps the provider's own message for requests it rejected.
func providerError(err error, msg string) error {
	if status, message, ok := gotrue.ErrorMessage(err); ok && status >= 400 && status < 500 {
		return apperrors.Validation(message)
	}
	return apperrors.Upstream(err, msg)
}
