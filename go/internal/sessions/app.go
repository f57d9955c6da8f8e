package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sports"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SessionsRepository defines what the app layer needs from the repository
type SessionsRepository interface {
	CreateSession(ctx context.Context, hostID uuid.UUID, p CreateSessionParams) (*models.Session, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error)
}

// App handles session business logic
type App struct {
	repo    SessionsRepository
	catalog *sports.Catalog
	timeout time.Duration
}

// NewApp creates a new sessions App
func NewApp(repo SessionsRepository, catalog *sports.Catalog, timeout time.Duration) *App {
	return &App{
		repo:    repo,
		catalog: catalog,
		timeout: timeout,
	}
}

// CreateSession validates req and stores a session hosted by hostID
func (a *App) CreateSession(ctx context.Context, hostID uuid.UUID, req CreateSessionRequest) (*models.Session, error) {
	params, err := req.Validate(a.catalog)
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.Detached(ctx, a.timeout)
	defer cancel()

	session, err := a.repo.CreateSession(ctx, hostID, params)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", session.ID.String()).
		Str("host_id", hostID.String()).
		Str("sport", session.Sport).
		Int("number_of_courts", session.NumberOfCourts).
		Msg("session created")
	return session, nil
}

// GetSession retrieves a session by ID
func (a *App) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	ctx, cancel := db.Bounded(ctx, a.timeout)
	defer cancel()

	session, err := a.repo.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return session, nil
}
