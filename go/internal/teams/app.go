package teams

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/broadcast"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/metrics"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// TeamsRepository defines what the app layer needs from the repository
type TeamsRepository interface {
	CreateTeam(ctx context.Context, sessionID uuid.UUID, name string, captainID uuid.UUID) (*models.Team, error)
	ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error)
	TeamOf(ctx context.Context, sessionID, playerID uuid.UUID) (*models.TeamMembership, error)
	JoinTeam(ctx context.Context, sessionID, teamID, playerID uuid.UUID) (*models.Player, error)
}

// RosterView is the cached team list of a session
type RosterView interface {
	Get(ctx context.Context, sessionID uuid.UUID) ([]byte, bool, error)
	Populate(ctx context.Context, sessionID uuid.UUID, snapshot []byte)
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
}

// Config holds the App's collaborators that have sensible defaults
type Config struct {
	Timeout  time.Duration
	Clock    clockwork.Clock
	Recorder broadcast.PublishRecorder
}

// App handles teams business logic
type App struct {
	repo      TeamsRepository
	roster    RosterView
	publisher broadcast.Publisher
	config    Config
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, roster RosterView, publisher broadcast.Publisher, config Config) *App {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Recorder == nil {
		config.Recorder = metrics.NoOpCollector{}
	}
	return &App{
		repo:      repo,
		roster:    roster,
		publisher: publisher,
		config:    config,
	}
}

// CreateTeam creates a team captained by the caller
func (a *App) CreateTeam(ctx context.Context, sessionID, captainID uuid.UUID, req CreateTeamRequest) (*models.Team, error) {
	name, err := req.Validate()
	if err != nil {
		return nil, err
	}

	ctx, cancel := db.Detached(ctx, a.config.Timeout)
	defer cancel()

	team, err := a.repo.CreateTeam(ctx, sessionID, name, captainID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("team_id", team.ID.String()).
		Str("captain_id", captainID.String()).
		Msg("team created")

	if err := a.rosterChanged(ctx, sessionID); err != nil {
		return nil, err
	}
	return team, nil
}

// ListTeams returns the session's team list as JSON, serving it from the
// roster cache when present.
func (a *App) ListTeams(ctx context.Context, sessionID uuid.UUID) (json.RawMessage, error) {
	ctx, cancel := db.Bounded(ctx, a.config.Timeout)
	defer cancel()

	cached, ok, err := a.roster.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ok {
		return cached, nil
	}

	teams, err := a.repo.ListTeams(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []models.Team{}
	}

	snapshot, err := json.Marshal(teams)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to encode team list")
	}
	a.roster.Populate(ctx, sessionID, snapshot)
	return snapshot, nil
}

// TeamOf returns the caller's membership in the session, nil if none.
func (a *App) TeamOf(ctx context.Context, sessionID, playerID uuid.UUID) (*models.TeamMembership, error) {
	ctx, cancel := db.Bounded(ctx, a.config.Timeout)
	defer cancel()

	return a.repo.TeamOf(ctx, sessionID, playerID)
}

// JoinTeam adds the caller to a team. The store rejects a second membership
// in the same session and a join into a full team.
func (a *App) JoinTeam(ctx context.Context, sessionID, teamID, playerID uuid.UUID) (*models.Player, error) {
	ctx, cancel := db.Detached(ctx, a.config.Timeout)
	defer cancel()

	player, err := a.repo.JoinTeam(ctx, sessionID, teamID, playerID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("team_id", teamID.String()).
		Str("player_id", playerID.String()).
		Msg("player joined team")

	if err := a.rosterChanged(ctx, sessionID); err != nil {
		return nil, err
	}
	return player, nil
}

// rosterChanged drops the cached roster and then tells subscribers, so a
// client re-reading on the event never gets the old snapshot.
func (a *App) rosterChanged(ctx context.Context, sessionID uuid.UUID) error {
	if err := a.roster.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("roster for session %s: %w", sessionID, err)
	}
	event := broadcast.NewEvent(a.config.Clock, broadcast.TeamUpdate, sessionID)
	broadcast.Announce(ctx, a.publisher, event, a.config.Recorder)
	return nil
}
