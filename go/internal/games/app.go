package games

import (
	"context"
	"encoding/json"
	"errors"
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

// GamesRepository defines what the app layer needs from the repository
type GamesRepository interface {
	AssignTeam(ctx context.Context, sessionID, teamID uuid.UUID, court int) (*models.Game, error)
	ListActiveGames(ctx context.Context, sessionID uuid.UUID) ([]models.Game, error)
	FinishGame(ctx context.Context, sessionID, gameID uuid.UUID) (*models.Game, error)
}

// GamesView is the cached current-games list of a session
type GamesView interface {
	Get(ctx context.Context, sessionID uuid.UUID) ([]byte, bool, error)
	Populate(ctx context.Context, sessionID uuid.UUID, snapshot []byte)
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
}

// AssignmentRecorder counts assignment outcomes.
type AssignmentRecorder interface {
	RecordAssignment(outcome string)
}

// Recorder is everything the games App reports to metrics.
type Recorder interface {
	broadcast.PublishRecorder
	AssignmentRecorder
}

type Config struct {
	Timeout  time.Duration
	Clock    clockwork.Clock
	Recorder Recorder
}

// App coordinates court assignments. It never arbitrates courts itself: the
// store procedure does, and a losing request surfaces as a conflict.
type App struct {
	repo      GamesRepository
	view      GamesView
	publisher broadcast.Publisher
	config    Config
}

// NewApp creates a new games App
func NewApp(repo GamesRepository, view GamesView, publisher broadcast.Publisher, config Config) *App {
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
		view:      view,
		publisher: publisher,
		config:    config,
	}
}

// AssignTeamToCourt puts a team on a court. No retry on conflict.
func (a *App) AssignTeamToCourt(ctx context.Context, sessionID uuid.UUID, req AssignTeamRequest) (*models.Game, error) {
	teamID, court, err := req.Validate()
	if err != nil {
		a.recordAssignment(OutcomeRejected)
		return nil, err
	}

	ctx, cancel := db.Detached(ctx, a.config.Timeout)
	defer cancel()

	game, err := a.repo.AssignTeam(ctx, sessionID, teamID, court)
	if err != nil {
		a.recordAssignment(outcomeFor(err))
		log.Debug().
			Err(err).
			Str("session_id", sessionID.String()).
			Str("team_id", teamID.String()).
			Int("court", court).
			Msg("court assignment refused")
		return nil, err
	}
	a.recordAssignment(OutcomeAssigned)

	log.Info().
		Str("session_id", sessionID.String()).
		Str("team_id", teamID.String()).
		Str("game_id", game.ID.String()).
		Int("court", court).
		Msg("team assigned to court")

	if err := a.gamesChanged(ctx, sessionID); err != nil {
		return nil, err
	}
	return game, nil
}

// FinishGame releases a court so another team can be assigned to it
func (a *App) FinishGame(ctx context.Context, sessionID, gameID uuid.UUID) (*models.Game, error) {
	ctx, cancel := db.Detached(ctx, a.config.Timeout)
	defer cancel()

	game, err := a.repo.FinishGame(ctx, sessionID, gameID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID.String()).
		Str("game_id", gameID.String()).
		Int("court", game.Court).
		Msg("court released")

	if err := a.gamesChanged(ctx, sessionID); err != nil {
		return nil, err
	}
	return game, nil
}

// CurrentGames returns the session's active games as JSON, cache first.
func (a *App) CurrentGames(ctx context.Context, sessionID uuid.UUID) (json.RawMessage, error) {
	ctx, cancel := db.Bounded(ctx, a.config.Timeout)
	defer cancel()

	cached, ok, err := a.view.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ok {
		return cached, nil
	}

	games, err := a.repo.ListActiveGames(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if games == nil {
		games = []models.Game{}
	}
	snapshot, err := json.Marshal(games)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to encode game list")
	}
	a.view.Populate(ctx, sessionID, snapshot)
	return snapshot, nil
}

func (a *App) gamesChanged(ctx context.Context, sessionID uuid.UUID) error {
	if err := a.view.Invalidate(ctx, sessionID); err != nil {
		return fmt.Errorf("games for session %s: %w", sessionID, err)
	}
	event := broadcast.NewEvent(a.config.Clock, broadcast.GameUpdate, sessionID)
	broadcast.Announce(ctx, a.publisher, event, a.config.Recorder)
	return nil
}

func (a *App) recordAssignment(outcome string) {
	a.config.Recorder.RecordAssignment(outcome)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}
