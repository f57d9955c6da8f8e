package games

import (
	"context"
	"fmt"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const gameColumns = `id, session_id, team_id, court, status, started_at, finished_at`

const (
	// One statement: the partial unique indexes on active games decide the
	// winner when two requests race for a court.
	assignTeamSQL = `SELECT ` + gameColumns + ` FROM add_team_to_game($1, $2, $3)`

	listActiveGamesSQL = `
SELECT ` + gameColumns + `
FROM game
WHERE session_id = $1
  AND status = 'active'
ORDER BY court`

	finishGameSQL = `SELECT ` + gameColumns + ` FROM finish_game($1, $2)`
)

// Repository implements court assignment data access
type Repository struct {
	db db.Querier
}

// NewRepository creates a new games repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{db: querier}
}

// AssignTeam starts an active game for teamID on court
func (r *Repository) AssignTeam(ctx context.Context, sessionID, teamID uuid.UUID, court int) (*models.Game, error) {
	game, err := scanGame(r.db.QueryRow(ctx, assignTeamSQL, sessionID, teamID, court))
	if err != nil {
		return nil, fmt.Errorf("failed to assign team to court: %w", sqlutil.Classify(err, "game"))
	}
	return game, nil
}

// ListActiveGames returns the session's occupied courts in court order
func (r *Repository) ListActiveGames(ctx context.Context, sessionID uuid.UUID) ([]models.Game, error) {
	rows, err := r.db.Query(ctx, listActiveGamesSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", sqlutil.Classify(err, "session"))
	}
	games, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Game, error) {
		g, err := scanGame(row)
		if err != nil {
			return models.Game{}, err
		}
		return *g, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", sqlutil.Classify(err, "session"))
	}
	return games, nil
}

// FinishGame releases the court held by gameID
func (r *Repository) FinishGame(ctx context.Context, sessionID, gameID uuid.UUID) (*models.Game, error) {
	game, err := scanGame(r.db.QueryRow(ctx, finishGameSQL, sessionID, gameID))
	if err != nil {
		return nil, fmt.Errorf("failed to finish game: %w", sqlutil.Classify(err, "game"))
	}
	return game, nil
}

func scanGame(row pgx.Row) (*models.Game, error) {
	var (
		g          models.Game
		status     string
		finishedAt pgtype.Timestamptz
	)
	if err := row.Scan(&g.ID, &g.SessionID, &g.TeamID, &g.Court, &status, &g.StartedAt, &finishedAt); err != nil {
		return nil, err
	}
	g.Status = models.GameStatus(status)
	g.FinishedAt = sqlutil.FromTimestamptz(finishedAt)
	return &g, nil
}
