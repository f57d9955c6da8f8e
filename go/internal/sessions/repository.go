package sessions

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

const sessionColumns = `id, session_name, description, host_id, sport, team_size, max_teams,
	starts_at, rotation_mode, winner_max_wins, number_of_courts, created_at`

const createSessionSQL = `
INSERT INTO session (session_name, description, host_id, sport, team_size, max_teams,
                     starts_at, rotation_mode, winner_max_wins, number_of_courts)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + sessionColumns

const getSessionSQL = `SELECT ` + sessionColumns + ` FROM session WHERE id = $1`

// Repository implements session data access operations
type Repository struct {
	db db.Querier
}

// NewRepository creates a new sessions repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{db: querier}
}

// CreateSession inserts a session hosted by hostID
func (r *Repository) CreateSession(ctx context.Context, hostID uuid.UUID, p CreateSessionParams) (*models.Session, error) {
	row := r.db.QueryRow(ctx, createSessionSQL,
		p.SessionName,
		sqlutil.ToText(p.Description),
		hostID,
		p.Sport,
		p.TeamSize,
		p.MaxTeams,
		p.StartsAt,
		string(p.RotationMode),
		sqlutil.ToInt4(p.WinnerMaxWins),
		p.NumberOfCourts,
	)
	session, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", sqlutil.Classify(err, "session"))
	}
	return session, nil
}

// GetSession retrieves a session by ID
func (r *Repository) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := scanSession(r.db.QueryRow(ctx, getSessionSQL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", sqlutil.Classify(err, "session"))
	}
	return session, nil
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var (
		s             models.Session
		description   pgtype.Text
		rotationMode  string
		winnerMaxWins pgtype.Int4
	)
	err := row.Scan(
		&s.ID,
		&s.SessionName,
		&description,
		&s.HostID,
		&s.Sport,
		&s.TeamSize,
		&s.MaxTeams,
		&s.StartsAt,
		&rotationMode,
		&winnerMaxWins,
		&s.NumberOfCourts,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Description = sqlutil.FromText(description)
	s.RotationMode = models.RotationMode(rotationMode)
	s.WinnerMaxWins = sqlutil.FromInt4(winnerMaxWins)
	return &s, nil
}
