package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/models"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// add_team_to_session locks the session row, so the max_teams check and
	// the insert happen in one round trip.
	createTeamSQL = `
SELECT id, session_id, team_name, captain_id, created_at
FROM add_team_to_session($1, $2, $3)`

	listTeamsSQL = `
SELECT t.id, t.session_id, t.team_name, t.captain_id, t.created_at,
       p.id IS NOT NULL AS has_profile, p.full_name
FROM team t
         LEFT JOIN profiles p ON p.id = t.captain_id
WHERE t.session_id = $1
ORDER BY t.created_at, t.id`

	teamOfSQL = `
SELECT p.team_id, t.session_id
FROM player p
         JOIN team t ON t.id = p.team_id
WHERE p.id = $1
  AND p.session_id = $2`

	joinTeamSQL = `
SELECT id, team_id, session_id, joined_at
FROM join_team($1, $2, $3)`
)

// Repository implements team and membership data access
type Repository struct {
	db db.Querier
}

// NewRepository creates a new teams repository
func NewRepository(querier db.Querier) *Repository {
	return &Repository{db: querier}
}

// CreateTeam adds a team captained by captainID to the session
func (r *Repository) CreateTeam(ctx context.Context, sessionID uuid.UUID, name string, captainID uuid.UUID) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRow(ctx, createTeamSQL, sessionID, name, captainID).
		Scan(&t.ID, &t.SessionID, &t.TeamName, &t.CaptainID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", sqlutil.Classify(err, "team"))
	}
	return &t, nil
}

// ListTeams returns the session's teams with their captain's display name
func (r *Repository) ListTeams(ctx context.Context, sessionID uuid.UUID) ([]models.Team, error) {
	rows, err := r.db.Query(ctx, listTeamsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", sqlutil.Classify(err, "session"))
	}

	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Team, error) {
		var (
			t          models.Team
			hasProfile bool
			fullName   pgtype.Text
		)
		if err := row.Scan(&t.ID, &t.SessionID, &t.TeamName, &t.CaptainID, &t.CreatedAt, &hasProfile, &fullName); err != nil {
			return t, err
		}
		if hasProfile {
			t.Captain = &models.CaptainProfile{FullName: sqlutil.FromText(fullName)}
		}
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", sqlutil.Classify(err, "session"))
	}
	return teams, nil
}

// TeamOf returns the principal's membership in the session, or nil when
// they have not joined a team.
func (r *Repository) TeamOf(ctx context.Context, sessionID, playerID uuid.UUID) (*models.TeamMembership, error) {
	var m models.TeamMembership
	err := r.db.QueryRow(ctx, teamOfSQL, playerID, sessionID).Scan(&m.TeamID, &m.Team.SessionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up team membership: %w", sqlutil.Classify(err, "player"))
	}
	return &m, nil
}

// JoinTeam records playerID as a member of teamID
func (r *Repository) JoinTeam(ctx context.Context, sessionID, teamID, playerID uuid.UUID) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRow(ctx, joinTeamSQL, playerID, sessionID, teamID).
		Scan(&p.ID, &p.TeamID, &p.SessionID, &p.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to join team: %w", sqlutil.Classify(err, "team"))
	}
	return &p, nil
}
