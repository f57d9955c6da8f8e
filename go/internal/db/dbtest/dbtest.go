// Package dbtest opens a migrated Postgres pool for tests that need the real
// schema and its procedures. Tests skip when DATABASE_URL is unset.
package dbtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Open migrates the database at DATABASE_URL up and returns a pool closed at
// the end of the test.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := db.Migrate(dsn, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// SessionSpec sets the limits of a test session.
type SessionSpec struct {
	TeamSize int
	MaxTeams int
	Courts   int
}

// Session inserts a session and deletes it (and everything under it) when
// the test ends.
func Session(t testing.TB, pool *pgxpool.Pool, spec SessionSpec) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO session (session_name, host_id, sport, team_size, max_teams, starts_at, rotation_mode, number_of_courts)
		VALUES ($1, $2, 'basketball', $3, $4, now(), 'rotate_all', $5)
		RETURNING id`,
		"test "+t.Name(), uuid.New(), spec.TeamSize, spec.MaxTeams, spec.Courts,
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	t.Cleanup(func() {
		if _, err := pool.Exec(context.Background(), `DELETE FROM session WHERE id = $1`, id); err != nil {
			t.Errorf("delete session: %v", err)
		}
	})
	return id
}

// Team inserts a team directly, bypassing the capacity procedure.
func Team(t testing.TB, pool *pgxpool.Pool, sessionID uuid.UUID, name string) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO team (session_id, team_name, captain_id) VALUES ($1, $2, $3) RETURNING id`,
		sessionID, name, uuid.New(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("insert team: %v", err)
	}
	return id
}
