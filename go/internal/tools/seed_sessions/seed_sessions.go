package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/dbconfig"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/sqlutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// Session mirrors the JSON snapshot
type Session struct {
	ID             uuid.UUID `json:"id"`
	SessionName    string    `json:"session_name"`
	Description    *string   `json:"description"`
	HostID         uuid.UUID `json:"host_id"`
	Sport          string    `json:"sport"`
	TeamSize       int       `json:"team_size"`
	MaxTeams       int       `json:"max_teams"`
	StartsAt       time.Time `json:"starts_at"`
	RotationMode   string    `json:"rotation_mode"`
	WinnerMaxWins  *int      `json:"winner_max_wins"`
	NumberOfCourts int       `json:"number_of_courts"`
	Teams          []Team    `json:"teams"`
}

type Team struct {
	ID        uuid.UUID `json:"id"`
	TeamName  string    `json:"team_name"`
	CaptainID uuid.UUID `json:"captain_id"`
}

func main() {
	path := flag.String("file", "go/internal/assets/sessions.json", "JSON snapshot to load")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	// 1) Load the JSON snapshot
	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read JSON: %v\n", err)
		os.Exit(1)
	}
	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal JSON: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbconfig.ResolveDSN(os.Getenv("DATABASE_URL")))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) One transaction per session so a bad team never leaves a half-seeded session
	var (
		total    = len(sessions)
		inserted int
		skipped  int
		teams    int
		errs     int
	)
	for _, s := range sessions {
		var created bool
		var added int
		err := sqlutil.Run(ctx, pool, func(tx pgx.Tx) error {
			var err error
			created, added, err = seedSession(ctx, tx, s)
			return err
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error seeding session %s: %v\n", s.ID, err)
			errs++
			continue
		}
		if created {
			inserted++
		} else {
			skipped++
		}
		teams += added
	}

	// 4) Print summary
	fmt.Printf(
		"Sessions seed complete: %d total, %d inserted, %d skipped, %d teams added, %d errors\n",
		total, inserted, skipped, teams, errs,
	)
}

func seedSession(ctx context.Context, tx pgx.Tx, s Session) (bool, int, error) {
	if s.NumberOfCourts == 0 {
		s.NumberOfCourts = 1
	}
	tag, err := tx.Exec(ctx, `
        INSERT INTO session (
          id, session_name, description, host_id, sport, team_size, max_teams,
          starts_at, rotation_mode, winner_max_wins, number_of_courts
        ) VALUES (
          $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
        )
        ON CONFLICT (id) DO NOTHING
    `,
		s.ID, s.SessionName, s.Description, s.HostID, s.Sport, s.TeamSize, s.MaxTeams,
		s.StartsAt, s.RotationMode, s.WinnerMaxWins, s.NumberOfCourts,
	)
	if err != nil {
		return false, 0, fmt.Errorf("insert session: %w", err)
	}

	added := 0
	for _, t := range s.Teams {
		teamTag, err := tx.Exec(ctx, `
            INSERT INTO team (id, session_id, team_name, captain_id)
            VALUES ($1,$2,$3,$4)
            ON CONFLICT DO NOTHING
        `, t.ID, s.ID, t.TeamName, t.CaptainID)
		if err != nil {
			return false, 0, fmt.Errorf("insert team %s: %w", t.TeamName, err)
		}
		added += int(teamTag.RowsAffected())
	}
	return tag.RowsAffected() == 1, added, nil
}
