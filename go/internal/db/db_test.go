package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"
)

func TestMigrationFSPairsUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFS, "migrations")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for v := range ups {
		if !downs[v] {
			t.Errorf("migration %s has no down file", v)
		}
	}
}

func TestSchemaDefinesProcedures(t *testing.T) {
	data, err := fs.ReadFile(MigrationFS, "migrations/000001_init.up.sql")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	sql := string(data)
	for _, fn := range []string{"add_team_to_session", "join_team", "add_team_to_game", "finish_game"} {
		if !strings.Contains(sql, "FUNCTION "+fn+"(") {
			t.Errorf("schema is missing function %s", fn)
		}
	}
	for _, idx := range []string{"game_one_active_per_court", "game_one_active_per_team", "player_one_team_per_session"} {
		if !strings.Contains(sql, idx) {
			t.Errorf("schema is missing constraint %s", idx)
		}
	}
}

func TestMigrateRejectsBadInput(t *testing.T) {
	if err := Migrate("", "up"); err == nil {
		t.Fatal("expected error for empty DSN")
	}
	if err := Migrate("postgres://localhost/x", "sideways"); err == nil {
		t.Fatal("expected error for bad direction")
	}
}

func TestDetachedIgnoresParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, done := Detached(parent, time.Minute)
	defer done()
	cancel()
	if err := ctx.Err(); err != nil {
		t.Fatalf("detached context err = %v, want nil", err)
	}
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("detached context has no deadline")
	}
}
