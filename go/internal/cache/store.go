// Package cache holds the cache-aside views over per-session documents and the
// backends they can be stored in. Entries never expire; they are only deleted
// when a mutation invalidates them.
package cache

import (
	"context"

	"github.com/google/uuid"
)

// Store is a byte-valued key/value backend.
type Store interface {
	// Get returns the value and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// View names.
const (
	ViewTeams = "teams"
	ViewGames = "games"
)

// Key builds the cache key for one view of a session, e.g. session:<id>:teams.
func Key(sessionID uuid.UUID, view string) string {
	return "session:" + sessionID.String() + ":" + view
}
