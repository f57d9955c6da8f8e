package cache

import (
	"context"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LookupRecorder counts hits and misses.
type LookupRecorder interface {
	RecordCacheLookup(view string, hit bool)
}

// View is one cached document kind, keyed by session.
type View struct {
	store    Store
	name     string
	recorder LookupRecorder
}

// NewView creates a view over store. recorder may be nil.
func NewView(store Store, name string, recorder LookupRecorder) *View {
	return &View{store: store, name: name, recorder: recorder}
}

// Get returns the cached snapshot for sessionID. A miss is not an error.
func (v *View) Get(ctx context.Context, sessionID uuid.UUID) ([]byte, bool, error) {
	data, ok, err := v.store.Get(ctx, Key(sessionID, v.name))
	if err != nil {
		return nil, false, apperrors.Upstream(err, "cache unavailable")
	}
	if v.recorder != nil {
		v.recorder.RecordCacheLookup(v.name, ok)
	}
	return data, ok, nil
}

// Populate overwrites the snapshot for sessionID. Failures are logged only:
// a missing entry just means the next read goes to the store.
func (v *View) Populate(ctx context.Context, sessionID uuid.UUID, snapshot []byte) {
	if err := v.store.Set(ctx, Key(sessionID, v.name), snapshot); err != nil {
		log.Warn().
			Err(err).
			Str("view", v.name).
			Str("session_id", sessionID.String()).
			Msg("failed to populate cache")
	}
}

// Invalidate deletes the snapshot for sessionID.
func (v *View) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	if err := v.store.Delete(ctx, Key(sessionID, v.name)); err != nil {
		log.Error().
			Err(err).
			Str("view", v.name).
			Str("session_id", sessionID.String()).
			Msg("failed to invalidate cache")
		return apperrors.Upstream(err, "cache invalidation failed, data may be stale")
	}
	return nil
}
