package auth

import (
	"context"
	"net/http"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/httpx"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type principalKey struct{}

// WithPrincipal returns ctx carrying the principal id.
func WithPrincipal(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, principalKey{}, id)
}

// PrincipalFromContext returns the principal set by Require.
func PrincipalFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(principalKey{}).(uuid.UUID)
	return id, ok
}

// MustPrincipal is for handlers mounted behind Require.
func MustPrincipal(ctx context.Context) (uuid.UUID, error) {
	id, ok := PrincipalFromContext(ctx)
	if !ok {
		return uuid.Nil, apperrors.Auth("missing principal")
	}
	return id, nil
}

// Require rejects requests without a valid bearer token before the handler runs.
func (v *Verifier) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := v.Verify(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected credential")
			httpx.WriteError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}
