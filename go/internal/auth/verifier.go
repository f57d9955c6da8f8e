// Package auth verifies the bearer credential on identity-scoped requests and
// carries the resulting principal through the request context.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const bearerPrefix = "bearer "

var (
	// ErrMissingCredential is returned when no Authorization header is present.
	ErrMissingCredential = errors.New("missing credential")
	// ErrMalformedCredential is returned when the header is not a bearer token.
	ErrMalformedCredential = errors.New("malformed credential")
	// ErrInvalidToken is returned when a token fails signature, expiry or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds the JWT claims issued by the identity provider.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Verifier validates HS256 access tokens signed with the provider's shared secret.
type Verifier struct {
	secret   []byte
	audience string
	clock    clockwork.Clock
}

// NewVerifier returns a Verifier. An empty audience skips the aud check.
func NewVerifier(secret, audience string, clock clockwork.Clock) *Verifier {
	return &Verifier{
		secret:   []byte(secret),
		audience: audience,
		clock:    clock,
	}
}

// Verify extracts the principal from an Authorization header value.
// Every failure is an auth error.
func (v *Verifier) Verify(header string) (uuid.UUID, error) {
	token, err := extractBearer(header)
	if err != nil {
		return uuid.Nil, &apperrors.Error{Kind: apperrors.KindAuth, Message: "missing or malformed bearer token", Err: err}
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.clock.Now),
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims Claims
	_, err = jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, &apperrors.Error{Kind: apperrors.KindAuth, Message: "invalid or expired token", Err: fmt.Errorf("%w: %w", ErrInvalidToken, err)}
	}

	principal, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, &apperrors.Error{Kind: apperrors.KindAuth, Message: "token subject is not a user id", Err: ErrInvalidToken}
	}
	return principal, nil
}

// extractBearer returns the token from a "Bearer <token>" header value.
func extractBearer(header string) (string, error) {
	v := strings.TrimSpace(header)
	if v == "" {
		return "", ErrMissingCredential
	}
	if len(v) < len(bearerPrefix) || !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMalformedCredential
	}
	token := strings.TrimSpace(v[len(bearerPrefix):])
	if token == "" {
		return "", ErrMalformedCredential
	}
	return token, nil
}
