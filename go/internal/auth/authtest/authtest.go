// Package authtest issues tokens the auth.Verifier accepts, for handler tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Secret   = "test-jwt-secret"
	Audience = "authenticated"
)

// Token signs an HS256 token for subject that expires after ttl.
func Token(t testing.TB, subject uuid.UUID, ttl time.Duration) string {
	t.Helper()
	return Sign(t, Secret, jwt.RegisteredClaims{
		Subject:   subject.String(),
		Audience:  jwt.ClaimStrings{Audience},
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
}

// Bearer is Token formatted as an Authorization header value.
func Bearer(t testing.TB, subject uuid.UUID) string {
	return "Bearer " + Token(t, subject, time.Hour)
}

// Sign signs arbitrary claims with secret.
func Sign(t testing.TB, secret string, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}
