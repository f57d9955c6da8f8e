package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"auth", Auth("missing token"), KindAuth},
		{"wrapped conflict", fmt.Errorf("assign: %w", Conflict("court is already occupied")), KindConflict},
		{"upstream", Upstream(errors.New("dial tcp"), "store unavailable"), KindUpstream},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("join: %w", Conflict("player already belongs to a team in this session"))
	if !errors.Is(err, ErrConflict) {
		t.Fatal("expected errors.Is to match ErrConflict")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("conflict must not match ErrValidation")
	}
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "cache unavailable")
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable through Unwrap")
	}
	if got := PublicMessage(err); got != "cache unavailable" {
		t.Fatalf("PublicMessage() = %q", got)
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	if got := PublicMessage(errors.New("pq: secret detail")); got != "internal error" {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(Internal(errors.New("nil map"), "encode failed")); got != "internal error" {
		t.Fatalf("PublicMessage() = %q", got)
	}
}
