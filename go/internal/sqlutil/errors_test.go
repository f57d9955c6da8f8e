package sqlutil

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind apperrors.Kind
		wantMsg  string
	}{
		{
			name:     "no rows",
			err:      fmt.Errorf("scan: %w", pgx.ErrNoRows),
			wantKind: apperrors.KindNotFound,
			wantMsg:  "session not found",
		},
		{
			name:     "occupied court",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "game_one_active_per_court"},
			wantKind: apperrors.KindConflict,
			wantMsg:  "court is already occupied",
		},
		{
			name:     "unknown unique constraint",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "something_else"},
			wantKind: apperrors.KindConflict,
			wantMsg:  "session already exists",
		},
		{
			name:     "court out of range",
			err:      &pgconn.PgError{Code: CodeInvalidInput, Message: "court 9 is out of range"},
			wantKind: apperrors.KindValidation,
			wantMsg:  "court 9 is out of range",
		},
		{
			name:     "session full",
			err:      &pgconn.PgError{Code: CodeCapacity, Message: "session is full"},
			wantKind: apperrors.KindConflict,
			wantMsg:  "session is full",
		},
		{
			name:     "bad uuid text",
			err:      &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"},
			wantKind: apperrors.KindValidation,
		},
		{
			name:     "deadline",
			err:      context.DeadlineExceeded,
			wantKind: apperrors.KindUpstream,
		},
		{
			name:     "unknown driver error",
			err:      errors.New("conn closed"),
			wantKind: apperrors.KindUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err, "session")
			if kind := apperrors.KindOf(got); kind != tt.wantKind {
				t.Fatalf("kind = %q, want %q (err=%v)", kind, tt.wantKind, got)
			}
			if tt.wantMsg != "" && apperrors.PublicMessage(got) != tt.wantMsg {
				t.Fatalf("message = %q, want %q", apperrors.PublicMessage(got), tt.wantMsg)
			}
		})
	}
}

func TestClassifyKeepsClassifiedErrors(t *testing.T) {
	in := apperrors.Validation("team_name is required")
	if got := Classify(in, "team"); got != in {
		t.Fatalf("Classify() = %v, want the same error back", got)
	}
	if Classify(nil, "team") != nil {
		t.Fatal("Classify(nil) must be nil")
	}
}
