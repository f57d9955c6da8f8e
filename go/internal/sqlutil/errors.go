package sqlutil

import (
	"context"
	"errors"

	"github.com/Paolo-ittapuppy/OpenGymBE/go/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes raised by the schema's procedures.
const (
	CodeInvalidInput = "OG001"
	CodeCapacity     = "OG002"
)

// constraintMessages gives client-facing text for the unique constraints a
// mutation can trip over.
var constraintMessages = map[string]string{
	"game_one_active_per_court":   "court is already occupied",
	"game_one_active_per_team":    "team is already playing on a court",
	"player_one_team_per_session": "player already belongs to a team in this session",
	"profiles_username_key":       "username is already taken",
	"team_session_name_key":       "a team with that name already exists in this session",
}

// Classify maps a store error onto an apperrors kind. what names the entity
// for not-found messages, e.g. "session".
func Classify(err error, what string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(what + " not found")
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return apperrors.Upstream(err, "store request timed out")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if msg, ok := constraintMessages[pgErr.ConstraintName]; ok {
				return apperrors.Conflict(msg)
			}
			return apperrors.Conflict(what + " already exists")
		case "23503": // foreign_key_violation
			return apperrors.Validation("referenced " + what + " does not exist")
		case "23502", "23514", "22P02", "22023", "22007", "22008", "22003":
			return apperrors.Validation(pgErr.Message)
		case "P0002": // no_data_found
			return apperrors.NotFound(pgErr.Message)
		case CodeInvalidInput:
			return apperrors.Validation(pgErr.Message)
		case CodeCapacity:
			return apperrors.Conflict(pgErr.Message)
		}
	}

	return apperrors.Upstream(err, "store request failed")
}
