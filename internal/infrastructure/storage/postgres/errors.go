package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"rentora/internal/core/apperror"
)

const pgUniqueViolation = "23505"

// mapError translates unique violations of the live-row indexes into
// AlreadyExists; other errors pass through.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.NewAlreadyExists(pgErr.TableName).
			WithDetail("constraint", pgErr.ConstraintName).
			WithCause(err)
	}
	return err
}
