package repo

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/officelife/pkg/serrors"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// MapPgError converts driver errors that carry domain meaning: a missing
// row becomes NotFound and a unique violation AlreadyExists. Other errors
// pass through unchanged.
func MapPgError(err error, entity, key string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return serrors.NotFound(entity).WithCause(err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return serrors.AlreadyExists(entity, key).WithCause(err)
	case codeForeignKeyViolation:
		return serrors.NotFound(entity).WithCause(err)
	default:
		return err
	}
}
