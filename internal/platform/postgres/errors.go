package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/attune-api/internal/store"
)

// SQLSTATE codes the stores translate.
const (
	codeUniqueViolation  = "23505"
	codeCheckViolation   = "23514"
	codeNotNullViolation = "23502"
	codeInvalidText      = "22P02"
)

// MapError translates driver errors into store sentinels, wrapping the
// original so it stays available to the logs.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	pgErr, ok := asPgError(err)
	if !ok {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case codeCheckViolation:
		return fmt.Errorf("%w: check %s failed: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	case codeNotNullViolation:
		return fmt.Errorf("%w: column (%s) is required: %v", store.ErrInvalidEntity, pgErr.ColumnName, err)
	case codeInvalidText:
		return fmt.Errorf("%w: malformed value: %v", store.ErrInvalidEntity, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	pgErr, ok := asPgError(err)
	return ok && pgErr.Code == codeUniqueViolation
}

// MapUniqueViolation maps a unique violation to the entity-specific
// duplicate error and everything else through MapError.
func MapUniqueViolation(err error, duplicate error) error {
	if !IsUniqueViolation(err) {
		return MapError(err)
	}
	if duplicate == nil {
		duplicate = store.ErrDuplicate
	}
	return fmt.Errorf("%w: %v", duplicate, err)
}

func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
