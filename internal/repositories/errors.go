package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("record already exists")
	ErrVariantNotFound = errors.New("variant not found")
	ErrForeignKey      = errors.New("referenced record does not exist")
	ErrOutOfRange      = errors.New("value out of range")
)

const (
	pqUniqueViolation     pq.ErrorCode = "23505"
	pqForeignKeyViolation pq.ErrorCode = "23503"
	pqCheckViolation      pq.ErrorCode = "23514"
	pqNumericOutOfRange   pq.ErrorCode = "22003"
)

// MapPQError translates driver errors into repository sentinels, keeping the
// original error in the chain.
func MapPQError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s: %w", ErrConflict, pqErr.Constraint, err)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s: %w", ErrForeignKey, pqErr.Constraint, err)
		case pqCheckViolation, pqNumericOutOfRange:
			return fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
	}

	return err
}
