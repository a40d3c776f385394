package persistence

import (
	"errors"
	"fmt"

	"github.com/abstratium/partner/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto domain errors. Other errors are
// wrapped with the operation name.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
}

// translatePrimaryError reports a concurrent primary save, rejected by the
// partial unique index on is_primary, as a conflict.
func translatePrimaryError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrConflict
	}
	return translateError(op, err)
}

// likeAny builds "LOWER(a) LIKE ? OR LOWER(b) LIKE ?" with one argument per column
func likeAny(pattern string, columns ...string) (string, []any) {
	query := ""
	args := make([]any, 0, len(columns))
	for i, col := range columns {
		if i > 0 {
			query += " OR "
		}
		query += "LOWER(" + col + ") LIKE ?"
		args = append(args, pattern)
	}
	return query, args
}
