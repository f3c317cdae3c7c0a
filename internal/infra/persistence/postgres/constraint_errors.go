package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	domainerrors "roster/internal/domain/errors"
)

// PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// translateUniqueViolation maps a unique-constraint violation onto the
// field-specific conflict error, using the constraint name reported by
// PostgreSQL. It returns nil when err is not a unique violation.
//
// This is the authoritative uniqueness guard: a concurrent write that slips
// past the service-level pre-check still surfaces as the same conflict error.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return domainerrors.ErrUsernameTaken
		case strings.Contains(pgErr.ConstraintName, "email"):
			return domainerrors.ErrEmailTaken
		default:
			// Unknown constraint: report a conflict without naming a field.
			return domainerrors.ErrDuplicateValue
		}
	}

	// GORM's translated duplicate-key error loses the constraint name.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrDuplicateValue
	}

	return nil
}

func isNotNullConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL not_null_violation error code.
		return pgErr.Code == "23502"
	}

	return false
}
