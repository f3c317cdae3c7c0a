package postgres

import (
	"testing"

	domainerrors "roster/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: constraint}
}

func TestTranslateUniqueViolation_ByConstraintName(t *testing.T) {
	assert.ErrorIs(t, translateUniqueViolation(uniqueViolation("idx_users_username")), domainerrors.ErrUsernameTaken)
	assert.ErrorIs(t, translateUniqueViolation(uniqueViolation("idx_users_email")), domainerrors.ErrEmailTaken)
}

func TestTranslateUniqueViolation_UnknownConstraintStaysNeutral(t *testing.T) {
	// A constraint the mapping does not recognize must not claim a field.
	err := translateUniqueViolation(uniqueViolation("idx_users_something_else"))
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateValue)
	assert.NotErrorIs(t, err, domainerrors.ErrUsernameTaken)
	assert.NotErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestTranslateUniqueViolation_GormDuplicatedKey(t *testing.T) {
	assert.ErrorIs(t, translateUniqueViolation(gorm.ErrDuplicatedKey), domainerrors.ErrDuplicateValue)
}

func TestTranslateUniqueViolation_Wrapped(t *testing.T) {
	wrapped := errors.Wrap(uniqueViolation("idx_users_email"), "create user")
	assert.ErrorIs(t, translateUniqueViolation(wrapped), domainerrors.ErrEmailTaken)
}

func TestTranslateUniqueViolation_IgnoresOtherErrors(t *testing.T) {
	assert.NoError(t, translateUniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.NoError(t, translateUniqueViolation(errors.New("connection reset")))
}
