package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/daunku/daunku/pkg/auth"
)

func TestUserInsertError(t *testing.T) {
	emailViolation := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	googleViolation := &pgconn.PgError{Code: "23505", ConstraintName: "users_google_id_key"}
	connErr := errors.New("connection reset by peer")

	assert.ErrorIs(t, userInsertError(emailViolation), auth.ErrEmailTaken)
	assert.ErrorIs(t, userInsertError(fmt.Errorf("insert: %w", emailViolation)), auth.ErrEmailTaken)

	assert.NotErrorIs(t, userInsertError(googleViolation), auth.ErrEmailTaken)
	assert.ErrorIs(t, userInsertError(googleViolation), googleViolation)
	assert.ErrorIs(t, userInsertError(connErr), connErr)
}
