package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daunku/daunku/pkg/auth"
)

func TestGenerateParseRoundTrip(t *testing.T) {
	gen := NewGenerator("test-secret", "daunku", time.Hour)
	user := auth.User{ID: uuid.New()}

	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	claims, err := Parse(token, "test-secret", "daunku")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "daunku", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseWrongSecret(t *testing.T) {
	gen := NewGenerator("test-secret", "daunku", time.Hour)

	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "other-secret", "daunku")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	gen := NewGenerator("test-secret", "daunku", -time.Minute)

	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "test-secret", "daunku")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestParseWrongIssuer(t *testing.T) {
	gen := NewGenerator("test-secret", "someone-else", time.Hour)

	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = Parse(token, "test-secret", "daunku")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not.a.token", "test-secret", "daunku")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
