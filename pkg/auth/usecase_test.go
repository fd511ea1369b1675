package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daunku/daunku/pkg/security/password"
)

type fakeRepo struct {
	byID     map[uuid.UUID]User
	byEmail  map[string]User
	byGoogle map[string]User

	googleLookupErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     map[uuid.UUID]User{},
		byEmail:  map[string]User{},
		byGoogle: map[string]User{},
	}
}

func (r *fakeRepo) Create(_ context.Context, u User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailTaken
	}
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	if u.GoogleID != "" {
		r.byGoogle[u.GoogleID] = u
	}
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *fakeRepo) GetByGoogleID(_ context.Context, googleID string) (User, error) {
	if r.googleLookupErr != nil {
		return User{}, r.googleLookupErr
	}
	u, ok := r.byGoogle[googleID]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type fakeTokens struct{}

func (fakeTokens) Generate(_ context.Context, u User) (string, error) {
	return "token-for-" + u.ID.String(), nil
}

type fakeGoogle struct {
	identity GoogleIdentity
	err      error
}

func (g fakeGoogle) Verify(context.Context, string) (GoogleIdentity, error) {
	return g.identity, g.err
}

func newTestService(repo UserRepository, google GoogleVerifier) AuthUseCase {
	return NewAuthService(repo, password.NewBcrypt(bcrypt.MinCost), fakeTokens{}, google)
}

func TestRegister(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	result, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ann@x.com", result.User.Email)
	assert.NotEqual(t, "secret1", result.User.PasswordHash)
}

func TestRegisterPublicViewHidesPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	result, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	raw, err := json.Marshal(result.User.Public())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "assword")
	assert.NotContains(t, string(raw), result.User.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	cases := []struct {
		name        string
		displayName string
		email       string
		password    string
	}{
		{"missing display name", "", "ann@x.com", "secret1"},
		{"missing email", "Ann", "", "secret1"},
		{"missing password", "Ann", "ann@x.com", ""},
		{"short password", "Ann", "ann@x.com", "abc12"},
		{"bad email", "Ann", "not-an-email", "secret1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.displayName, tc.email, tc.password)
			var validation ValidationError
			assert.ErrorAs(t, err, &validation)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Other Ann", "ann@x.com", "secret2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})
	registered, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "ann@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLoginDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})
	_, err := svc.Register(context.Background(), "Ann", "ann@x.com", "secret1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), "ann@x.com", "wrong")
	_, unknownEmail := svc.Login(context.Background(), "nobody@x.com", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestLoginMissingFields(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	var validation ValidationError
	_, err := svc.Login(context.Background(), "", "secret1")
	assert.ErrorAs(t, err, &validation)
	_, err = svc.Login(context.Background(), "ann@x.com", "")
	assert.ErrorAs(t, err, &validation)
}

func TestGoogleLoginCreatesUserOnce(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeGoogle{identity: GoogleIdentity{
		Subject: "google-1",
		Email:   "ann@gmail.com",
		Name:    "Ann",
		Picture: "https://example.com/ann.png",
	}})

	first, err := svc.LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "google-1", first.User.GoogleID)
	assert.Equal(t, "Ann", first.User.DisplayName)
	assert.NotEmpty(t, first.User.PasswordHash)

	second, err := svc.LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.byID, 1)
}

func TestGoogleLoginLookupFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeGoogle{identity: GoogleIdentity{
		Subject: "google-1",
		Email:   "ann@gmail.com",
		Name:    "Ann",
	}})

	_, err := svc.LoginWithGoogle(context.Background(), "id-token")
	require.NoError(t, err)

	// A broken connection on the lookup must not be mistaken for a first
	// sign-in, or the service would try to provision a second record.
	repo.googleLookupErr = errors.New("connection reset by peer")
	_, err = svc.LoginWithGoogle(context.Background(), "id-token")
	assert.ErrorIs(t, err, repo.googleLookupErr)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.byID, 1)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	result, err := svc.Register(context.Background(), "Ann", "  Ann@X.COM  ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", result.User.Email)

	login, err := svc.Login(context.Background(), "ANN@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestGoogleLoginMissingToken(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{})

	_, err := svc.LoginWithGoogle(context.Background(), "")
	var validation ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestGoogleLoginVerifierFailure(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeGoogle{err: errors.New("signature mismatch")})

	_, err := svc.LoginWithGoogle(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrGoogleAuth)
}
