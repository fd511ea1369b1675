package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daunku/daunku/pkg/auth"
)

type fakeAuthUseCase struct {
	result auth.AuthResult
	err    error

	gotDisplayName string
	gotEmail       string
	gotIDToken     string
}

func (f *fakeAuthUseCase) Register(_ context.Context, displayName, email, _ string) (auth.AuthResult, error) {
	f.gotDisplayName = displayName
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeAuthUseCase) Login(_ context.Context, email, _ string) (auth.AuthResult, error) {
	f.gotEmail = email
	return f.result, f.err
}

func (f *fakeAuthUseCase) LoginWithGoogle(_ context.Context, idToken string) (auth.AuthResult, error) {
	f.gotIDToken = idToken
	return f.result, f.err
}

func newAuthApp(uc auth.AuthUseCase) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(uc)
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/google", h.GoogleLogin)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestRegisterCreated(t *testing.T) {
	user := auth.User{
		ID:           uuid.New(),
		DisplayName:  "Sari",
		Email:        "sari@example.com",
		PasswordHash: "$2a$10$secret-hash",
		CreatedAt:    time.Now().UTC(),
	}
	uc := &fakeAuthUseCase{result: auth.AuthResult{User: user, Token: "signed-token"}}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/register",
		`{"displayName": "Sari", "email": "sari@example.com", "password": "secret1"}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "registration successful", body["message"])
	assert.Equal(t, "signed-token", body["token"])
	assert.Equal(t, "Sari", uc.gotDisplayName)

	userBody, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), userBody["id"])
	assert.Equal(t, "sari@example.com", userBody["email"])
	assert.NotContains(t, userBody, "password")
	assert.NotContains(t, userBody, "passwordHash")
}

func TestRegisterValidationError(t *testing.T) {
	uc := &fakeAuthUseCase{err: auth.ValidationError("invalid email format")}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/register",
		`{"displayName": "Sari", "email": "not-an-email", "password": "secret1"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid email format", body["message"])
}

func TestRegisterEmailTaken(t *testing.T) {
	uc := &fakeAuthUseCase{err: auth.ErrEmailTaken}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/register",
		`{"displayName": "Sari", "email": "sari@example.com", "password": "secret1"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "email already registered", body["message"])
}

func TestRegisterMalformedJSON(t *testing.T) {
	app := newAuthApp(&fakeAuthUseCase{})

	status, body := postJSON(t, app, "/auth/register", `{"displayName":`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON payload", body["message"])
}

func TestLoginOK(t *testing.T) {
	user := auth.User{ID: uuid.New(), DisplayName: "Sari", Email: "sari@example.com"}
	uc := &fakeAuthUseCase{result: auth.AuthResult{User: user, Token: "signed-token"}}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/login",
		`{"email": "sari@example.com", "password": "secret1"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "login successful", body["message"])
	assert.Equal(t, "signed-token", body["token"])
	assert.Equal(t, "sari@example.com", uc.gotEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	uc := &fakeAuthUseCase{err: auth.ErrInvalidCredentials}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/login",
		`{"email": "sari@example.com", "password": "wrong"}`)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid email or password", body["message"])
}

func TestGoogleLoginOK(t *testing.T) {
	user := auth.User{ID: uuid.New(), DisplayName: "Sari", Email: "sari@gmail.com", GoogleID: "google-sub"}
	uc := &fakeAuthUseCase{result: auth.AuthResult{User: user, Token: "signed-token"}}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/google", `{"idToken": "google-id-token"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "signed-token", body["token"])
	assert.Equal(t, "google-id-token", uc.gotIDToken)
}

func TestGoogleLoginRejected(t *testing.T) {
	uc := &fakeAuthUseCase{err: auth.ErrGoogleAuth}
	app := newAuthApp(uc)

	status, body := postJSON(t, app, "/auth/google", `{"idToken": "forged"}`)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.NotEmpty(t, body["message"])
}
