package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/daunku/daunku/pkg/security/password"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Register(ctx context.Context, displayName, email, pass string) (AuthResult, error)
	Login(ctx context.Context, email, pass string) (AuthResult, error)
	LoginWithGoogle(ctx context.Context, idToken string) (AuthResult, error)
}

type AuthResult struct {
	User  User
	Token string
}

var validate = validator.New()

type authService struct {
	repo   UserRepository
	hasher password.Hasher
	tokens TokenGenerator
	google GoogleVerifier
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokens TokenGenerator, google GoogleVerifier) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, google: google}
}

func (s *authService) Register(ctx context.Context, displayName, email, pass string) (AuthResult, error) {
	displayName = strings.TrimSpace(displayName)
	email = normalizeEmail(email)
	if displayName == "" || email == "" || pass == "" {
		return AuthResult{}, ValidationError("display name, email and password are required")
	}
	if len(pass) < MinPasswordLength {
		return AuthResult{}, ValidationError("password must be at least 6 characters")
	}
	if err := validate.Var(email, "email"); err != nil {
		return AuthResult{}, ValidationError("invalid email format")
	}

	// Fail fast on a taken email; the unique constraint still backs this
	// up under concurrent registration.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	}

	passwordHash, err := s.hasher.Hash(pass)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.New(),
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}
	return s.issue(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, pass string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || pass == "" {
		return AuthResult{}, ValidationError("email and password are required")
	}

	// Unknown email and wrong password report the same error so that the
	// response does not reveal which one failed.
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !s.hasher.Verify(pass, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *authService) LoginWithGoogle(ctx context.Context, idToken string) (AuthResult, error) {
	if idToken == "" {
		return AuthResult{}, ValidationError("id token is required")
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return AuthResult{}, ErrGoogleAuth
	}

	user, err := s.repo.GetByGoogleID(ctx, identity.Subject)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		// First sign-in for this Google account: provision a user with a
		// random placeholder password so the record stays loginable only
		// through Google.
		placeholder, hashErr := s.hasher.Hash(uuid.NewString())
		if hashErr != nil {
			return AuthResult{}, hashErr
		}
		user = User{
			ID:           uuid.New(),
			DisplayName:  identity.Name,
			Email:        normalizeEmail(identity.Email),
			PasswordHash: placeholder,
			GoogleID:     identity.Subject,
			Photo:        identity.Picture,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return AuthResult{}, err
		}
	default:
		return AuthResult{}, err
	}
	return s.issue(ctx, user)
}

// normalizeEmail makes the address comparable with the stored record, which
// is keyed by the lowercased form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) issue(ctx context.Context, user User) (AuthResult, error) {
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}
