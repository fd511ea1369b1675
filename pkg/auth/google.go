package auth

import "context"

// GoogleIdentity is the profile extracted from a verified Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier validates a Google-issued ID token and returns the
// asserted identity. Implementations live under pkg/security/googleauth.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (GoogleIdentity, error)
}
