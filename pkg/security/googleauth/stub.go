package googleauth

import (
	"context"

	"github.com/daunku/daunku/pkg/auth"
)

// StubVerifier accepts any non-empty token and returns a fixed identity.
// It exists for development and test environments where no Google OAuth
// client is configured; production wiring must use Verifier.
type StubVerifier struct{}

func (StubVerifier) Verify(_ context.Context, idToken string) (auth.GoogleIdentity, error) {
	if idToken == "" {
		return auth.GoogleIdentity{}, ErrInvalidAssertion
	}
	return auth.GoogleIdentity{
		Subject: "stub-google-subject",
		Email:   "test@gmail.com",
		Name:    "Test User",
		Picture: "https://via.placeholder.com/150",
	}, nil
}
