// Package googleauth verifies Google Sign-In ID tokens against Google's
// published signing keys.
package googleauth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daunku/daunku/pkg/auth"
)

const defaultJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// ErrInvalidAssertion is returned for any unusable ID token: bad signature,
// wrong audience or issuer, expired, or malformed.
var ErrInvalidAssertion = errors.New("invalid google id token")

// Verifier validates Google ID tokens (RS256) for a single OAuth client.
type Verifier struct {
	clientID string
	jwks     *jwksCache
}

// Option tweaks Verifier construction; used mainly by tests.
type Option func(*options)

type options struct {
	jwksURL    string
	httpClient *http.Client
	cacheTTL   time.Duration
}

func WithJWKSURL(url string) Option {
	return func(o *options) { o.jwksURL = url }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// NewVerifier builds a verifier for the given OAuth client ID. Key fetches
// are bounded by a short HTTP timeout so a Google outage cannot hang a
// login request.
func NewVerifier(clientID string, opts ...Option) *Verifier {
	o := options{
		jwksURL:    defaultJWKSURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Verifier{
		clientID: clientID,
		jwks:     newJWKSCache(o.jwksURL, o.httpClient, o.cacheTTL),
	}
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Verify checks signature, audience, issuer and expiry, and extracts the
// asserted profile.
func (v *Verifier) Verify(ctx context.Context, idToken string) (auth.GoogleIdentity, error) {
	token, err := jwt.ParseWithClaims(idToken, &idTokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, ErrInvalidAssertion
		}
		kid, _ := t.Header["kid"].(string)
		return v.jwks.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithAudience(v.clientID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return auth.GoogleIdentity{}, ErrInvalidAssertion
	}
	claims, ok := token.Claims.(*idTokenClaims)
	if !ok {
		return auth.GoogleIdentity{}, ErrInvalidAssertion
	}
	if claims.Issuer != "accounts.google.com" && claims.Issuer != "https://accounts.google.com" {
		return auth.GoogleIdentity{}, ErrInvalidAssertion
	}
	if claims.Subject == "" {
		return auth.GoogleIdentity{}, ErrInvalidAssertion
	}
	return auth.GoogleIdentity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
