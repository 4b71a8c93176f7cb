package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/loanlink/internal"
)

// Verifier attests that a bearer token belongs to a real identity. The only
// implementation talks to the external identity provider's signing keys;
// tests swap in fakes.
type Verifier interface {
	Verify(ctx context.Context, token string) (*internal.Identity, error)
}

// Claims are the ID-token claims this service cares about.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
