package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/loanlink/internal"
)

// clock skew tolerated when checking exp/iat
const defaultLeeway = 2 * time.Minute

// TokenVerifier validates RS256-signed ID tokens issued by the identity
// provider. The verification key and issuer come from the base64-encoded
// service credentials.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	projectID string
	leeway    time.Duration
}

func NewTokenVerifier(cfg internal.IdentityConfig) (*TokenVerifier, error) {
	sa, err := cfg.GetServiceAccount()
	if err != nil {
		return nil, fmt.Errorf("failed to load service account: %w", err)
	}

	key, err := cfg.GetVerificationKey()
	if err != nil {
		return nil, fmt.Errorf("failed to load verification key: %w", err)
	}

	return &TokenVerifier{
		publicKey: key,
		projectID: sa.ProjectID,
		leeway:    defaultLeeway,
	}, nil
}

// Verify parses and validates an ID token and returns the identity it
// attests. The email claim is required; a token without one is rejected.
func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*internal.Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.projectID != "" {
		opts = append(opts, jwt.WithAudience(v.projectID))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.publicKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrInvalidToken)
	}

	return &internal.Identity{
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
