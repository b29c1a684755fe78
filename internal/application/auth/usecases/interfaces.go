package usecases

import (
	"context"
	"time"
)

type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	ExpiresIn        int64
	RefreshExpiresIn int64
}

// RefreshClaims is what a verified refresh token identifies.
type RefreshClaims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

type TokenService interface {
	Generate(userID uint) (*TokenPair, error)
	ParseRefresh(token string) (*RefreshClaims, error)
}

// TokenRevoker remembers refresh tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// LoginLimiter throttles login attempts per key (client IP).
type LoginLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IdentityProvider is an external sign-in provider such as Google. The
// verifier returned by AuthURL must be presented again with the callback code.
type IdentityProvider interface {
	AuthURL(state string) (authURL, verifier string, err error)
	// Email exchanges the callback code and returns the verified address.
	Email(ctx context.Context, code, verifier string) (string, error)
}

// StateStore holds the PKCE verifier for an in-flight external sign-in.
// Consume returns ("", nil) for an unknown or already used state.
type StateStore interface {
	Save(ctx context.Context, state, verifier string) error
	Consume(ctx context.Context, state string) (string, error)
}
