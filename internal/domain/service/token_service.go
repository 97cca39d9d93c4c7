package service

import (
	"time"

	"eduvn/internal/domain/entity"

	"github.com/google/uuid"
)

// Claims is the validated content of an access token.
type Claims struct {
	UserID uuid.UUID
	Role   entity.Role
}

// TokenService mints and validates the two session credentials: signed JWT
// access tokens and opaque random refresh tokens. This abstracts the details
// of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a signed, time-bounded access token
	// carrying the user's id and role.
	GenerateAccessToken(user *entity.User) (string, error)

	// GenerateRefreshToken creates a cryptographically random, URL-safe
	// opaque string. It carries no claims; it is a capability, not a
	// signed structure.
	GenerateRefreshToken() (string, error)

	// ValidateAccessToken verifies signature, issuer, audience and expiry
	// with zero clock-skew tolerance. Every failure mode collapses into a
	// single error so callers cannot probe for the reason.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// HashToken returns the hash under which a refresh token is persisted.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
