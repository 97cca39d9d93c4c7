// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"eduvn/internal/domain/entity"
)

// ErrRefreshTokenNotFound is returned when a refresh token is not found, or
// when a conditional revoke touches no row because another request already
// revoked the token.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository is the ledger of issued refresh tokens.
// It is pure persistence: usability checks (expiry, revoked flag) are the
// orchestrator's responsibility, keeping this layer free of clock reads.
// Rows are never deleted; revocation is a monotonic flag flip kept for audit.
type RefreshTokenRepository interface {
	// FindByTokenHash retrieves a refresh token record by its stored hash,
	// regardless of its revoked or expired state.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// Create persists a new refresh token, representing a user session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// Revoke flips the revoked flag of the identified token from false to
	// true as a single conditional update. If the token is already revoked
	// (a concurrent rotation won the race) it returns ErrRefreshTokenNotFound
	// without modifying anything.
	Revoke(ctx context.Context, token *entity.RefreshToken) error
}
