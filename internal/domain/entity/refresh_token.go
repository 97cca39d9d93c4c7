// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, single-use session credential.
// The raw token never touches the database; only its SHA-256 hash is stored.
// A token is revoked exactly once: when it is exchanged for a new pair
// (rotation) or when the user logs out. Revoked rows are kept for audit.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token. Globally unique.
	ExpiresAt time.Time // The exact time when this refresh token becomes invalid.
	Revoked   bool      // Monotonic flag, false -> true. A revoked token is never usable again.
	CreatedAt time.Time // Timestamp of when this session was created.
}

// Usable reports whether the token can still be exchanged at the given instant.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}
