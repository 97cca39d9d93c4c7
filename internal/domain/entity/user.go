// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// An account always has at least one authentication path: a local password
// hash, a linked Google identity, or both.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, used as the login identifier. Globally unique.
	PasswordHash *string   // Bcrypt hash of the local password. Nil for Google-only accounts.
	FullName     string    // The user's display name.
	Role         Role      // The user's role (student, instructor, admin).
	Status       Status    // Account approval status, gating authentication.
	Grade        *int      // Optional school grade (10, 11, 12). Student profile data.
	School       *string   // Optional school name. Student profile data.
	GoogleID     *string   // Google's stable subject id. Nil until a Google identity is linked. Unique when set.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// HasPassword reports whether the account can authenticate with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
