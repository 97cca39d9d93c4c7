// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"eduvn/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// There is no role field: registration always creates a student.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Grade    *int
	School   *string
}

// LoginInput defines the data required to log in with local credentials.
type LoginInput struct {
	Email    string
	Password string
}

// GoogleLoginInput carries the raw Google ID token obtained by the client.
type GoogleLoginInput struct {
	IDToken string
}

// --- Output DTOs ---

// AuthOutput returns the session tokens and the authenticated user.
// Every successful authentication path (register, login, refresh, Google)
// produces the same shape.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for the authentication operations.
// This is the contract that the delivery layer (API handlers) depends on.
type AuthUsecase interface {
	// Register creates a new local-credential account and opens its first session.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login authenticates local credentials and opens a new session.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// RefreshSession rotates a refresh token: the presented token is revoked
	// and a brand-new session is issued.
	RefreshSession(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout revokes the presented refresh token. Unknown or already-revoked
	// tokens succeed: the end state "token unusable" already holds.
	Logout(ctx context.Context, refreshToken string) error

	// GoogleLogin verifies a Google ID token and signs the user in, creating
	// or linking the account as needed.
	GoogleLogin(ctx context.Context, input GoogleLoginInput) (*AuthOutput, error)
}
