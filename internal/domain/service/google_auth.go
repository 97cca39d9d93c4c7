package service

import "context"

// GoogleUser is the identity extracted from a verified Google ID token.
type GoogleUser struct {
	GoogleID   string // Google's stable 'sub' claim.
	Email      string // The user's email address.
	FullName   string // Display name; falls back to the email local part when Google omits it.
	PictureURL string // URL of the user's profile picture, may be empty.
}

// GoogleAuthService verifies Google-issued ID tokens.
// Verification covers the token signature against Google's current public
// keys, the audience (this deployment's client id) and the expiry. Callers
// get a single failure mode: the orchestrator never distinguishes a network
// error from a cryptographic one.
type GoogleAuthService interface {
	// VerifyIDToken verifies an ID token and returns the asserted identity.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error)
}
