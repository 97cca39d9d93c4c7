// Package google verifies Google ID tokens for federated sign-in.
package google

import (
	"context"
	"log/slog"
	"strings"

	"eduvn/config"
	"eduvn/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validatorFunc matches idtoken.Validate; swapped in tests.
type validatorFunc func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// verifier implements service.GoogleAuthService using Google's public
// certificate endpoint via the idtoken package.
type verifier struct {
	clientID string
	logger   *slog.Logger
	validate validatorFunc
}

// NewVerifier creates a Google ID token verifier bound to the configured client ID.
func NewVerifier(cfg *config.Config, logger *slog.Logger) (service.GoogleAuthService, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth client id must be provided")
	}

	return &verifier{
		clientID: cfg.GoogleOAuth.ClientID,
		logger:   logger,
		validate: idtoken.Validate,
	}, nil
}

// VerifyIDToken validates the token's signature, issuer, audience and expiry,
// then extracts the identity claims the account layer needs.
func (v *verifier) VerifyIDToken(ctx context.Context, idTok string) (*service.GoogleUser, error) {
	payload, err := v.validate(ctx, idTok, v.clientID)
	if err != nil {
		v.logger.Warn("google id token rejected", slog.String("error", err.Error()))

		return nil, errors.Wrap(err, "validate google id token")
	}

	user, err := userFromPayload(payload)
	if err != nil {
		return nil, err
	}

	v.logger.Info("google id token verified",
		slog.String("googleID", user.GoogleID),
		slog.String("email", user.Email))

	return user, nil
}

// userFromPayload maps verified token claims to a GoogleUser. When the token
// carries no display name, the local part of the email is used instead.
func userFromPayload(payload *idtoken.Payload) (*service.GoogleUser, error) {
	email, _ := payload.Claims["email"].(string)
	if payload.Subject == "" || email == "" {
		return nil, errors.New("google id token missing identity claims")
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	picture, _ := payload.Claims["picture"].(string)

	return &service.GoogleUser{
		GoogleID:   payload.Subject,
		Email:      email,
		FullName:   name,
		PictureURL: picture,
	}, nil
}
