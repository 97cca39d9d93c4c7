package google

import (
	"context"
	"log/slog"
	"testing"

	"eduvn/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"google.golang.org/api/idtoken"
)

func testVerifier(validate validatorFunc) *verifier {
	return &verifier{
		clientID: "client-id.apps.googleusercontent.com",
		logger:   slog.Default(),
		validate: validate,
	}
}

func TestNewVerifier_RequiresClientID(t *testing.T) {
	v, err := NewVerifier(&config.Config{}, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, v)
}

func TestVerifyIDToken_Valid(t *testing.T) {
	v := testVerifier(func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
		assert.Equal(t, "raw-token", idTok)
		assert.Equal(t, "client-id.apps.googleusercontent.com", audience)

		return &idtoken.Payload{
			Subject: "google-sub-123",
			Claims: map[string]any{
				"email":   "alice@example.com",
				"name":    "Alice Example",
				"picture": "https://lh3.example.com/photo.jpg",
			},
		}, nil
	})

	user, err := v.VerifyIDToken(context.Background(), "raw-token")
	assert.NoError(t, err)
	assert.Equal(t, "google-sub-123", user.GoogleID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice Example", user.FullName)
	assert.Equal(t, "https://lh3.example.com/photo.jpg", user.PictureURL)
}

func TestVerifyIDToken_NameFallsBackToEmailLocalPart(t *testing.T) {
	v := testVerifier(func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{
			Subject: "google-sub-456",
			Claims: map[string]any{
				"email": "bob.tran@example.com",
			},
		}, nil
	})

	user, err := v.VerifyIDToken(context.Background(), "raw-token")
	assert.NoError(t, err)
	assert.Equal(t, "bob.tran", user.FullName)
}

func TestVerifyIDToken_ValidationFailure(t *testing.T) {
	v := testVerifier(func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
		return nil, errors.New("idtoken: token expired")
	})

	user, err := v.VerifyIDToken(context.Background(), "raw-token")
	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestVerifyIDToken_MissingIdentityClaims(t *testing.T) {
	v := testVerifier(func(ctx context.Context, idTok, audience string) (*idtoken.Payload, error) {
		return &idtoken.Payload{Subject: "google-sub-789", Claims: map[string]any{}}, nil
	})

	user, err := v.VerifyIDToken(context.Background(), "raw-token")
	assert.Error(t, err)
	assert.Nil(t, user)
}
