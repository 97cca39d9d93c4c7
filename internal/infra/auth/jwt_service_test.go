package auth

import (
	"testing"
	"time"

	"eduvn/config"
	"eduvn/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = config.JWTConfig{
		SecretKey:       "test_secret_key_very_long_for_testing",
		Issuer:          "eduvn-test",
		Audience:        "eduvn-clients",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func testUser() *entity.User {
	return &entity.User{
		ID:     uuid.New(),
		Email:  "student@example.com",
		Role:   entity.RoleStudent,
		Status: entity.StatusApproved,
	}
}

func TestJWTService_GenerateAndValidateAccessToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	user := testUser()

	accessToken, err := jwtService.GenerateAccessToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	claims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleStudent, claims.Role)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongIssuerRejected(t *testing.T) {
	signerCfg := testJWTConfig()
	signerCfg.JWT.Issuer = "someone-else"
	signer, err := NewJWTService(signerCfg)
	assert.NoError(t, err)

	verifier, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	token, err := signer.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	claims, err := verifier.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.AccessTokenTTL = -time.Minute
	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	token, err := jwtService.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	// No leeway: an already-expired token must fail immediately.
	claims, err := jwtService.ValidateAccessToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.SecretKey = ""

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_RefreshTokenOpaqueAndUnique(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	first, err := jwtService.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := jwtService.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)

	// Opaque refresh tokens must not parse as access tokens.
	claims, err := jwtService.ValidateAccessToken(first)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_HashToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	hash := jwtService.HashToken("some-refresh-token")
	assert.Len(t, hash, 64) // hex-encoded sha256
	assert.Equal(t, hash, jwtService.HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, jwtService.HashToken("another-refresh-token"))
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	assert.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, jwtService.RefreshTokenDuration())
}
