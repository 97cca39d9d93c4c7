// Package service provides test doubles for the domain service interfaces.
package service

import (
	"context"
	"io"
	"time"

	"eduvn/internal/domain/entity"
	"eduvn/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// TokenService is a testify mock for service.TokenService.
type TokenService struct {
	mock.Mock
}

func (m *TokenService) GenerateAccessToken(user *entity.User) (string, error) {
	args := m.Called(user)

	return args.String(0), args.Error(1)
}

func (m *TokenService) GenerateRefreshToken() (string, error) {
	args := m.Called()

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateAccessToken(token string) (*service.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *TokenService) HashToken(token string) string {
	args := m.Called(token)

	return args.String(0)
}

func (m *TokenService) RefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// PasswordHasher is a testify mock for service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// GoogleAuthService is a testify mock for service.GoogleAuthService.
type GoogleAuthService struct {
	mock.Mock
}

func (m *GoogleAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.GoogleUser, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.GoogleUser), args.Error(1)
}

// PaymentService is a testify mock for service.PaymentService.
type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) CreatePaymentLink(ctx context.Context, req service.PaymentLinkRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

func (m *PaymentService) VerifyWebhook(webhook *service.PaymentWebhook) error {
	args := m.Called(webhook)

	return args.Error(0)
}

// FileStorage is a testify mock for service.FileStorage.
type FileStorage struct {
	mock.Mock
}

func (m *FileStorage) Upload(ctx context.Context, content io.Reader, fileName, folder string) (string, error) {
	args := m.Called(ctx, content, fileName, folder)

	return args.String(0), args.Error(1)
}

func (m *FileStorage) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)

	return args.Error(0)
}
