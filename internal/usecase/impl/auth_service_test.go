package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/domain/service"
	mockrepo "eduvn/internal/mocks/repository"
	mocksvc "eduvn/internal/mocks/service"
	"eduvn/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	users      *mockrepo.UserRepository
	tokens     *mockrepo.RefreshTokenRepository
	hasher     *mocksvc.PasswordHasher
	tokenSvc   *mocksvc.TokenService
	googleAuth *mocksvc.GoogleAuthService
	service    usecase.AuthUsecase
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:      new(mockrepo.UserRepository),
		tokens:     new(mockrepo.RefreshTokenRepository),
		hasher:     new(mocksvc.PasswordHasher),
		tokenSvc:   new(mocksvc.TokenService),
		googleAuth: new(mocksvc.GoogleAuthService),
	}

	txManager := &mockrepo.TransactionManager{
		Factory: &mockrepo.RepositoryFactory{Users: f.users, Tokens: f.tokens},
	}

	f.service = NewAuthService(
		txManager, f.users, f.tokens,
		f.hasher, f.tokenSvc, f.googleAuth,
		slog.Default(),
	)

	return f
}

// expectSession wires the token mocks for one successful session issuance.
func (f *authFixture) expectSession() {
	f.tokenSvc.On("GenerateAccessToken", mock.Anything).Return("access-token", nil)
	f.tokenSvc.On("GenerateRefreshToken").Return("refresh-token", nil)
	f.tokenSvc.On("HashToken", "refresh-token").Return("refresh-token-hash")
	f.tokenSvc.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	f.tokens.On("Create", mock.Anything, mock.Anything).Return(nil)
}

func approvedUser() *entity.User {
	hash := "bcrypt-hash"

	return &entity.User{
		ID:           uuid.New(),
		Email:        "student@example.com",
		PasswordHash: &hash,
		FullName:     "A Student",
		Role:         entity.RoleStudent,
		Status:       entity.StatusApproved,
	}
}

func TestRegister_Success(t *testing.T) {
	f := newAuthFixture()

	f.users.On("EmailExists", mock.Anything, "new@example.com").Return(false, nil)
	f.hasher.On("Hash", "Password123").Return("bcrypt-hash", nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "new@example.com" &&
			u.Role == entity.RoleStudent &&
			u.Status == entity.StatusApproved &&
			u.PasswordHash != nil
	})).Return(nil)
	f.expectSession()

	out, err := f.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "Password123",
		FullName: "New Student",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", out.AccessToken)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	assert.Equal(t, entity.StatusApproved, out.User.Status)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newAuthFixture()

	f.users.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	out, err := f.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "Password123",
	})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
	f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_AlwaysCreatesStudent(t *testing.T) {
	f := newAuthFixture()

	f.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	f.hasher.On("Hash", mock.Anything).Return("bcrypt-hash", nil)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Role == entity.RoleStudent
	})).Return(nil)
	f.expectSession()

	out, err := f.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "sneaky@example.com",
		Password: "Password123",
		FullName: "Sneaky",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStudent, out.User.Role)
	f.users.AssertExpectations(t)
}

func TestRegister_SessionFailureRollsBackInTransaction(t *testing.T) {
	f := newAuthFixture()

	f.users.On("EmailExists", mock.Anything, mock.Anything).Return(false, nil)
	f.hasher.On("Hash", mock.Anything).Return("bcrypt-hash", nil)
	f.users.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.tokenSvc.On("GenerateAccessToken", mock.Anything).Return("access-token", nil)
	f.tokenSvc.On("GenerateRefreshToken").Return("refresh-token", nil)
	f.tokenSvc.On("HashToken", "refresh-token").Return("refresh-token-hash")
	f.tokenSvc.On("RefreshTokenDuration").Return(7 * 24 * time.Hour)
	f.tokens.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	out, err := f.service.Register(context.Background(), usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "Password123",
	})
	assert.Nil(t, out)
	assert.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()

	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.hasher.On("Check", "Password123", "bcrypt-hash").Return(true)
	f.expectSession()

	out, err := f.service.Login(context.Background(), usecase.LoginInput{
		Email:    user.Email,
		Password: "Password123",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	assert.NotEmpty(t, out.RefreshToken)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	googleOnly := approvedUser()
	googleOnly.PasswordHash = nil

	cases := []struct {
		name  string
		setup func(f *authFixture)
	}{
		{
			name: "unknown email",
			setup: func(f *authFixture) {
				f.users.On("FindByEmail", mock.Anything, mock.Anything).
					Return(nil, repository.ErrUserNotFound)
			},
		},
		{
			name: "google-only account",
			setup: func(f *authFixture) {
				f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(googleOnly, nil)
			},
		},
		{
			name: "wrong password",
			setup: func(f *authFixture) {
				f.users.On("FindByEmail", mock.Anything, mock.Anything).Return(approvedUser(), nil)
				f.hasher.On("Check", mock.Anything, mock.Anything).Return(false)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			tc.setup(f)

			out, err := f.service.Login(context.Background(), usecase.LoginInput{
				Email:    "whoever@example.com",
				Password: "whatever",
			})
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		})
	}
}

func TestLogin_AccountNotApproved(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	user.Status = entity.StatusPending

	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.hasher.On("Check", mock.Anything, mock.Anything).Return(true)

	out, err := f.service.Login(context.Background(), usecase.LoginInput{
		Email:    user.Email,
		Password: "Password123",
	})
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotApproved.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "Pending")
}

func storedToken(user *entity.User) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: "old-hash",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestRefreshSession_BlockedAccount(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	user.Status = entity.StatusBlocked
	old := storedToken(user)

	f.tokenSvc.On("HashToken", "old-token").Return("old-hash")
	f.tokens.On("FindByTokenHash", mock.Anything, "old-hash").Return(old, nil)
	f.tokens.On("Revoke", mock.Anything, old).Return(nil)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	out, err := f.service.RefreshSession(context.Background(), "old-token")
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotApproved.ErrorCode(), appErr.ErrorCode())
}

func TestRefreshSession_Success(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	old := storedToken(user)

	f.tokenSvc.On("HashToken", "old-token").Return("old-hash")
	f.tokens.On("FindByTokenHash", mock.Anything, "old-hash").Return(old, nil)
	f.tokens.On("Revoke", mock.Anything, old).Return(nil)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.expectSession()

	out, err := f.service.RefreshSession(context.Background(), "old-token")
	require.NoError(t, err)
	assert.Equal(t, "refresh-token", out.RefreshToken)
	f.tokens.AssertCalled(t, "Revoke", mock.Anything, old)
}

func TestRefreshSession_InvalidTokens(t *testing.T) {
	user := approvedUser()

	revoked := storedToken(user)
	revoked.Revoked = true

	expired := storedToken(user)
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	cases := []struct {
		name  string
		setup func(f *authFixture)
	}{
		{
			name: "unknown token",
			setup: func(f *authFixture) {
				f.tokens.On("FindByTokenHash", mock.Anything, mock.Anything).
					Return(nil, repository.ErrRefreshTokenNotFound)
			},
		},
		{
			name: "revoked token",
			setup: func(f *authFixture) {
				f.tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(revoked, nil)
			},
		},
		{
			name: "expired token",
			setup: func(f *authFixture) {
				f.tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(expired, nil)
			},
		},
		{
			name: "lost revocation race",
			setup: func(f *authFixture) {
				fresh := storedToken(user)
				f.tokens.On("FindByTokenHash", mock.Anything, mock.Anything).Return(fresh, nil)
				f.tokens.On("Revoke", mock.Anything, fresh).
					Return(repository.ErrRefreshTokenNotFound)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuthFixture()
			f.tokenSvc.On("HashToken", mock.Anything).Return("some-hash")
			tc.setup(f)

			out, err := f.service.RefreshSession(context.Background(), "some-token")
			assert.Nil(t, out)
			assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	stored := storedToken(user)

	f.tokenSvc.On("HashToken", "live-token").Return("old-hash")
	f.tokens.On("FindByTokenHash", mock.Anything, "old-hash").Return(stored, nil)
	f.tokens.On("Revoke", mock.Anything, stored).Return(nil)

	assert.NoError(t, f.service.Logout(context.Background(), "live-token"))
}

func TestLogout_Idempotent(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture()
		f.tokenSvc.On("HashToken", mock.Anything).Return("gone-hash")
		f.tokens.On("FindByTokenHash", mock.Anything, "gone-hash").
			Return(nil, repository.ErrRefreshTokenNotFound)

		assert.NoError(t, f.service.Logout(context.Background(), "gone-token"))
	})

	t.Run("already revoked", func(t *testing.T) {
		f := newAuthFixture()
		stored := storedToken(approvedUser())
		f.tokenSvc.On("HashToken", mock.Anything).Return("old-hash")
		f.tokens.On("FindByTokenHash", mock.Anything, "old-hash").Return(stored, nil)
		f.tokens.On("Revoke", mock.Anything, stored).
			Return(repository.ErrRefreshTokenNotFound)

		assert.NoError(t, f.service.Logout(context.Background(), "old-token"))
	})
}

func TestGoogleLogin_InvalidToken(t *testing.T) {
	f := newAuthFixture()

	f.googleAuth.On("VerifyIDToken", mock.Anything, "bad-token").
		Return(nil, errors.New("idtoken: invalid audience"))

	out, err := f.service.GoogleLogin(context.Background(), usecase.GoogleLoginInput{IDToken: "bad-token"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrGoogleTokenInvalid)
}

func TestGoogleLogin_ExistingLinkedAccount(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	googleID := "google-sub-1"
	user.GoogleID = &googleID

	f.googleAuth.On("VerifyIDToken", mock.Anything, "id-token").Return(&service.GoogleUser{
		GoogleID: googleID,
		Email:    user.Email,
		FullName: user.FullName,
	}, nil)
	f.users.On("FindByGoogleID", mock.Anything, googleID).Return(user, nil)
	f.expectSession()

	out, err := f.service.GoogleLogin(context.Background(), usecase.GoogleLoginInput{IDToken: "id-token"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGoogleLogin_LinksGoogleIDToEmailAccount(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser() // no GoogleID yet

	f.googleAuth.On("VerifyIDToken", mock.Anything, "id-token").Return(&service.GoogleUser{
		GoogleID: "google-sub-2",
		Email:    user.Email,
		FullName: user.FullName,
	}, nil)
	f.users.On("FindByGoogleID", mock.Anything, "google-sub-2").
		Return(nil, repository.ErrUserNotFound)
	f.users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.GoogleID != nil && *u.GoogleID == "google-sub-2"
	})).Return(nil)
	f.expectSession()

	out, err := f.service.GoogleLogin(context.Background(), usecase.GoogleLoginInput{IDToken: "id-token"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestGoogleLogin_CreatesPasswordlessAccount(t *testing.T) {
	f := newAuthFixture()

	f.googleAuth.On("VerifyIDToken", mock.Anything, "id-token").Return(&service.GoogleUser{
		GoogleID: "google-sub-3",
		Email:    "fresh@example.com",
		FullName: "Fresh User",
	}, nil)
	f.users.On("FindByGoogleID", mock.Anything, "google-sub-3").
		Return(nil, repository.ErrUserNotFound)
	f.users.On("FindByEmail", mock.Anything, "fresh@example.com").
		Return(nil, repository.ErrUserNotFound)
	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.PasswordHash == nil &&
			u.Role == entity.RoleStudent &&
			u.Status == entity.StatusApproved &&
			u.GoogleID != nil && *u.GoogleID == "google-sub-3"
	})).Return(nil)
	f.expectSession()

	out, err := f.service.GoogleLogin(context.Background(), usecase.GoogleLoginInput{IDToken: "id-token"})
	require.NoError(t, err)
	assert.False(t, out.User.HasPassword())
}

func TestGoogleLogin_BlockedAccount(t *testing.T) {
	f := newAuthFixture()
	user := approvedUser()
	user.Status = entity.StatusBlocked
	googleID := "google-sub-4"
	user.GoogleID = &googleID

	f.googleAuth.On("VerifyIDToken", mock.Anything, mock.Anything).Return(&service.GoogleUser{
		GoogleID: googleID,
		Email:    user.Email,
	}, nil)
	f.users.On("FindByGoogleID", mock.Anything, googleID).Return(user, nil)

	out, err := f.service.GoogleLogin(context.Background(), usecase.GoogleLoginInput{IDToken: "id-token"})
	assert.Nil(t, out)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrAccountNotApproved.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "Blocked")
}
