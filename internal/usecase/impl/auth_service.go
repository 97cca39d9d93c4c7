// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "eduvn/internal/delivery/context"
	"eduvn/internal/domain/entity"
	domainerrors "eduvn/internal/domain/errors"
	"eduvn/internal/domain/repository"
	"eduvn/internal/domain/service"
	"eduvn/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface. It orchestrates the
// credential store, the token signer, the refresh token ledger and the
// federated verifier; none of those collaborators knows about the others.
type authService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	tokenRepo  repository.RefreshTokenRepository
	hasher     service.PasswordHasher
	tokenSvc   service.TokenService
	googleAuth service.GoogleAuthService
	logger     *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	googleAuth service.GoogleAuthService,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		txManager:  txManager,
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		hasher:     hasher,
		tokenSvc:   tokenSvc,
		googleAuth: googleAuth,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new local-credential account and opens its first session.
// User creation and session issuance share one transaction: if the refresh
// token cannot be persisted, the new user is rolled back too.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Registering user", slog.String("email", input.Email))

	// Advisory pre-check; the unique constraint stays the source of truth.
	exists, err := srv.userRepo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if exists {
		return nil, domainerrors.ErrEmailAlreadyRegistered
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: &hash,
		FullName:     input.FullName,
		// Registration always creates students. Instructor and admin
		// accounts are provisioned out of band.
		Role:         entity.RoleStudent,
		Status:       entity.StatusApproved,
		Grade:        input.Grade,
		School:       input.School,
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		output, err = srv.issueSession(ctx, repoFactory.RefreshTokenRepo(), user)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))

	return output, nil
}

// Login authenticates local credentials and opens a new session.
// Unknown email, a Google-only account and a wrong password are
// indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !user.HasPassword() || !srv.hasher.Check(input.Password, *user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	if user.Status != entity.StatusApproved {
		return nil, domainerrors.ErrAccountNotApproved.WithDetails("Account is " + user.Status.String())
	}

	output, err := srv.issueSession(ctx, srv.tokenRepo, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return output, nil
}

// RefreshSession rotates a refresh token. The presented token is revoked and
// a brand-new one issued inside a single transaction; when two requests race
// on the same token, the conditional revoke lets exactly one of them win.
func (srv *authService) RefreshSession(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	tokenHash := srv.tokenSvc.HashToken(refreshToken)

	var output *usecase.AuthOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.RefreshTokenRepo()

		stored, err := tokenRepo.FindByTokenHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find refresh token")
		}

		// Revoked and expired tokens answer exactly like unknown ones.
		if !stored.Usable(time.Now()) {
			return domainerrors.ErrRefreshTokenInvalid
		}

		if err := tokenRepo.Revoke(ctx, stored); err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to revoke refresh token")
		}

		user, err := repoFactory.UserRepo().FindByID(ctx, stored.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(err, "failed to find user")
		}

		if user.Status != entity.StatusApproved {
			return domainerrors.ErrAccountNotApproved.WithDetails("Account is " + user.Status.String())
		}

		output, err = srv.issueSession(ctx, tokenRepo, user)

		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// Logout revokes the presented refresh token. The operation is idempotent:
// an unknown, already-revoked or expired token still reports success, since
// the desired end state (token unusable) already holds.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := srv.tokenSvc.HashToken(refreshToken)

	stored, err := srv.tokenRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find refresh token")
	}

	if err := srv.tokenRepo.Revoke(ctx, stored); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to revoke refresh token")
	}

	srv.log(ctx).Info("User logged out", slog.Any("userID", stored.UserID))

	return nil
}

// GoogleLogin verifies a Google ID token and signs the user in. Lookup order:
// linked Google id first, then email (linking the Google id when unset), and
// finally a brand-new passwordless account.
func (srv *authService) GoogleLogin(ctx context.Context, input usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	googleUser, err := srv.googleAuth.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		return nil, domainerrors.ErrGoogleTokenInvalid
	}

	var output *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := srv.resolveGoogleUser(ctx, userRepo, googleUser)
		if err != nil {
			return err
		}

		if user.Status != entity.StatusApproved {
			return domainerrors.ErrAccountNotApproved.WithDetails("Account is " + user.Status.String())
		}

		output, err = srv.issueSession(ctx, repoFactory.RefreshTokenRepo(), user)

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Google login succeeded", slog.Any("userID", output.User.ID))

	return output, nil
}

// resolveGoogleUser finds or creates the account behind a verified Google identity.
func (srv *authService) resolveGoogleUser(ctx context.Context, userRepo repository.UserRepository, googleUser *service.GoogleUser) (*entity.User, error) {
	user, err := userRepo.FindByGoogleID(ctx, googleUser.GoogleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by google id")
	}

	user, err = userRepo.FindByEmail(ctx, googleUser.Email)
	if err == nil {
		// Link the Google identity to the existing email account, once.
		if user.GoogleID == nil {
			user.GoogleID = &googleUser.GoogleID
			if err := userRepo.Update(ctx, user); err != nil {
				return nil, errors.Wrap(err, "failed to link google id")
			}
		}

		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	user = &entity.User{
		Email:    googleUser.Email,
		FullName: googleUser.FullName,
		Role:     entity.RoleStudent,
		Status:   entity.StatusApproved,
		GoogleID: &googleUser.GoogleID,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Created user from Google identity", slog.Any("userID", user.ID))

	return user, nil
}

// issueSession generates the access/refresh token pair and persists the
// refresh token's hash. Shared by every successful authentication path.
func (srv *authService) issueSession(ctx context.Context, tokenRepo repository.RefreshTokenRepository, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokenSvc.GenerateRefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenSvc.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenSvc.RefreshTokenDuration()),
	}
	if err := tokenRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
