// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/domain/service"
	"plaza/internal/usecase"
	"plaza/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_@.+-]{3,30}$`)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	authRepo         repository.AuthRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	startingCoins    int
	now              func() time.Time
	logger           *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	startingCoins := 0
	if params.Config != nil && params.Config.Economy != nil {
		startingCoins = params.Config.Economy.StartingCoins
	}

	return &accountService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		authRepo:         params.AuthRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		startingCoins:    startingCoins,
		now:              time.Now,
		logger:           params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the form, then creates user, profile and credential in one transaction.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := strings.TrimSpace(input.Username)
	if !usernamePattern.MatchString(username) {
		return nil, domainerrors.ErrValidationFailed.WithDetails("使用者名稱需為 3 到 30 個字元，僅限英數字與 _@.+-")
	}
	if input.Password != input.PasswordConfirm {
		return nil, domainerrors.ErrPasswordMismatch
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username: username,
		Profile: &entity.Profile{
			Coins: srv.startingCoins,
			Level: 1,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByUsername(ctx, username)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to look up username")
		}

		if createErr := userRepo.Create(ctx, user); createErr != nil {
			if errors.Is(createErr, repository.ErrUsernameTaken) {
				return domainerrors.ErrUserAlreadyExists
			}

			return errors.Wrap(createErr, "failed to create user")
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderPassword,
			ProviderUserID: username,
			PasswordHash:   hashedPassword,
		}

		return errors.Wrap(repoFactory.NewAuthRepository().CreateAuthentication(ctx, auth), "failed to create authentication")
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", user.ID.String()), slog.String("username", username))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies the password credential and opens a new session.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	username := strings.TrimSpace(input.Username)

	auth, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderPassword, username)
	if errors.Is(err, repository.ErrAuthNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find authentication")
	}

	if !srv.hasher.Check(input.Password, auth.PasswordHash) {
		srv.log(ctx).Info("Password mismatch", slog.String("username", username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, auth.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if pruned, pruneErr := srv.refreshTokenRepo.PruneExpiredRefreshTokens(ctx, user.ID, srv.now()); pruneErr != nil {
		srv.log(ctx).Warn("Failed to prune expired sessions", slog.Any("error", pruneErr))
	} else if pruned > 0 {
		srv.log(ctx).Debug("Pruned expired sessions", slog.Int64("count", pruned))
	}

	return srv.openSession(ctx, srv.refreshTokenRepo, user)
}

// openSession issues a token pair and stores the refresh token hash.
func (srv *accountService) openSession(ctx context.Context, tokens repository.RefreshTokenRepository, user *entity.User) (*usecase.SessionOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: util.HashToken(refreshToken),
		ExpiresAt: srv.now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := tokens.CreateRefreshToken(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.SessionOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (srv *accountService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, util.HashToken(refreshToken))
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

func (srv *accountService) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(accessToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage(err.Error())
	}
	if claims.Type != service.TokenTypeAccess {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("not an access token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("account no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load authenticated user")
	}

	return user, nil
}

// Refresh swaps a valid refresh token for a new pair; the old token is consumed.
func (srv *accountService) Refresh(ctx context.Context, refreshToken string) (*usecase.SessionOutput, error) {
	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil || claims.Type != service.TokenTypeRefresh {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	hash := util.HashToken(refreshToken)
	var output *usecase.SessionOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokens := repoFactory.NewRefreshTokenRepository()

		record, findErr := tokens.FindRefreshTokenByHash(ctx, hash)
		if errors.Is(findErr, repository.ErrRefreshTokenNotFound) {
			return domainerrors.ErrRefreshTokenInvalid
		}
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find refresh token")
		}
		if delErr := tokens.DeleteRefreshTokenByHash(ctx, hash); delErr != nil {
			if errors.Is(delErr, repository.ErrRefreshTokenNotFound) {
				return domainerrors.ErrRefreshTokenInvalid
			}

			return errors.Wrap(delErr, "failed to consume refresh token")
		}
		if record.IsExpired(srv.now()) || record.UserID != claims.UserID {
			return domainerrors.ErrRefreshTokenInvalid
		}

		user, userErr := repoFactory.NewUserRepository().FindByID(ctx, record.UserID)
		if errors.Is(userErr, repository.ErrUserNotFound) {
			return domainerrors.ErrRefreshTokenInvalid
		}
		if userErr != nil {
			return errors.Wrap(userErr, "failed to load user for refresh")
		}

		var sessionErr error
		output, sessionErr = srv.openSession(ctx, tokens, user)

		return sessionErr
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	return output, nil
}
