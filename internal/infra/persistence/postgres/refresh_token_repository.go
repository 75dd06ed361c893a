package postgres

import (
	"context"
	"time"

	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type refreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

func (repo *refreshTokenRepository) byHash(ctx context.Context, tokenHash string) *gorm.DB {
	return repo.db.WithContext(ctx).Where("token_hash = ?", tokenHash)
}

func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	row := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create refresh token")
	}
	token.ID, token.CreatedAt = row.ID, row.CreatedAt

	return nil
}

// FindRefreshTokenByHash returns expired rows too; the caller decides.
func (repo *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var row model.RefreshTokenModel
	if err := repo.byHash(ctx, tokenHash).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	return toRefreshTokenDomain(&row), nil
}

func (repo *refreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	result := repo.byHash(ctx, tokenHash).Delete(&model.RefreshTokenModel{})
	switch {
	case result.Error != nil:
		return errors.Wrap(result.Error, "failed to delete refresh token")
	case result.RowsAffected == 0:
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

func (repo *refreshTokenRepository) PruneExpiredRefreshTokens(ctx context.Context, userID uuid.UUID, now time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND expires_at <= ?", userID, now).
		Delete(&model.RefreshTokenModel{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to prune refresh tokens")
	}

	return result.RowsAffected, nil
}
