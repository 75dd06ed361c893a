package postgres

import (
	"context"
	"time"

	"plaza/internal/domain/entity"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository changes balances with single conditional UPDATE statements,
// so a concurrent request can never observe or produce a negative balance.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile")
	}

	return toProfileDomain(&profileM), nil
}

func (repo *profileRepository) UpdateDetails(ctx context.Context, userID uuid.UUID, details repository.ProfileDetails) error {
	updates := map[string]any{}
	if details.Nickname != nil {
		updates["nickname"] = *details.Nickname
	}
	if details.Bio != nil {
		updates["bio"] = *details.Bio
	}
	if details.AvatarKey != nil {
		updates["avatar_key"] = *details.AvatarKey
	}
	if len(updates) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// Debit subtracts amount only while the balance covers it.
func (repo *profileRepository) Debit(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount < 0 {
		return errors.Errorf("debit amount must not be negative: %d", amount)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ? AND coins >= ?", userID, amount).
		Update("coins", gorm.Expr("coins - ?", amount))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to debit profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInsufficientCoins
	}

	return nil
}

func (repo *profileRepository) Credit(ctx context.Context, userID uuid.UUID, amount int) error {
	if amount < 0 {
		return errors.Errorf("credit amount must not be negative: %d", amount)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Update("coins", gorm.Expr("coins + ?", amount))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to credit profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// ClaimCheckin grants the daily reward in one statement guarded by last_checkin.
// day must already be truncated to the calendar date.
func (repo *profileRepository) ClaimCheckin(ctx context.Context, userID uuid.UUID, day time.Time, coins, experience int) (bool, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ? AND (last_checkin IS NULL OR last_checkin <> ?)", userID, day).
		Updates(map[string]any{
			"coins":        gorm.Expr("coins + ?", coins),
			"experience":   gorm.Expr("experience + ?", experience),
			"level":        gorm.Expr("1 + (experience + ?) / ?", experience, entity.ExperiencePerLevel),
			"last_checkin": day,
		})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to claim checkin")
	}

	return result.RowsAffected == 1, nil
}
