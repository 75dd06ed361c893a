// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID, preloading the profile.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by login name, preloading the profile.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Preload("Profile").
		Where("username = ?", username).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user and its profile. Callers run it inside a transaction
// so the pair is never half written.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.Profile == nil {
		return errors.New("user profile is required")
	}

	userM := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUsernameTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	profileM := fromProfileDomain(user.Profile)
	profileM.UserID = userM.ID
	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create profile")
	}

	// Update the entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt
	user.Profile.UserID = userM.ID
	user.Profile.UpdatedAt = profileM.UpdatedAt

	return nil
}
