// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"plaza/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory builds repositories on the open transaction handle.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) NewAuthRepository() repository.AuthRepository {
	return NewAuthRepository(f.tx)
}

func (f *gormRepositoryFactory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return NewRefreshTokenRepository(f.tx)
}

func (f *gormRepositoryFactory) NewProfileRepository() repository.ProfileRepository {
	return NewProfileRepository(f.tx)
}

func (f *gormRepositoryFactory) NewItemRepository() repository.ItemRepository {
	return NewItemRepository(f.tx)
}

func (f *gormRepositoryFactory) NewInventoryRepository() repository.InventoryRepository {
	return NewInventoryRepository(f.tx)
}

func (f *gormRepositoryFactory) NewLandRepository() repository.LandRepository {
	return NewLandRepository(f.tx)
}

func (f *gormRepositoryFactory) NewNodeRepository() repository.NodeRepository {
	return NewNodeRepository(f.tx)
}

func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute commits when fn succeeds. Balance checks inside fn see rows locked by
// the repositories' FOR UPDATE reads until commit.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic, then re-panic so the HTTP recover middleware reports it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
