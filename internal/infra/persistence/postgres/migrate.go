package postgres

import (
	"context"

	"plaza/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, index and foreign key of the plaza schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
