// Package model holds the GORM persistence models. Domain entities never carry gorm tags;
// repositories map between the two.
package model

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// newID returns a time-ordered UUIDv7 so primary keys stay index friendly.
func newID(current uuid.UUID) (uuid.UUID, error) {
	if current != uuid.Nil {
		return current, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "generate uuid v7")
	}

	return id, nil
}

// All lists every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&ProfileModel{},
		&AuthenticationModel{},
		&RefreshTokenModel{},
		&ItemModel{},
		&InventoryEntryModel{},
		&LandPlotModel{},
		&DiscussionNodeModel{},
	}
}
