package repository

import (
	"context"
	"errors"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned when a catalog item does not exist.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository reads the shop catalog.
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)

	// List returns the catalog ordered by price, optionally filtered by category.
	List(ctx context.Context, category entity.ItemCategory) ([]*entity.Item, error)

	// UpsertByName inserts or refreshes a catalog entry keyed by its name.
	UpsertByName(ctx context.Context, item *entity.Item) error
}

// InventoryRepository tracks per-user item stock.
type InventoryRepository interface {
	// Increment adds delta to the (user, item) entry, creating it when missing.
	Increment(ctx context.Context, userID, itemID uuid.UUID, delta int) error

	FindByUserAndItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.InventoryEntry, error)

	// ListByUser returns the user's entries joined with their items, optionally filtered by category.
	ListByUser(ctx context.Context, userID uuid.UUID, category entity.ItemCategory) ([]*entity.InventoryEntry, error)
}
