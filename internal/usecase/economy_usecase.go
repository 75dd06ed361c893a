package usecase

import (
	"context"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// PurchaseOutput describes a completed shop purchase.
type PurchaseOutput struct {
	Item     *entity.Item
	Coins    int
	Quantity int
}

// TransferInput is a tip as submitted by the form. Either RecipientID or TipCode is set;
// Amount is the raw form text.
type TransferInput struct {
	SenderID    uuid.UUID
	RecipientID string
	TipCode     string
	Amount      string
}

// TransferOutput describes a completed tip.
type TransferOutput struct {
	Recipient *entity.User
	Amount    int
}

// EconomyUsecase is the shop, the backpack and tipping.
type EconomyUsecase interface {
	ListItems(ctx context.Context, category entity.ItemCategory) ([]*entity.Item, error)
	PurchaseItem(ctx context.Context, userID, itemID uuid.UUID) (*PurchaseOutput, error)
	ListInventory(ctx context.Context, userID uuid.UUID, category entity.ItemCategory) ([]*entity.InventoryEntry, error)
	Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error)
}

// CatalogUsecase loads configured reference data.
type CatalogUsecase interface {
	// Seed upserts configured items and plots by name.
	Seed(ctx context.Context) error
}
