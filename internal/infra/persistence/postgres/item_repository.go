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
	"gorm.io/gorm/clause"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

func (repo *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	return toItemDomain(&itemM), nil
}

// List returns the catalog ordered by price. An empty category means all.
func (repo *itemRepository) List(ctx context.Context, category entity.ItemCategory) ([]*entity.Item, error) {
	query := repo.db.WithContext(ctx).Model(&model.ItemModel{})
	if category != "" {
		query = query.Where("category = ?", string(category))
	}

	var itemMs []*model.ItemModel
	if err := query.Order("price ASC, name ASC").Find(&itemMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	items := make([]*entity.Item, 0, len(itemMs))
	for _, m := range itemMs {
		items = append(items, toItemDomain(m))
	}

	return items, nil
}

func (repo *itemRepository) UpsertByName(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)
	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"description", "price", "image_key", "effect_value", "category", "updated_at"}),
	}).Create(itemM).Error
	if err != nil {
		return errors.Wrapf(err, "failed to upsert item %q", item.Name)
	}

	return nil
}

type inventoryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewInventoryRepository is the constructor for inventoryRepository.
func NewInventoryRepository(db *gorm.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db, now: time.Now}
}

// Increment upserts the (user, item) row; the unique index turns a second purchase into an update.
func (repo *inventoryRepository) Increment(ctx context.Context, userID, itemID uuid.UUID, delta int) error {
	entryM := &model.InventoryEntryModel{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: delta,
	}

	err := repo.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("inventory_entries.quantity + ?", delta),
			"updated_at": repo.now(),
		}),
	}).Create(entryM).Error
	if err != nil {
		return errors.Wrap(err, "failed to increment inventory")
	}

	return nil
}

func (repo *inventoryRepository) FindByUserAndItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.InventoryEntry, error) {
	var entryM model.InventoryEntryModel
	err := repo.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find inventory entry")
	}

	return toInventoryDomain(&entryM), nil
}

func (repo *inventoryRepository) ListByUser(ctx context.Context, userID uuid.UUID, category entity.ItemCategory) ([]*entity.InventoryEntry, error) {
	query := repo.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID)
	if category != "" {
		query = query.Where("item_id IN (?)",
			repo.db.Model(&model.ItemModel{}).Select("id").Where("category = ?", string(category)))
	}

	var entryMs []*model.InventoryEntryModel
	if err := query.Order("updated_at DESC").Find(&entryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	entries := make([]*entity.InventoryEntry, 0, len(entryMs))
	for _, m := range entryMs {
		entries = append(entries, toInventoryDomain(m))
	}

	return entries, nil
}
