package entity

import (
	"time"

	"github.com/google/uuid"
)

// ItemCategory groups shop items for filtering.
type ItemCategory string

const (
	ItemCategoryEquipment ItemCategory = "equipment"
	ItemCategoryArmor     ItemCategory = "armor"
	ItemCategoryFood      ItemCategory = "food"
	ItemCategoryItem      ItemCategory = "item"
	ItemCategoryMedicine  ItemCategory = "medicine"
)

// ItemCategories lists the categories in display order.
var ItemCategories = []ItemCategory{
	ItemCategoryEquipment,
	ItemCategoryArmor,
	ItemCategoryFood,
	ItemCategoryItem,
	ItemCategoryMedicine,
}

// IsValid reports whether c is a known category.
func (c ItemCategory) IsValid() bool {
	for _, known := range ItemCategories {
		if c == known {
			return true
		}
	}

	return false
}

// Label is the human readable category name.
func (c ItemCategory) Label() string {
	switch c {
	case ItemCategoryEquipment:
		return "裝備"
	case ItemCategoryArmor:
		return "防具"
	case ItemCategoryFood:
		return "食物"
	case ItemCategoryItem:
		return "道具"
	case ItemCategoryMedicine:
		return "藥品"
	default:
		return string(c)
	}
}

// Item is a catalog entry sold in the shop.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       int
	ImageKey    string
	EffectValue int
	Category    ItemCategory
	CreatedAt   time.Time
}

// InventoryEntry is the stock count of one item held by one account.
type InventoryEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Item      *Item
	Quantity  int
	UpdatedAt time.Time
}
