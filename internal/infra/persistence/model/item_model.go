package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemModel mirrors the 'items' catalog table.
type ItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Price       int       `gorm:"not null;check:chk_items_price,price >= 0"`
	ImageKey    string    `gorm:"type:varchar(255)"`
	EffectValue int       `gorm:"not null;default:0"`
	Category    string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ItemModel) TableName() string {
	return "items"
}

func (m *ItemModel) BeforeCreate(_ *gorm.DB) error {
	id, err := newID(m.ID)
	m.ID = id

	return err
}

// InventoryEntryModel mirrors the 'inventory_entries' table. One row per (user, item).
type InventoryEntryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_user_item"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_user_item"`
	Quantity  int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Item *ItemModel `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (InventoryEntryModel) TableName() string {
	return "inventory_entries"
}

func (m *InventoryEntryModel) BeforeCreate(_ *gorm.DB) error {
	id, err := newID(m.ID)
	m.ID = id

	return err
}
