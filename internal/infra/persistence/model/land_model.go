package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LandPlotModel mirrors the 'land_plots' table.
type LandPlotModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	X            int        `gorm:"not null"`
	Y            int        `gorm:"not null"`
	OwnerID      *uuid.UUID `gorm:"type:uuid;index"`
	Price        int        `gorm:"not null"`
	BuildingType string     `gorm:"type:varchar(20);not null;default:'none'"`
	IsForSale    bool       `gorm:"not null;default:false"`
	ResalePrice  *int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (LandPlotModel) TableName() string {
	return "land_plots"
}

func (m *LandPlotModel) BeforeCreate(_ *gorm.DB) error {
	id, err := newID(m.ID)
	m.ID = id

	return err
}
