package entity

import (
	"time"

	"github.com/google/uuid"
)

// BuildingType is what stands on a land plot.
type BuildingType string

const (
	BuildingNone      BuildingType = "none"
	BuildingApartment BuildingType = "apartment"
	BuildingVilla     BuildingType = "villa"
	BuildingTower     BuildingType = "tower"
)

// IsValid reports whether b is a known building type.
func (b BuildingType) IsValid() bool {
	switch b {
	case BuildingNone, BuildingApartment, BuildingVilla, BuildingTower:
		return true
	default:
		return false
	}
}

// Label is the human readable building name.
func (b BuildingType) Label() string {
	switch b {
	case BuildingApartment:
		return "公寓"
	case BuildingVilla:
		return "別墅"
	case BuildingTower:
		return "高塔"
	default:
		return "空地"
	}
}

// LandPlot is a purchasable cell of the plaza grid.
type LandPlot struct {
	ID           uuid.UUID
	Name         string
	X            int
	Y            int
	OwnerID      *uuid.UUID // nil while the plot still belongs to the system.
	OwnerName    string     // Username of the owner, filled by list queries.
	Price        int        // System price for the first sale.
	BuildingType BuildingType
	IsForSale    bool // Listed by its owner for resale.
	ResalePrice  *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwned reports whether the plot has left the system's hands.
func (p *LandPlot) IsOwned() bool {
	return p.OwnerID != nil
}

// IsOwnedBy reports whether userID owns the plot.
func (p *LandPlot) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID != nil && *p.OwnerID == userID
}
