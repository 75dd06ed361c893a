package repository

import (
	"context"
	"errors"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrPlotNotFound is returned when a land plot does not exist.
	ErrPlotNotFound = errors.New("land plot not found")
	// ErrPlotOwnershipChanged is returned when a conditional ownership update matches no row.
	ErrPlotOwnershipChanged = errors.New("land plot ownership changed")
)

// LandRepository manages plot ownership and resale listings.
type LandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LandPlot, error)

	// FindByIDForUpdate re-reads the plot holding a row lock where the database supports it.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.LandPlot, error)

	// List returns every plot with its owner's username, ordered by coordinates.
	List(ctx context.Context) ([]*entity.LandPlot, error)

	// AssignOwner sets the owner only while the plot is unowned; otherwise ErrPlotOwnershipChanged.
	AssignOwner(ctx context.Context, plotID, ownerID uuid.UUID) error

	// SetListing updates the resale listing only while ownerID still owns the plot.
	SetListing(ctx context.Context, plotID, ownerID uuid.UUID, forSale bool, price *int) error

	// TransferOwnership moves a listed plot from seller to buyer and clears the listing.
	TransferOwnership(ctx context.Context, plotID, sellerID, buyerID uuid.UUID) error

	// UpsertByName inserts or refreshes a system plot keyed by its name, never touching ownership.
	UpsertByName(ctx context.Context, plot *entity.LandPlot) error
}
