package usecase

import (
	"context"

	"plaza/internal/domain/entity"

	"github.com/google/uuid"
)

// LandUsecase covers first sales from the system and resale between players.
type LandUsecase interface {
	ListPlots(ctx context.Context) ([]*entity.LandPlot, error)
	// PurchasePlot buys an unowned plot at its system price.
	PurchasePlot(ctx context.Context, buyerID, plotID uuid.UUID) (*entity.LandPlot, error)
	// ListPlotForSale puts an owned plot on the market at the raw form price.
	ListPlotForSale(ctx context.Context, ownerID, plotID uuid.UUID, price string) (*entity.LandPlot, error)
	UnlistPlot(ctx context.Context, ownerID, plotID uuid.UUID) error
	// PurchaseResalePlot buys a listed plot from its owner.
	PurchaseResalePlot(ctx context.Context, buyerID, plotID uuid.UUID) (*entity.LandPlot, error)
}
