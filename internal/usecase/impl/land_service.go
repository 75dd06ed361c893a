package impl

import (
	"context"
	"log/slog"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/domain/repository"
	"plaza/internal/domain/service"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// landService implements the LandUsecase interface.
type landService struct {
	txManager repository.TransactionManager
	landRepo  repository.LandRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// LandServiceParams holds dependencies for LandService, injected by Fx.
type LandServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	LandRepo  repository.LandRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewLandService creates a new land service
func NewLandService(params LandServiceParams) usecase.LandUsecase {
	return &landService{
		txManager: params.TxManager,
		landRepo:  params.LandRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *landService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *landService) ListPlots(ctx context.Context) ([]*entity.LandPlot, error) {
	plots, err := srv.landRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list plots")
	}

	return plots, nil
}

func findPlot(ctx context.Context, find func(context.Context, uuid.UUID) (*entity.LandPlot, error), plotID uuid.UUID) (*entity.LandPlot, error) {
	plot, err := find(ctx, plotID)
	if errors.Is(err, repository.ErrPlotNotFound) {
		return nil, domainerrors.ErrPlotNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find plot")
	}

	return plot, nil
}

// PurchasePlot sells an unowned plot. The owner is checked once up front and again
// under the row lock; the final assignment only succeeds while owner_id is still NULL.
func (srv *landService) PurchasePlot(ctx context.Context, buyerID, plotID uuid.UUID) (*entity.LandPlot, error) {
	plot, err := findPlot(ctx, srv.landRepo.FindByID, plotID)
	if err != nil {
		return nil, err
	}
	if plot.IsOwned() {
		return nil, domainerrors.ErrPlotAlreadyOwned
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		plots := repoFactory.NewLandRepository()

		locked, findErr := findPlot(ctx, plots.FindByIDForUpdate, plotID)
		if findErr != nil {
			return findErr
		}
		if locked.IsOwned() {
			return domainerrors.ErrPlotAlreadyOwned
		}

		if debitErr := repoFactory.NewProfileRepository().Debit(ctx, buyerID, locked.Price); debitErr != nil {
			if errors.Is(debitErr, repository.ErrInsufficientCoins) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(debitErr, "failed to debit buyer")
		}

		if assignErr := plots.AssignOwner(ctx, plotID, buyerID); assignErr != nil {
			if errors.Is(assignErr, repository.ErrPlotOwnershipChanged) {
				return domainerrors.ErrPlotAlreadyOwned
			}

			return errors.Wrap(assignErr, "failed to assign owner")
		}
		plot = locked

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to purchase plot")
	}

	srv.log(ctx).Info("Plot purchased",
		slog.String("buyerID", buyerID.String()),
		slog.String("plotID", plotID.String()),
		slog.Int("price", plot.Price))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:      entity.EventLandPurchase,
		UserID:    buyerID,
		SubjectID: &plotID,
		Amount:    -plot.Price,
	})

	plot.OwnerID = &buyerID

	return plot, nil
}

func (srv *landService) ListPlotForSale(ctx context.Context, ownerID, plotID uuid.UUID, price string) (*entity.LandPlot, error) {
	resalePrice, err := parseAmount(price)
	if err != nil {
		return nil, err
	}

	plot, err := findPlot(ctx, srv.landRepo.FindByID, plotID)
	if err != nil {
		return nil, err
	}
	if !plot.IsOwnedBy(ownerID) {
		return nil, domainerrors.ErrNotPlotOwner
	}

	if err := srv.landRepo.SetListing(ctx, plotID, ownerID, true, &resalePrice); err != nil {
		if errors.Is(err, repository.ErrPlotOwnershipChanged) {
			return nil, domainerrors.ErrNotPlotOwner
		}

		return nil, errors.Wrap(err, "failed to list plot")
	}

	srv.log(ctx).Info("Plot listed for resale", slog.String("plotID", plotID.String()), slog.Int("price", resalePrice))

	plot.IsForSale = true
	plot.ResalePrice = &resalePrice

	return plot, nil
}

func (srv *landService) UnlistPlot(ctx context.Context, ownerID, plotID uuid.UUID) error {
	plot, err := findPlot(ctx, srv.landRepo.FindByID, plotID)
	if err != nil {
		return err
	}
	if !plot.IsOwnedBy(ownerID) {
		return domainerrors.ErrNotPlotOwner
	}

	if err := srv.landRepo.SetListing(ctx, plotID, ownerID, false, nil); err != nil {
		if errors.Is(err, repository.ErrPlotOwnershipChanged) {
			return domainerrors.ErrNotPlotOwner
		}

		return errors.Wrap(err, "failed to unlist plot")
	}

	return nil
}

// PurchaseResalePlot pays the seller the listed price and hands the plot to the buyer.
func (srv *landService) PurchaseResalePlot(ctx context.Context, buyerID, plotID uuid.UUID) (*entity.LandPlot, error) {
	plot, err := findPlot(ctx, srv.landRepo.FindByID, plotID)
	if err != nil {
		return nil, err
	}
	if !plot.IsForSale || plot.ResalePrice == nil || !plot.IsOwned() {
		return nil, domainerrors.ErrPlotNotForSale
	}
	if plot.IsOwnedBy(buyerID) {
		return nil, domainerrors.ErrPlotAlreadyOwned.WithDetails("你已經擁有這塊地")
	}

	var sellerID uuid.UUID
	var price int
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		plots := repoFactory.NewLandRepository()
		profiles := repoFactory.NewProfileRepository()

		locked, findErr := findPlot(ctx, plots.FindByIDForUpdate, plotID)
		if findErr != nil {
			return findErr
		}
		if !locked.IsForSale || locked.ResalePrice == nil || !locked.IsOwned() {
			return domainerrors.ErrPlotNotForSale
		}
		if locked.IsOwnedBy(buyerID) {
			return domainerrors.ErrPlotAlreadyOwned.WithDetails("你已經擁有這塊地")
		}
		sellerID = *locked.OwnerID
		price = *locked.ResalePrice

		if debitErr := profiles.Debit(ctx, buyerID, price); debitErr != nil {
			if errors.Is(debitErr, repository.ErrInsufficientCoins) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(debitErr, "failed to debit buyer")
		}
		if creditErr := profiles.Credit(ctx, sellerID, price); creditErr != nil {
			return errors.Wrap(creditErr, "failed to credit seller")
		}
		if moveErr := plots.TransferOwnership(ctx, plotID, sellerID, buyerID); moveErr != nil {
			if errors.Is(moveErr, repository.ErrPlotOwnershipChanged) {
				return domainerrors.ErrPlotNotForSale
			}

			return errors.Wrap(moveErr, "failed to transfer plot")
		}
		plot = locked

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to purchase resale plot")
	}

	srv.log(ctx).Info("Plot resold",
		slog.String("plotID", plotID.String()),
		slog.String("sellerID", sellerID.String()),
		slog.String("buyerID", buyerID.String()),
		slog.Int("price", price))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:         entity.EventLandResale,
		UserID:       buyerID,
		Counterparty: &sellerID,
		SubjectID:    &plotID,
		Amount:       -price,
	})
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:         entity.EventLandResale,
		UserID:       sellerID,
		Counterparty: &buyerID,
		SubjectID:    &plotID,
		Amount:       price,
	})

	plot.OwnerID = &buyerID
	plot.IsForSale = false
	plot.ResalePrice = nil

	return plot, nil
}
