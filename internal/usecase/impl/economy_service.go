package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

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

// economyService implements the EconomyUsecase interface.
type economyService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	itemRepo      repository.ItemRepository
	inventoryRepo repository.InventoryRepository
	qrCode        service.QRCodeService
	publisher     service.EventPublisher
	logger        *slog.Logger
}

// EconomyServiceParams holds dependencies for EconomyService, injected by Fx.
type EconomyServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	ItemRepo      repository.ItemRepository
	InventoryRepo repository.InventoryRepository
	QRCode        service.QRCodeService
	Publisher     service.EventPublisher
	Logger        *slog.Logger
}

// NewEconomyService creates a new economy service
func NewEconomyService(params EconomyServiceParams) usecase.EconomyUsecase {
	return &economyService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		itemRepo:      params.ItemRepo,
		inventoryRepo: params.InventoryRepo,
		qrCode:        params.QRCode,
		publisher:     params.Publisher,
		logger:        params.Logger,
	}
}

func (srv *economyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// knownCategory drops unknown filter values so they list everything.
func knownCategory(category entity.ItemCategory) entity.ItemCategory {
	if category.IsValid() {
		return category
	}

	return ""
}

func (srv *economyService) ListItems(ctx context.Context, category entity.ItemCategory) ([]*entity.Item, error) {
	items, err := srv.itemRepo.List(ctx, knownCategory(category))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return items, nil
}

// PurchaseItem debits the price and adds one unit to the backpack in a single transaction.
func (srv *economyService) PurchaseItem(ctx context.Context, userID, itemID uuid.UUID) (*usecase.PurchaseOutput, error) {
	item, err := srv.itemRepo.FindByID(ctx, itemID)
	if errors.Is(err, repository.ErrItemNotFound) {
		return nil, domainerrors.ErrItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find item")
	}

	output := &usecase.PurchaseOutput{Item: item}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profiles := repoFactory.NewProfileRepository()
		inventory := repoFactory.NewInventoryRepository()

		if debitErr := profiles.Debit(ctx, userID, item.Price); debitErr != nil {
			if errors.Is(debitErr, repository.ErrInsufficientCoins) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(debitErr, "failed to debit buyer")
		}
		if incErr := inventory.Increment(ctx, userID, item.ID, 1); incErr != nil {
			return errors.Wrap(incErr, "failed to add item to inventory")
		}

		entry, findErr := inventory.FindByUserAndItem(ctx, userID, item.ID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to reload inventory entry")
		}
		profile, profileErr := profiles.FindByUserID(ctx, userID)
		if profileErr != nil {
			return errors.Wrap(profileErr, "failed to reload buyer profile")
		}

		output.Quantity = entry.Quantity
		output.Coins = profile.Coins

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to purchase item")
	}

	srv.log(ctx).Info("Item purchased",
		slog.String("userID", userID.String()),
		slog.String("itemID", item.ID.String()),
		slog.Int("price", item.Price))
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:      entity.EventItemPurchase,
		UserID:    userID,
		SubjectID: &item.ID,
		Amount:    -item.Price,
	})

	return output, nil
}

func (srv *economyService) ListInventory(ctx context.Context, userID uuid.UUID, category entity.ItemCategory) ([]*entity.InventoryEntry, error) {
	entries, err := srv.inventoryRepo.ListByUser(ctx, userID, knownCategory(category))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	return entries, nil
}

// parseAmount accepts only positive base-10 integers.
func parseAmount(raw string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || amount <= 0 {
		return 0, domainerrors.ErrInvalidAmount
	}

	return amount, nil
}

func (srv *economyService) resolveRecipient(input *usecase.TransferInput) (uuid.UUID, error) {
	if code := strings.TrimSpace(input.TipCode); code != "" {
		recipientID, err := srv.qrCode.ParseTipQR(code)
		if err != nil {
			return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("無效的打賞碼")
		}

		return recipientID, nil
	}

	recipientID, err := uuid.Parse(strings.TrimSpace(input.RecipientID))
	if err != nil {
		return uuid.Nil, domainerrors.ErrUserNotFound
	}

	return recipientID, nil
}

// Transfer moves coins from sender to recipient; the combined balance is unchanged.
func (srv *economyService) Transfer(ctx context.Context, input *usecase.TransferInput) (*usecase.TransferOutput, error) {
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	recipientID, err := srv.resolveRecipient(input)
	if err != nil {
		return nil, err
	}
	if recipientID == input.SenderID {
		return nil, domainerrors.ErrSelfTransfer
	}

	recipient, err := srv.userRepo.FindByID(ctx, recipientID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find recipient")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profiles := repoFactory.NewProfileRepository()

		if debitErr := profiles.Debit(ctx, input.SenderID, amount); debitErr != nil {
			if errors.Is(debitErr, repository.ErrInsufficientCoins) {
				return domainerrors.ErrInsufficientBalance
			}

			return errors.Wrap(debitErr, "failed to debit sender")
		}
		if creditErr := profiles.Credit(ctx, recipientID, amount); creditErr != nil {
			if errors.Is(creditErr, repository.ErrProfileNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(creditErr, "failed to credit recipient")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to transfer coins")
	}

	srv.log(ctx).Info("Coins transferred",
		slog.String("senderID", input.SenderID.String()),
		slog.String("recipientID", recipientID.String()),
		slog.Int("amount", amount))
	sender := input.SenderID
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:         entity.EventTransfer,
		UserID:       sender,
		Counterparty: &recipientID,
		Amount:       -amount,
	})
	publishEvent(ctx, srv.publisher, srv.log(ctx), &entity.EconomyEvent{
		Type:         entity.EventTransfer,
		UserID:       recipientID,
		Counterparty: &sender,
		Amount:       amount,
	})

	return &usecase.TransferOutput{Recipient: recipient, Amount: amount}, nil
}
