package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"plaza/internal/delivery/http/flash"
	"plaza/internal/domain/entity"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type purchaseForm struct {
	ItemID   string `form:"item_id" validate:"required"`
	Category string `form:"category"`
}

type transferForm struct {
	RecipientID string `form:"recipient_id"`
	TipCode     string `form:"tip_code"`
	Amount      string `form:"amount"`
}

type shopView struct {
	Items      []*entity.Item
	Categories []entity.ItemCategory
	Category   entity.ItemCategory
}

type backpackView struct {
	Entries    []*entity.InventoryEntry
	Categories []entity.ItemCategory
	Category   entity.ItemCategory
}

// EconomyHandler serves the shop, the backpack and tipping.
type EconomyHandler struct {
	uc    usecase.EconomyUsecase
	pages *PageResponder
}

type EconomyHandlerParams struct {
	fx.In

	Usecase usecase.EconomyUsecase
	Pages   *PageResponder
}

func NewEconomyHandler(params EconomyHandlerParams) *EconomyHandler {
	return &EconomyHandler{
		uc:    params.Usecase,
		pages: params.Pages,
	}
}

// Shop lists the catalog, filtered by the category query when it names a known category.
func (h *EconomyHandler) Shop(c echo.Context) error {
	category := categoryParam(c.QueryParam("category"))

	items, err := h.uc.ListItems(c.Request().Context(), category)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.pages.Render(c, http.StatusOK, "shop", "商店", shopView{
		Items:      items,
		Categories: entity.ItemCategories,
		Category:   category,
	})
}

// Purchase buys one unit of item_id.
func (h *EconomyHandler) Purchase(c echo.Context) error {
	var form purchaseForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, "/shop", flash.LevelError, "無效的購買資料")
	}

	target := "/shop"
	if category := categoryParam(form.Category); category != "" {
		target += "?category=" + url.QueryEscape(string(category))
	}

	if err := c.Validate(&form); err != nil {
		return h.pages.Redirect(c, target, flash.LevelError, "請選擇商品")
	}
	itemID, err := uuid.Parse(form.ItemID)
	if err != nil {
		return h.pages.Redirect(c, target, flash.LevelError, "找不到這個商品")
	}

	output, err := h.uc.PurchaseItem(c.Request().Context(), currentUser(c).ID, itemID)
	if err != nil {
		return h.pages.Fail(c, err, target)
	}

	return h.pages.Redirect(c, target, flash.LevelSuccess,
		fmt.Sprintf("購買了 %s，剩餘 %d 金幣", output.Item.Name, output.Coins))
}

func (h *EconomyHandler) Backpack(c echo.Context) error {
	category := categoryParam(c.QueryParam("category"))

	entries, err := h.uc.ListInventory(c.Request().Context(), currentUser(c).ID, category)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.pages.Render(c, http.StatusOK, "backpack", "背包", backpackView{
		Entries:    entries,
		Categories: entity.ItemCategories,
		Category:   category,
	})
}

// Transfer tips another resident by id or by scanned tip code.
func (h *EconomyHandler) Transfer(c echo.Context) error {
	target := backOr(c, "/profile")

	var form transferForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, target, flash.LevelError, "無效的打賞資料")
	}

	output, err := h.uc.Transfer(c.Request().Context(), &usecase.TransferInput{
		SenderID:    currentUser(c).ID,
		RecipientID: strings.TrimSpace(form.RecipientID),
		TipCode:     strings.TrimSpace(form.TipCode),
		Amount:      strings.TrimSpace(form.Amount),
	})
	if err != nil {
		return h.pages.Fail(c, err, target)
	}

	return h.pages.Redirect(c, target, flash.LevelSuccess,
		fmt.Sprintf("已打賞 %d 金幣給 %s", output.Amount, output.Recipient.Profile.DisplayName(output.Recipient.Username)))
}

// categoryParam drops unknown categories so the listing falls back to everything.
func categoryParam(raw string) entity.ItemCategory {
	category := entity.ItemCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !category.IsValid() {
		return ""
	}

	return category
}
