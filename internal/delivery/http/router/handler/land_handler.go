package handler

import (
	"fmt"

	"plaza/internal/delivery/http/flash"
	"plaza/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type plotForm struct {
	PlotID string `form:"plot_id" validate:"required"`
	Price  string `form:"price"`
}

// LandHandler serves plot purchases and the resale market. Every action returns to the plaza.
type LandHandler struct {
	uc    usecase.LandUsecase
	pages *PageResponder
}

type LandHandlerParams struct {
	fx.In

	Usecase usecase.LandUsecase
	Pages   *PageResponder
}

func NewLandHandler(params LandHandlerParams) *LandHandler {
	return &LandHandler{
		uc:    params.Usecase,
		pages: params.Pages,
	}
}

func (h *LandHandler) BuyLand(c echo.Context) error {
	_, plotID, ok := h.bindPlot(c)
	if !ok {
		return h.pages.Redirect(c, "/", flash.LevelError, "找不到這塊土地")
	}

	plot, err := h.uc.PurchasePlot(c.Request().Context(), currentUser(c).ID, plotID)
	if err != nil {
		return h.pages.Fail(c, err, "/")
	}

	return h.pages.Redirect(c, "/", flash.LevelSuccess, fmt.Sprintf("恭喜！你買下了 %s", plot.Name))
}

func (h *LandHandler) ListPlot(c echo.Context) error {
	form, plotID, ok := h.bindPlot(c)
	if !ok {
		return h.pages.Redirect(c, "/", flash.LevelError, "找不到這塊土地")
	}

	plot, err := h.uc.ListPlotForSale(c.Request().Context(), currentUser(c).ID, plotID, form.Price)
	if err != nil {
		return h.pages.Fail(c, err, "/")
	}

	return h.pages.Redirect(c, "/", flash.LevelSuccess, fmt.Sprintf("%s 已以 %d 金幣掛牌轉售", plot.Name, *plot.ResalePrice))
}

func (h *LandHandler) UnlistPlot(c echo.Context) error {
	_, plotID, ok := h.bindPlot(c)
	if !ok {
		return h.pages.Redirect(c, "/", flash.LevelError, "找不到這塊土地")
	}

	if err := h.uc.UnlistPlot(c.Request().Context(), currentUser(c).ID, plotID); err != nil {
		return h.pages.Fail(c, err, "/")
	}

	return h.pages.Redirect(c, "/", flash.LevelInfo, "已取消轉售")
}

func (h *LandHandler) BuyResale(c echo.Context) error {
	_, plotID, ok := h.bindPlot(c)
	if !ok {
		return h.pages.Redirect(c, "/", flash.LevelError, "找不到這塊土地")
	}

	plot, err := h.uc.PurchaseResalePlot(c.Request().Context(), currentUser(c).ID, plotID)
	if err != nil {
		return h.pages.Fail(c, err, "/")
	}

	return h.pages.Redirect(c, "/", flash.LevelSuccess, fmt.Sprintf("恭喜！你從其他居民手中買下了 %s", plot.Name))
}

func (h *LandHandler) bindPlot(c echo.Context) (*plotForm, uuid.UUID, bool) {
	var form plotForm
	if err := c.Bind(&form); err != nil {
		return nil, uuid.Nil, false
	}
	if err := c.Validate(&form); err != nil {
		return nil, uuid.Nil, false
	}

	plotID, err := uuid.Parse(form.PlotID)
	if err != nil {
		return nil, uuid.Nil, false
	}

	return &form, plotID, true
}
