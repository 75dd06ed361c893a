// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"plaza/internal/delivery/http/middleware"
	"plaza/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler   *handler.AccountHandler
	PlazaHandler     *handler.PlazaHandler
	ProfileHandler   *handler.ProfileHandler
	ContentHandler   *handler.ContentHandler
	EconomyHandler   *handler.EconomyHandler
	LandHandler      *handler.LandHandler
	AssistantHandler *handler.AssistantHandler
	MediaHandler     *handler.MediaHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up every page and JSON endpoint of the plaza.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params
	requireLogin := p.AuthMiddleware.RequireLogin

	e.GET("/health", handler.HealthCheck)
	e.GET("/media/*", p.MediaHandler.Serve)

	// Public pages
	e.GET("/", p.PlazaHandler.Index)
	e.GET("/register", p.AccountHandler.ShowRegister)
	e.POST("/register", p.AccountHandler.Register)
	e.GET("/login", p.AccountHandler.ShowLogin)
	e.POST("/login", p.AccountHandler.Login)
	e.POST("/logout", p.AccountHandler.Logout)
	e.GET("/world", p.ContentHandler.World)
	e.GET("/world/tree", p.ContentHandler.Tree)
	e.GET("/node/:id", p.ContentHandler.Detail)

	// Pages for logged in residents
	e.GET("/profile", p.ProfileHandler.Show, requireLogin)
	e.POST("/profile", p.ProfileHandler.Update, requireLogin)
	e.GET("/profile/tip-qr", p.ProfileHandler.TipQR, requireLogin)
	e.POST("/checkin", p.ProfileHandler.Checkin, requireLogin)

	e.GET("/node/create", p.ContentHandler.ShowCreate, requireLogin)
	e.POST("/node/create", p.ContentHandler.Create, requireLogin)

	e.GET("/shop", p.EconomyHandler.Shop, requireLogin)
	e.POST("/shop", p.EconomyHandler.Purchase, requireLogin)
	e.GET("/backpack", p.EconomyHandler.Backpack, requireLogin)
	e.POST("/transfer", p.EconomyHandler.Transfer, requireLogin)

	e.POST("/buy-land", p.LandHandler.BuyLand, requireLogin)
	e.POST("/land/list", p.LandHandler.ListPlot, requireLogin)
	e.POST("/land/unlist", p.LandHandler.UnlistPlot, requireLogin)
	e.POST("/land/buy-resale", p.LandHandler.BuyResale, requireLogin)

	e.GET("/ai-assistant", p.AssistantHandler.Page, requireLogin)

	e.POST("/ai-chat", p.AssistantHandler.Chat, p.AuthMiddleware.RequireLoginJSON)
}
