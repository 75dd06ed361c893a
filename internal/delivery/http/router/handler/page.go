// Package handler contains the HTTP handlers for the plaza.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"plaza/config"
	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/delivery/http/flash"
	"plaza/internal/delivery/http/view"
	"plaza/internal/domain/entity"
	domainerrors "plaza/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PageResponder renders pages and turns domain failures into flash redirects.
type PageResponder struct {
	flash    *flash.Store
	location *time.Location
}

type PageResponderParams struct {
	fx.In

	Flash  *flash.Store
	Config *config.Config
}

func NewPageResponder(params PageResponderParams) *PageResponder {
	return &PageResponder{
		flash:    params.Flash,
		location: params.Config.Economy.Location(),
	}
}

// Render renders a full page with the pending flash messages.
func (p *PageResponder) Render(c echo.Context, code int, name, title string, data any) error {
	page := view.NewPage(c, title, data)
	page.Flashes = p.flash.Pop(c)

	return errors.WithStack(c.Render(code, name, page))
}

// Redirect queues a flash message and redirects with 303.
func (p *PageResponder) Redirect(c echo.Context, target string, level flash.Level, message string) error {
	if message != "" {
		p.flash.Add(c, level, message)
	}

	return c.Redirect(http.StatusSeeOther, target)
}

// Fail reports a user-facing domain error as a flash message and redirects to target.
// Anything else is returned for the central error handler.
func (p *PageResponder) Fail(c echo.Context, err error, target string) error {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode() >= http.StatusInternalServerError {
		return errors.WithStack(err)
	}

	level := flash.LevelError
	if domainerrors.IsBusinessRule(err) {
		level = flash.LevelWarning
	}

	message := appErr.Message()
	if details := appErr.Details(); details != "" {
		message += "：" + details
	}

	log(c).Debug("Request rejected",
		slog.String("code", appErr.ErrorCode()),
		slog.String("message", message),
	)

	return p.Redirect(c, target, level, message)
}

// Today is the current calendar day of the economy.
func (p *PageResponder) Today() time.Time {
	return time.Now().In(p.location)
}

// currentUser returns the authenticated user. Routes behind RequireLogin always have one.
func currentUser(c echo.Context) *entity.User {
	return deliverycontext.GetUser(c)
}

// backOr returns the local part of the Referer, or fallback when it is missing or foreign.
func backOr(c echo.Context, fallback string) string {
	referer := c.Request().Referer()
	if referer == "" {
		return fallback
	}

	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != c.Request().Host) {
		return fallback
	}

	return localPath(u.RequestURI(), fallback)
}

// localPath accepts only same-site absolute paths, guarding against open redirects.
func localPath(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}

	return target
}

func log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), slog.Default())
}
