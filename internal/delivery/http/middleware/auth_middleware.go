package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/delivery/http/response"
	"plaza/internal/delivery/http/session"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddleware resolves the session cookies to a user.
type AuthMiddleware struct {
	accounts usecase.AccountUsecase
	cookies  *session.Cookies
	logger   *slog.Logger
}

type AuthMiddlewareParams struct {
	fx.In

	Accounts usecase.AccountUsecase
	Cookies  *session.Cookies
	Logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		accounts: params.Accounts,
		cookies:  params.Cookies,
		logger:   params.Logger,
	}
}

// Identify attaches the user of a valid session, rotating an expired access token
// through the refresh cookie. Anonymous requests pass through untouched.
func (m *AuthMiddleware) Identify(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessToken := m.cookies.AccessToken(c)
		refreshToken := m.cookies.RefreshToken(c)
		if accessToken == "" && refreshToken == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		logger := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

		if accessToken != "" {
			user, err := m.accounts.Authenticate(ctx, accessToken)
			if err == nil {
				deliverycontext.SetUser(c, user)

				return next(c)
			}
		}

		if refreshToken == "" {
			m.cookies.Clear(c)

			return next(c)
		}

		session, err := m.accounts.Refresh(ctx, refreshToken)
		if err != nil {
			logger.Debug("Session refresh rejected", slog.Any("error", err))
			m.cookies.Clear(c)

			return next(c)
		}

		m.cookies.Set(c, session)
		deliverycontext.SetUser(c, session.User)
		logger.Debug("Session refreshed", slog.String("user_id", session.User.ID.String()))

		return next(c)
	}
}

// RequireLogin redirects anonymous page requests to the login form.
func (m *AuthMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetUser(c) == nil {
			target := c.Request().URL.RequestURI()
			if c.Request().Method != http.MethodGet {
				target = "/"
			}

			return c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(target))
		}

		return next(c)
	}
}

// RequireLoginJSON answers 401 for anonymous API requests.
func (m *AuthMiddleware) RequireLoginJSON(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if deliverycontext.GetUser(c) == nil {
			return response.Unauthorized(c, "UNAUTHORIZED", "請先登入")
		}

		return next(c)
	}
}
