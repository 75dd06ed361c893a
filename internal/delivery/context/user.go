package context

import (
	"log/slog"

	"plaza/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyUser is the echo.Context key holding the authenticated *entity.User.
const KeyUser ContextKey = "user"

// SetUser stores the authenticated resident and tags the request logger with their id,
// so every later log line of the request names who triggered it.
func SetUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyUser), user)

	ctx := c.Request().Context()
	if logger := GetLogger(ctx); logger != nil {
		ctx = WithLogger(ctx, logger.With(slog.String("user_id", user.ID.String())))
		c.SetRequest(c.Request().WithContext(ctx))
	}
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyUser)).(*entity.User); ok {
		return user
	}

	return nil
}
