package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	deliverycontext "plaza/internal/delivery/context"
	"plaza/internal/delivery/http/response"
	"plaza/internal/delivery/http/view"
	domainerrors "plaza/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type errorView struct {
	Status  int
	Message string
}

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler.
// JSON endpoints get {"error": ...}; pages get the error page.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		m.log(c).Warn("Error after response was committed", slog.Any("error", err))

		return
	}

	status, code, message := m.classify(err, c)

	if status == http.StatusUnauthorized && !wantsJSON(c) {
		_ = c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request().URL.RequestURI()))

		return
	}

	if wantsJSON(c) {
		_ = response.Error(c, status, code, message)

		return
	}

	page := view.NewPage(c, http.StatusText(status), errorView{Status: status, Message: message})
	if renderErr := c.Render(status, "error", page); renderErr != nil {
		m.log(c).Error("Failed to render error page", slog.Any("error", renderErr))
		_ = c.String(status, message)
	}
}

// classify maps err to a status, a business code and a message safe to show.
func (m *ErrorMiddleware) classify(err error, c echo.Context) (int, string, string) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}

		return httpErr.Code, "HTTP_ERROR", message
	}

	// Default to internal error, log the error but do not expose internal details
	m.log(c).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	return http.StatusInternalServerError, "INTERNAL_ERROR", "系統發生錯誤，請稍後再試"
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

// wantsJSON reports whether the caller is a script rather than a browser page.
func wantsJSON(c echo.Context) bool {
	req := c.Request()
	switch req.URL.Path {
	case "/ai-chat", "/world/tree", "/health":
		return true
	}
	if strings.HasPrefix(req.URL.Path, "/media/") {
		return true
	}

	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
