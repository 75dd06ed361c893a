package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON error shape of every JSON endpoint.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // Business error code, e.g. "VALIDATION_FAILED"
}

// ChatBody is the reply of the assistant endpoint.
type ChatBody struct {
	Response string `json:"response"`
}

// Success writes data as JSON.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Error writes an error payload.
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{Error: message, Code: errorCode})
}

// BadRequest 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message)
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusUnauthorized, errorCode, message)
}

// NotFound 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message)
}

// InternalServerError 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}
