package handler

import (
	"net/http"
	"path"
	"strings"

	"plaza/internal/delivery/http/response"
	"plaza/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MediaHandler streams stored avatars and item images.
type MediaHandler struct {
	storage service.MediaStorage
}

func NewMediaHandler(storage service.MediaStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

func (h *MediaHandler) Serve(c echo.Context) error {
	key := strings.TrimPrefix(path.Clean("/"+c.Param("*")), "/")
	if key == "" {
		return response.NotFound(c, "MEDIA_NOT_FOUND", "檔案不存在")
	}

	obj, err := h.storage.Open(c.Request().Context(), key)
	if errors.Is(err, service.ErrMediaNotFound) {
		return response.NotFound(c, "MEDIA_NOT_FOUND", "檔案不存在")
	}
	if err != nil {
		return errors.WithStack(err)
	}
	defer obj.Body.Close()

	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")

	return c.Stream(http.StatusOK, contentType, obj.Body)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
