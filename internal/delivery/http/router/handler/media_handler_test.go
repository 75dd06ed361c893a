package handler_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"plaza/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaHandler_Serve(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.media.Save(context.Background(), "avatars/neo.png", "image/png", strings.NewReader("fake-png")))
	b := app.newBrowser()

	rec := b.get("/media/avatars/neo.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "public, max-age=86400", rec.Header().Get(echo.HeaderCacheControl))
	assert.Equal(t, "fake-png", rec.Body.String())

	// Dot segments are cleaned before the bucket lookup.
	rec = b.get("/media/avatars/../avatars/neo.png")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMediaHandler_Missing(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser()

	for _, path := range []string{"/media/avatars/ghost.png", "/media/"} {
		rec := b.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "MEDIA_NOT_FOUND", decodeJSON[response.ErrorBody](t, rec.Body.Bytes()).Code, path)
	}
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	rec := app.newBrowser().get("/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeJSON[map[string]string](t, rec.Body.Bytes())["status"])
}
