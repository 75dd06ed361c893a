package handler_test

import (
	"net/http"
	"testing"

	"plaza/internal/testing/fixtures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlazaHandler_AnonymousVisitor(t *testing.T) {
	app := newTestApp(t)
	plot := app.fixtures.CreatePlot(t, fixtures.WithPrice(60))

	rec := app.newBrowser().get("/")
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, "歡迎來到賽博廣場")
	assert.Contains(t, page, plot.Name)
	assert.Contains(t, page, "系統")
	assert.NotContains(t, page, `action="/buy-land"`)
}

func TestPlazaHandler_ResidentSeesBalanceAndLandForms(t *testing.T) {
	app := newTestApp(t)
	seller := app.fixtures.CreateUser(t)
	app.fixtures.CreatePlot(t)
	app.fixtures.CreatePlot(t, fixtures.WithOwner(seller.ID), fixtures.WithResale(80))
	b, _ := app.signUp(t, "switch")

	page := b.get("/").Body.String()
	assert.Contains(t, page, "歡迎回來，switch")
	assert.Contains(t, page, "金幣：100")
	assert.Contains(t, page, `action="/buy-land"`)
	assert.Contains(t, page, `action="/land/buy-resale"`)
	assert.Contains(t, page, "轉售 80")
	assert.Contains(t, page, `action="/checkin"`)

	b.follow(t, b.postForm("/checkin", nil))

	page = b.get("/").Body.String()
	assert.Contains(t, page, "今天已經簽到過了")
	assert.NotContains(t, page, `action="/checkin"`)
}
