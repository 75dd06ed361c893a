package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"plaza/internal/domain/entity"
	"plaza/internal/testing/fixtures"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileHandler_CheckinOncePerDay(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")

	req := httptestForm("/checkin")
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Referer", "http://example.com/profile")
	rec := b.do(req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.follow(t, rec).Body.String(), "簽到成功！獲得 10 金幣與 5 經驗")

	profile := app.fixtures.Profile(t, user.ID)
	assert.Equal(t, 110, profile.Coins)
	assert.Equal(t, 5, profile.Experience)

	rec = b.postForm("/checkin", nil)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	page := b.follow(t, rec).Body.String()
	assert.Contains(t, page, `class="flash flash-warning"`)
	assert.Contains(t, page, "今天已經簽到過了")
	assert.Equal(t, 110, app.fixtures.Coins(t, user.ID))
}

func TestEconomyHandler_PurchaseAddsToBackpack(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")
	item := app.fixtures.CreateItem(t, 30, entity.ItemCategoryFood)

	rec := b.get("/shop?category=food")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), item.Name)

	rec = b.postForm("/shop", url.Values{"item_id": {item.ID.String()}, "category": {"food"}})
	assert.Equal(t, "/shop?category=food", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.follow(t, rec).Body.String(), "剩餘 70 金幣")

	b.postForm("/shop", url.Values{"item_id": {item.ID.String()}})
	assert.Equal(t, 40, app.fixtures.Coins(t, user.ID))
	assert.Equal(t, 2, app.fixtures.Quantity(t, user.ID, item.ID))

	rec = b.get("/backpack")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), item.Name)
}

func TestEconomyHandler_PurchaseRejected(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")
	pricey := app.fixtures.CreateItem(t, 500, entity.ItemCategoryEquipment)

	rec := b.postForm("/shop", url.Values{"item_id": {pricey.ID.String()}})
	assert.Equal(t, "/shop", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.follow(t, rec).Body.String(), "餘額不足")

	rec = b.postForm("/shop", url.Values{"item_id": {"not-a-uuid"}})
	assert.Contains(t, b.follow(t, rec).Body.String(), "找不到這個商品")

	assert.Equal(t, 100, app.fixtures.Coins(t, user.ID))
	assert.Equal(t, 0, app.fixtures.Quantity(t, user.ID, pricey.ID))
}

func TestEconomyHandler_Transfer(t *testing.T) {
	app := newTestApp(t)
	b, sender := app.signUp(t, "neo_runner")
	recipient := app.fixtures.CreateUser(t, fixtures.WithUsername("trinity"))

	rec := b.postForm("/transfer", url.Values{
		"recipient_id": {recipient.ID.String()},
		"amount":       {"25"},
	})
	assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.follow(t, rec).Body.String(), "已打賞 25 金幣給 trinity")
	assert.Equal(t, 75, app.fixtures.Coins(t, sender.ID))
	assert.Equal(t, 125, app.fixtures.Coins(t, recipient.ID))

	rec = b.postForm("/transfer", url.Values{
		"recipient_id": {recipient.ID.String()},
		"amount":       {"abc"},
	})
	assert.Contains(t, b.follow(t, rec).Body.String(), "請輸入有效的正整數金額")

	rec = b.postForm("/transfer", url.Values{
		"recipient_id": {sender.ID.String()},
		"amount":       {"5"},
	})
	assert.Contains(t, b.follow(t, rec).Body.String(), "不能打賞給自己")

	assert.Equal(t, 75, app.fixtures.Coins(t, sender.ID))
	assert.Equal(t, 125, app.fixtures.Coins(t, recipient.ID))
}

func TestLandHandler_BuyListAndResell(t *testing.T) {
	app := newTestApp(t)
	seller, sellerUser := app.signUp(t, "neo_runner")
	cheap := app.fixtures.CreatePlot(t, fixtures.WithPrice(60))

	rec := seller.postForm("/buy-land", url.Values{"plot_id": {cheap.ID.String()}})
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, seller.follow(t, rec).Body.String(), "恭喜！你買下了 "+cheap.Name)
	assert.Equal(t, 40, app.fixtures.Coins(t, sellerUser.ID))

	rec = seller.postForm("/land/list", url.Values{"plot_id": {cheap.ID.String()}, "price": {"80"}})
	assert.Contains(t, seller.follow(t, rec).Body.String(), "已以 80 金幣掛牌轉售")

	buyer, buyerUser := app.signUp(t, "trinity")
	rec = buyer.postForm("/land/buy-resale", url.Values{"plot_id": {cheap.ID.String()}})
	assert.Contains(t, buyer.follow(t, rec).Body.String(), "恭喜！你從其他居民手中買下了 "+cheap.Name)

	plot := app.fixtures.Plot(t, cheap.ID)
	require.NotNil(t, plot.OwnerID)
	assert.Equal(t, buyerUser.ID, *plot.OwnerID)
	assert.False(t, plot.IsForSale)
	assert.Equal(t, 20, app.fixtures.Coins(t, buyerUser.ID))
	assert.Equal(t, 120, app.fixtures.Coins(t, sellerUser.ID))
}

func TestLandHandler_Rejections(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")
	expensive := app.fixtures.CreatePlot(t)
	other := app.fixtures.CreateUser(t)
	taken := app.fixtures.CreatePlot(t, fixtures.WithPrice(10), fixtures.WithOwner(other.ID))

	rec := b.postForm("/buy-land", url.Values{"plot_id": {expensive.ID.String()}})
	page := b.follow(t, rec).Body.String()
	assert.Contains(t, page, `class="flash flash-warning"`)
	assert.Contains(t, page, "餘額不足")

	rec = b.postForm("/buy-land", url.Values{"plot_id": {taken.ID.String()}})
	assert.Contains(t, b.follow(t, rec).Body.String(), "這塊地已經有主人了")

	rec = b.postForm("/land/list", url.Values{"plot_id": {taken.ID.String()}, "price": {"10"}})
	assert.Contains(t, b.follow(t, rec).Body.String(), "你不是這塊地的主人")

	rec = b.postForm("/land/buy-resale", url.Values{"plot_id": {taken.ID.String()}})
	assert.Contains(t, b.follow(t, rec).Body.String(), "這塊地目前沒有出售")

	rec = b.postForm("/buy-land", url.Values{"plot_id": {"nope"}})
	assert.Contains(t, b.follow(t, rec).Body.String(), "找不到這塊土地")

	assert.Equal(t, 100, app.fixtures.Coins(t, user.ID))
	assert.Nil(t, app.fixtures.Plot(t, expensive.ID).OwnerID)
}

func TestProfileHandler_UpdateAndTipQR(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")

	rec := b.postForm("/profile", url.Values{"nickname": {"Neo"}, "bio": {"wakes up"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	page := b.follow(t, rec)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "wakes up")

	profile := app.fixtures.Profile(t, user.ID)
	assert.Equal(t, "Neo", profile.Nickname)

	rec = b.get("/profile/tip-qr")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])
}
