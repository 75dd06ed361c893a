package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"plaza/internal/delivery/http/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")

	assert.Equal(t, 100, user.Profile.Coins)
	assert.Contains(t, b.cookies, session.RefreshCookieName)

	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "歡迎回到廣場，neo_runner")
	assert.Contains(t, body, "金幣：100")
}

func TestAccountHandler_RegisterPasswordMismatch(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser()

	rec := b.postForm("/register", url.Values{
		"username":         {"neo_runner"},
		"password":         {testPassword},
		"password_confirm": {testPassword + "x"},
	})
	assert.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))

	page := b.follow(t, rec)
	assert.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), "兩次輸入的密碼不一致")
}

func TestAccountHandler_RegisterDuplicateUsername(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "neo_runner")

	b := app.newBrowser()
	rec := b.postForm("/register", url.Values{
		"username":         {"neo_runner"},
		"password":         {testPassword},
		"password_confirm": {testPassword},
	})
	assert.Equal(t, "/register", rec.Header().Get(echo.HeaderLocation))
	assert.Contains(t, b.follow(t, rec).Body.String(), "此使用者名稱已被註冊")
}

func TestAccountHandler_LoginWrongPasswordKeepsNext(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "neo_runner")

	b := app.newBrowser()
	rec := b.postForm("/login", url.Values{
		"username": {"neo_runner"},
		"password": {"wrong-password"},
		"next":     {"/shop"},
	})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fshop", rec.Header().Get(echo.HeaderLocation))
	assert.NotContains(t, b.cookies, session.AccessCookieName)
	assert.Contains(t, b.follow(t, rec).Body.String(), "使用者名稱或密碼錯誤")
}

func TestAccountHandler_LoginFollowsLocalNextOnly(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "neo_runner")

	b := app.newBrowser()
	rec := b.postForm("/login", url.Values{
		"username": {"neo_runner"},
		"password": {testPassword},
		"next":     {"//evil.example.com"},
	})
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	b = app.newBrowser()
	rec = b.postForm("/login", url.Values{
		"username": {"neo_runner"},
		"password": {testPassword},
		"next":     {"/backpack"},
	})
	assert.Equal(t, "/backpack", rec.Header().Get(echo.HeaderLocation))
}

func TestAccountHandler_Logout(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	rec := b.postForm("/logout", nil)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.NotContains(t, b.cookies, session.AccessCookieName)
	assert.NotContains(t, b.cookies, session.RefreshCookieName)

	rec = b.get("/profile")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fprofile", rec.Header().Get(echo.HeaderLocation))
}

func TestAccountHandler_RefreshCookieRestoresSession(t *testing.T) {
	app := newTestApp(t)
	b, _ := app.signUp(t, "neo_runner")

	oldRefresh := b.cookies[session.RefreshCookieName].Value
	delete(b.cookies, session.AccessCookieName)

	rec := b.get("/profile")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "neo_runner")
	require.Contains(t, b.cookies, session.AccessCookieName)
	assert.NotEqual(t, oldRefresh, b.cookies[session.RefreshCookieName].Value)
}

func TestAccountHandler_StaleRefreshCookieIsCleared(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser()
	b.cookies[session.AccessCookieName] = &http.Cookie{Name: session.AccessCookieName, Value: "garbage"}
	b.cookies[session.RefreshCookieName] = &http.Cookie{Name: session.RefreshCookieName, Value: "garbage"}

	rec := b.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, b.cookies, session.AccessCookieName)
	assert.NotContains(t, b.cookies, session.RefreshCookieName)
}

func TestRequireLogin_RedirectsAnonymousPages(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser()

	for _, path := range []string{"/profile", "/shop", "/backpack", "/node/create", "/ai-assistant"} {
		rec := b.get(path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login?next="+url.QueryEscape(path), rec.Header().Get(echo.HeaderLocation), path)
	}

	rec := b.postForm("/checkin", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2F", rec.Header().Get(echo.HeaderLocation))
}

func TestCSRF_RejectsCrossSiteForms(t *testing.T) {
	app := newTestApp(t)
	b, user := app.signUp(t, "neo_runner")

	req := httptestForm("/checkin")
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := b.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = b.do(httptestForm("/checkin"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 100, app.fixtures.Coins(t, user.ID))
}
