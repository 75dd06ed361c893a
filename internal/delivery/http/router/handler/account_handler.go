package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"plaza/internal/delivery/http/flash"
	"plaza/internal/delivery/http/session"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type registerForm struct {
	Username        string `form:"username" validate:"required"`
	Password        string `form:"password" validate:"required"`
	PasswordConfirm string `form:"password_confirm" validate:"required"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type loginView struct {
	Next string
}

// AccountHandler serves registration, login and logout.
type AccountHandler struct {
	uc      usecase.AccountUsecase
	cookies *session.Cookies
	pages   *PageResponder
}

type AccountHandlerParams struct {
	fx.In

	Usecase usecase.AccountUsecase
	Cookies *session.Cookies
	Pages   *PageResponder
}

func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		uc:      params.Usecase,
		cookies: params.Cookies,
		pages:   params.Pages,
	}
}

func (h *AccountHandler) ShowRegister(c echo.Context) error {
	if currentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return h.pages.Render(c, http.StatusOK, "register", "註冊", nil)
}

// Register creates the account and sends the user to the login page.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, "/register", flash.LevelError, "無效的註冊資料")
	}
	if err := c.Validate(&form); err != nil {
		return h.pages.Redirect(c, "/register", flash.LevelError, "請填寫帳號與兩次密碼")
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username:        form.Username,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
	})
	if err != nil {
		return h.pages.Fail(c, err, "/register")
	}

	log(c).Info("Account registered", slog.String("user_id", output.User.ID.String()))

	return h.pages.Redirect(c, "/login", flash.LevelSuccess, "註冊成功，請登入")
}

func (h *AccountHandler) ShowLogin(c echo.Context) error {
	next := localPath(c.QueryParam("next"), "")
	if currentUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, localPath(next, "/"))
	}

	return h.pages.Render(c, http.StatusOK, "login", "登入", loginView{Next: next})
}

// Login issues the session cookies and follows a local next target.
func (h *AccountHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, "/login", flash.LevelError, "無效的登入資料")
	}

	next := localPath(form.Next, "")
	retry := "/login"
	if next != "" {
		retry += "?next=" + url.QueryEscape(next)
	}

	if err := c.Validate(&form); err != nil {
		return h.pages.Redirect(c, retry, flash.LevelError, "請輸入帳號與密碼")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return h.pages.Fail(c, err, retry)
	}

	h.cookies.Set(c, output)

	return h.pages.Redirect(c, localPath(next, "/"), flash.LevelSuccess, "歡迎回到廣場，"+output.User.Profile.DisplayName(output.User.Username))
}

// Logout revokes the refresh token and clears the cookies.
func (h *AccountHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), h.cookies.RefreshToken(c)); err != nil {
		return errors.WithStack(err)
	}

	h.cookies.Clear(c)

	return h.pages.Redirect(c, "/login", flash.LevelInfo, "已登出")
}
