package handler

import (
	"fmt"
	"net/http"

	"plaza/internal/delivery/http/flash"
	"plaza/internal/domain/entity"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type profileForm struct {
	Nickname string `form:"nickname"`
	Bio      string `form:"bio"`
}

type profileView struct {
	Account        *entity.User
	CheckedInToday bool
}

// ProfileHandler serves the profile page, the daily check-in and the tip QR code.
type ProfileHandler struct {
	uc    usecase.ProfileUsecase
	pages *PageResponder
}

type ProfileHandlerParams struct {
	fx.In

	Usecase usecase.ProfileUsecase
	Pages   *PageResponder
}

func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		uc:    params.Usecase,
		pages: params.Pages,
	}
}

func (h *ProfileHandler) Show(c echo.Context) error {
	user, err := h.uc.GetProfile(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.pages.Render(c, http.StatusOK, "profile", "個人資料", profileView{
		Account:        user,
		CheckedInToday: user.Profile.CheckedInOn(h.pages.Today()),
	})
}

// Update saves nickname and bio, and the avatar when a file was attached.
func (h *ProfileHandler) Update(c echo.Context) error {
	var form profileForm
	if err := c.Bind(&form); err != nil {
		return h.pages.Redirect(c, "/profile", flash.LevelError, "無效的個人資料")
	}

	input := &usecase.UpdateProfileInput{
		UserID:   currentUser(c).ID,
		Nickname: form.Nickname,
		Bio:      form.Bio,
	}

	fileHeader, err := c.FormFile("avatar")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return h.pages.Redirect(c, "/profile", flash.LevelError, "頭像上傳失敗")
	case fileHeader.Size > 0:
		file, openErr := fileHeader.Open()
		if openErr != nil {
			return errors.Wrap(openErr, "failed to open avatar upload")
		}
		defer file.Close()

		input.Avatar = &usecase.AvatarUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get(echo.HeaderContentType),
			Size:        fileHeader.Size,
			Body:        file,
		}
	}

	if _, err := h.uc.UpdateProfile(c.Request().Context(), input); err != nil {
		return h.pages.Fail(c, err, "/profile")
	}

	return h.pages.Redirect(c, "/profile", flash.LevelSuccess, "個人資料已更新")
}

// Checkin claims the daily reward and returns to the referring page.
func (h *ProfileHandler) Checkin(c echo.Context) error {
	target := backOr(c, "/")

	output, err := h.uc.DailyCheckin(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return h.pages.Fail(c, err, target)
	}

	return h.pages.Redirect(c, target, flash.LevelSuccess,
		fmt.Sprintf("簽到成功！獲得 %d 金幣與 %d 經驗", output.CoinsGained, output.ExperienceGained))
}

// TipQR renders the caller's tip code as a PNG.
func (h *ProfileHandler) TipQR(c echo.Context) error {
	png, err := h.uc.TipQRCode(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}
