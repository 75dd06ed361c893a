package handler

import (
	"net/http"

	"plaza/internal/delivery/http/response"
	domainerrors "plaza/internal/domain/errors"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type chatRequest struct {
	Message string `json:"message"`
}

// AssistantHandler serves the chat page and its JSON endpoint.
type AssistantHandler struct {
	uc    usecase.AssistantUsecase
	pages *PageResponder
}

type AssistantHandlerParams struct {
	fx.In

	Usecase usecase.AssistantUsecase
	Pages   *PageResponder
}

func NewAssistantHandler(params AssistantHandlerParams) *AssistantHandler {
	return &AssistantHandler{
		uc:    params.Usecase,
		pages: params.Pages,
	}
}

func (h *AssistantHandler) Page(c echo.Context) error {
	return h.pages.Render(c, http.StatusOK, "assistant", "廣場助手", nil)
}

// Chat relays one message. Remote failures still answer 200 with an in-character reply.
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_JSON", "無效的請求格式")
	}

	reply, err := h.uc.Chat(c.Request().Context(), currentUser(c).ID, req.Message)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
			message := appErr.Message()
			if details := appErr.Details(); details != "" {
				message = details
			}

			return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), message)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.ChatBody{Response: reply})
}
