package handler

import (
	"net/http"

	"plaza/internal/domain/entity"
	"plaza/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type plazaView struct {
	Plots          []*entity.LandPlot
	CheckedInToday bool
}

// PlazaHandler serves the landing page.
type PlazaHandler struct {
	land  usecase.LandUsecase
	pages *PageResponder
}

type PlazaHandlerParams struct {
	fx.In

	Land  usecase.LandUsecase
	Pages *PageResponder
}

func NewPlazaHandler(params PlazaHandlerParams) *PlazaHandler {
	return &PlazaHandler{
		land:  params.Land,
		pages: params.Pages,
	}
}

// Index shows the greeting, the balance and every land plot.
func (h *PlazaHandler) Index(c echo.Context) error {
	plots, err := h.land.ListPlots(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	data := plazaView{Plots: plots}
	if user := currentUser(c); user != nil {
		data.CheckedInToday = user.Profile.CheckedInOn(h.pages.Today())
	}

	return h.pages.Render(c, http.StatusOK, "plaza", "廣場", data)
}
