package impl

import (
	"context"
	"log/slog"
	"strings"

	"plaza/config"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/repository"
	"plaza/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService seeds configured items and plots.
type catalogService struct {
	itemRepo repository.ItemRepository
	landRepo repository.LandRepository
	catalog  *config.CatalogConfig
	logger   *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ItemRepo repository.ItemRepository
	LandRepo repository.LandRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	catalog := &config.CatalogConfig{}
	if params.Config != nil && params.Config.Catalog != nil {
		catalog = params.Config.Catalog
	}

	return &catalogService{
		itemRepo: params.ItemRepo,
		landRepo: params.LandRepo,
		catalog:  catalog,
		logger:   params.Logger,
	}
}

func (srv *catalogService) Seed(ctx context.Context) error {
	for _, cfgItem := range srv.catalog.Items {
		category := entity.ItemCategory(strings.ToLower(cfgItem.Category))
		if !category.IsValid() {
			return errors.Errorf("catalog item %q has unknown category %q", cfgItem.Name, cfgItem.Category)
		}
		if cfgItem.Price < 0 {
			return errors.Errorf("catalog item %q has negative price", cfgItem.Name)
		}

		item := &entity.Item{
			Name:        cfgItem.Name,
			Description: cfgItem.Description,
			Price:       cfgItem.Price,
			ImageKey:    cfgItem.ImageKey,
			EffectValue: cfgItem.EffectValue,
			Category:    category,
		}
		if err := srv.itemRepo.UpsertByName(ctx, item); err != nil {
			return errors.Wrapf(err, "failed to seed item %q", cfgItem.Name)
		}
	}

	for _, cfgPlot := range srv.catalog.Plots {
		building := entity.BuildingType(strings.ToLower(cfgPlot.BuildingType))
		if building == "" {
			building = entity.BuildingNone
		}
		if !building.IsValid() {
			return errors.Errorf("catalog plot %q has unknown building type %q", cfgPlot.Name, cfgPlot.BuildingType)
		}

		plot := &entity.LandPlot{
			Name:         cfgPlot.Name,
			X:            cfgPlot.X,
			Y:            cfgPlot.Y,
			Price:        cfgPlot.Price,
			BuildingType: building,
		}
		if err := srv.landRepo.UpsertByName(ctx, plot); err != nil {
			return errors.Wrapf(err, "failed to seed plot %q", cfgPlot.Name)
		}
	}

	srv.logger.Info("Catalog seeded",
		slog.Int("items", len(srv.catalog.Items)),
		slog.Int("plots", len(srv.catalog.Plots)))

	return nil
}
