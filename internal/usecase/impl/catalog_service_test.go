package impl

import (
	"context"
	"testing"

	"plaza/config"
	"plaza/internal/domain/entity"
	"plaza/internal/infra/persistence/model"
	"plaza/internal/infra/persistence/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_SeedIsIdempotent(t *testing.T) {
	env := newServiceEnv(t)
	env.config.Catalog = &config.CatalogConfig{
		Items: []config.CatalogItem{
			{Name: "能量飲料", Price: 15, Category: "food", EffectValue: 10},
			{Name: "光學迷彩", Price: 300, Category: "Armor"},
		},
		Plots: []config.CatalogPlot{
			{Name: "霓虹街區 A-1", X: 10, Y: 10, Price: 500},
			{Name: "天際塔 T-1", X: 50, Y: 50, Price: 5000, BuildingType: "tower"},
		},
	}
	srv := NewCatalogService(CatalogServiceParams{
		ItemRepo: postgres.NewItemRepository(env.db),
		LandRepo: postgres.NewLandRepository(env.db),
		Config:   env.config,
		Logger:   env.logger,
	})
	ctx := context.Background()

	require.NoError(t, srv.Seed(ctx))

	// A purchase in between must survive re-seeding.
	var plot model.LandPlotModel
	require.NoError(t, env.db.Where("name = ?", "霓虹街區 A-1").First(&plot).Error)
	owner := env.fixtures.CreateUser(t)
	require.NoError(t, postgres.NewLandRepository(env.db).AssignOwner(ctx, plot.ID, owner.ID))

	env.config.Catalog.Items[0].Price = 20
	require.NoError(t, srv.Seed(ctx))

	var items []model.ItemModel
	require.NoError(t, env.db.Order("price").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, 20, items[0].Price)
	assert.Equal(t, string(entity.ItemCategoryArmor), items[1].Category)

	var plots []model.LandPlotModel
	require.NoError(t, env.db.Order("price").Find(&plots).Error)
	require.Len(t, plots, 2)
	assert.Equal(t, string(entity.BuildingNone), plots[0].BuildingType)
	assert.Equal(t, string(entity.BuildingTower), plots[1].BuildingType)
	assert.Equal(t, owner.ID, *env.fixtures.Plot(t, plot.ID).OwnerID)
}

func TestCatalogService_SeedRejectsUnknownCategory(t *testing.T) {
	env := newServiceEnv(t)
	env.config.Catalog = &config.CatalogConfig{
		Items: []config.CatalogItem{{Name: "神秘物品", Price: 1, Category: "relic"}},
	}
	srv := NewCatalogService(CatalogServiceParams{
		ItemRepo: postgres.NewItemRepository(env.db),
		LandRepo: postgres.NewLandRepository(env.db),
		Config:   env.config,
		Logger:   env.logger,
	})

	err := srv.Seed(context.Background())

	assert.ErrorContains(t, err, "relic")
}

