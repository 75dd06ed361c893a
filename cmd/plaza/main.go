package main

import (
	"context"
	"log/slog"
	"os"

	"plaza/config"
	"plaza/internal/delivery"
	"plaza/internal/delivery/http"
	"plaza/internal/delivery/http/flash"
	"plaza/internal/delivery/http/middleware"
	"plaza/internal/delivery/http/router/handler"
	"plaza/internal/delivery/http/session"
	"plaza/internal/delivery/http/view"
	"plaza/internal/infra/assistant"
	"plaza/internal/infra/auth"
	logs "plaza/internal/infra/log"
	"plaza/internal/infra/persistence/postgres"
	"plaza/internal/infra/pubsub"
	"plaza/internal/infra/qrcode"
	"plaza/internal/infra/storage"
	"plaza/internal/usecase"
	"plaza/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedCatalog,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewProfileRepository,
			postgres.NewItemRepository,
			postgres.NewInventoryRepository,
			postgres.NewLandRepository,
			postgres.NewNodeRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			qrcode.NewQRCodeService,
		),
		pubsub.Module,
		storage.Module,
		assistant.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewProfileService,
			impl.NewEconomyService,
			impl.NewCatalogService,
			impl.NewLandService,
			impl.NewContentService,
			impl.NewAssistantService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			flash.NewStore,
			session.NewCookies,
			view.New,
			handler.NewPageResponder,
			handler.NewAccountHandler,
			handler.NewPlazaHandler,
			handler.NewProfileHandler,
			handler.NewContentHandler,
			handler.NewEconomyHandler,
			handler.NewLandHandler,
			handler.NewAssistantHandler,
			handler.NewMediaHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedCatalog fills the shop and the land map once the schema is migrated.
func seedCatalog(lc fx.Lifecycle, catalog usecase.CatalogUsecase) {
	lc.Append(fx.Hook{
		OnStart: catalog.Seed,
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
