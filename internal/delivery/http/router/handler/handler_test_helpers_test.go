package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"plaza/config"
	deliveryhttp "plaza/internal/delivery/http"
	"plaza/internal/delivery/http/flash"
	"plaza/internal/delivery/http/middleware"
	"plaza/internal/delivery/http/router"
	"plaza/internal/delivery/http/router/handler"
	"plaza/internal/delivery/http/session"
	"plaza/internal/delivery/http/view"
	"plaza/internal/domain/entity"
	"plaza/internal/domain/service"
	"plaza/internal/infra/auth"
	"plaza/internal/infra/persistence/postgres"
	"plaza/internal/infra/qrcode"
	"plaza/internal/infra/storage"
	mockSvc "plaza/internal/mocks/service"
	"plaza/internal/testing/fixtures"
	"plaza/internal/testing/testdb"
	"plaza/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "Neon-City-2077"

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      bcrypt.MinCost,
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Economy: &config.EconomyConfig{
			Timezone:          "UTC",
			StartingCoins:     100,
			CheckinCoins:      10,
			CheckinExperience: 5,
			NodeReward:        5,
		},
		Media: &config.MediaConfig{
			MaxAvatarSize: 1 << 20,
		},
		Assistant: &config.AssistantConfig{
			Timeout: time.Second,
		},
		QRCode: &config.QRCodeConfig{
			Size: 128,
		},
	}
	cfg.HTTP.MaxRequestBodySize = "2M"
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	return cfg
}

// testApp is the whole HTTP stack over a private SQLite database.
type testApp struct {
	echo      *echo.Echo
	db        *gorm.DB
	fixtures  *fixtures.Factory
	media     service.MediaStorage
	generator *mockSvc.MockTextGenerator
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := newTestConfig()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tdb := testdb.New(t)
	db := tdb.DB

	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishEconomyEvent(mock.Anything, mock.Anything).Return(nil).Maybe()
	generator := mockSvc.NewMockTextGenerator(t)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	media := storage.NewBucketStorage(bucket, logger)

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	qr := qrcode.NewQRCodeService(cfg)

	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	landRepo := postgres.NewLandRepository(db)

	accounts := impl.NewAccountService(impl.AccountServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		AuthRepo:         postgres.NewAuthRepository(db),
		RefreshTokenRepo: postgres.NewRefreshTokenRepository(db),
		Hasher:           auth.NewBcryptHasher(cfg),
		TokenService:     tokens,
		Config:           cfg,
		Logger:           logger,
	})
	profiles := impl.NewProfileService(impl.ProfileServiceParams{
		UserRepo:    userRepo,
		ProfileRepo: postgres.NewProfileRepository(db),
		Media:       media,
		QRCode:      qr,
		Publisher:   publisher,
		Config:      cfg,
		Logger:      logger,
	})
	economy := impl.NewEconomyService(impl.EconomyServiceParams{
		TxManager:     txManager,
		UserRepo:      userRepo,
		ItemRepo:      postgres.NewItemRepository(db),
		InventoryRepo: postgres.NewInventoryRepository(db),
		QRCode:        qr,
		Publisher:     publisher,
		Logger:        logger,
	})
	land := impl.NewLandService(impl.LandServiceParams{
		TxManager: txManager,
		LandRepo:  landRepo,
		Publisher: publisher,
		Logger:    logger,
	})
	content := impl.NewContentService(impl.ContentServiceParams{
		TxManager: txManager,
		NodeRepo:  postgres.NewNodeRepository(db),
		Publisher: publisher,
		Config:    cfg,
		Logger:    logger,
	})
	assistant := impl.NewAssistantService(impl.AssistantServiceParams{
		UserRepo:  userRepo,
		Generator: generator,
		Config:    cfg,
		Logger:    logger,
	})

	renderer, err := view.New(cfg)
	require.NoError(t, err)
	cookies := session.NewCookies(cfg)
	pages := handler.NewPageResponder(handler.PageResponderParams{Flash: flash.NewStore(cfg), Config: cfg})

	routes := router.RouterParams{
		AccountHandler:   handler.NewAccountHandler(handler.AccountHandlerParams{Usecase: accounts, Cookies: cookies, Pages: pages}),
		PlazaHandler:     handler.NewPlazaHandler(handler.PlazaHandlerParams{Land: land, Pages: pages}),
		ProfileHandler:   handler.NewProfileHandler(handler.ProfileHandlerParams{Usecase: profiles, Pages: pages}),
		ContentHandler:   handler.NewContentHandler(handler.ContentHandlerParams{Usecase: content, Pages: pages, Config: cfg}),
		EconomyHandler:   handler.NewEconomyHandler(handler.EconomyHandlerParams{Usecase: economy, Pages: pages}),
		LandHandler:      handler.NewLandHandler(handler.LandHandlerParams{Usecase: land, Pages: pages}),
		AssistantHandler: handler.NewAssistantHandler(handler.AssistantHandlerParams{Usecase: assistant, Pages: pages}),
		MediaHandler:     handler.NewMediaHandler(media),
		AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{
			Accounts: accounts,
			Cookies:  cookies,
			Logger:   logger,
		}),
	}

	e := deliveryhttp.NewEcho(deliveryhttp.ServerParams{
		Cfg:             cfg,
		Logger:          logger,
		Renderer:        renderer,
		ErrorMiddleware: middleware.NewErrorMiddleware(logger),
		RouterParams:    routes,
	})

	return &testApp{
		echo:      e,
		db:        db,
		fixtures:  fixtures.New(db),
		media:     media,
		generator: generator,
	}
}

// browser keeps cookies between requests the way a real one would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (app *testApp) newBrowser() *browser {
	return &browser{app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	b.app.echo.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(b.cookies, cookie.Name)
			continue
		}
		b.cookies[cookie.Name] = cookie
	}

	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// httptestForm builds an empty form POST without any CSRF proof.
func httptestForm(path string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return req
}

// postForm submits a same-origin form, which the CSRF middleware accepts by Sec-Fetch-Site.
func (b *browser) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	return b.do(req)
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Sec-Fetch-Site", "same-origin")

	return b.do(req)
}

// follow loads the redirect target so the flash cookie is rendered.
func (b *browser) follow(t *testing.T, rec *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	t.Helper()

	require.Equal(t, http.StatusSeeOther, rec.Code)

	return b.get(rec.Header().Get(echo.HeaderLocation))
}

// signUp registers and logs in a fresh resident, returning the browser and the stored user.
func (app *testApp) signUp(t *testing.T, username string) (*browser, *entity.User) {
	t.Helper()

	b := app.newBrowser()
	rec := b.postForm("/register", url.Values{
		"username":         {username},
		"password":         {testPassword},
		"password_confirm": {testPassword},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	rec = b.postForm("/login", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, b.cookies, session.AccessCookieName)

	user, err := postgres.NewUserRepository(app.db).FindByUsername(context.Background(), username)
	require.NoError(t, err)

	return b, user
}
