package impl

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"plaza/config"
	"plaza/internal/domain/repository"
	"plaza/internal/infra/persistence/postgres"
	mockSvc "plaza/internal/mocks/service"
	"plaza/internal/testing/fixtures"
	"plaza/internal/testing/testdb"

	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
		},
		Economy: &config.EconomyConfig{
			Timezone:          "UTC",
			StartingCoins:     100,
			CheckinCoins:      10,
			CheckinExperience: 5,
			NodeReward:        5,
		},
		Media: &config.MediaConfig{
			MaxAvatarSize: 1024,
		},
		Assistant: &config.AssistantConfig{
			Timeout: time.Second,
		},
	}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	return cfg
}

// serviceEnv bundles a migrated database with the collaborators every service needs.
type serviceEnv struct {
	db        *gorm.DB
	fixtures  *fixtures.Factory
	txManager repository.TransactionManager
	publisher *mockSvc.MockEventPublisher
	config    *config.Config
	logger    *slog.Logger
}

func newServiceEnv(t *testing.T) *serviceEnv {
	t.Helper()

	tdb := testdb.New(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	publisher.EXPECT().PublishEconomyEvent(mock.Anything, mock.Anything).Return(nil).Maybe()

	return &serviceEnv{
		db:        tdb.DB,
		fixtures:  fixtures.New(tdb.DB),
		txManager: postgres.NewTransactionManager(tdb.DB),
		publisher: publisher,
		config:    newTestConfig(),
		logger:    newDiscardLogger(),
	}
}

// strictPublisher replaces the permissive default so a test can assert emitted events.
func (env *serviceEnv) strictPublisher(t *testing.T) *mockSvc.MockEventPublisher {
	env.publisher = mockSvc.NewMockEventPublisher(t)

	return env.publisher
}
