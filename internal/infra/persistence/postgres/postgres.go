package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"plaza/config"
	"plaza/internal/domain/lifecycle"

	"github.com/pkg/errors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolSampleInterval = 5 * time.Second
	poolWaitWarnAfter  = 50 * time.Millisecond
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the plaza database through go-lib, which also wires read replicas.
// The connection is verified, and the schema migrated when autoMigrate is set, on fx start.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open postgres")
	}

	// Multi-step economy writes use TransactionManager, so single statements skip gorm's implicit tx.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})
	db.Config.TranslateError = true

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to unwrap postgres pool")
	}

	params.Append(lifecycleHook(db, sqlDB, params.Config.AutoMigrate, params.Logger))

	return db, nil
}

func lifecycleHook(db *gorm.DB, sqlDB *sql.DB, autoMigrate bool, logger *slog.Logger) fx.Hook {
	sampleCtx, stopSampling := context.WithCancel(context.Background())

	return fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "postgres is unreachable")
			}
			if autoMigrate {
				if err := Migrate(ctx, db); err != nil {
					return err
				}
			}

			stats := sqlDB.Stats()
			logger.Info("Postgres ready",
				slog.Bool("auto_migrate", autoMigrate),
				slog.Int("max_open_conns", stats.MaxOpenConnections),
			)
			go monitorDBPool(sampleCtx, logger, sqlDB, poolSampleInterval)

			return nil
		},
		OnStop: func(context.Context) error {
			stopSampling()

			return errors.WithStack(sqlDB.Close())
		},
	}
}

// monitorDBPool samples pool stats every interval until ctx is cancelled.
func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			if level, attrs, waited := poolWaitReport(prev, cur); waited {
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWaitReport compares two pool snapshots. Requests that queued for a connection
// in between are reported, at warn level once the added wait reaches the threshold.
func poolWaitReport(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waitDelta := cur.WaitCount - prev.WaitCount
	if waitDelta <= 0 {
		return slog.LevelDebug, nil, false
	}

	waitDurationDelta := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waits", waitDelta),
		slog.Duration("waited", waitDurationDelta),
		slog.Duration("avg_wait", waitDurationDelta/time.Duration(waitDelta)),
		slog.Int("max_open", cur.MaxOpenConnections),
		slog.Int("open", cur.OpenConnections),
		slog.Int("in_use", cur.InUse),
		slog.Int("idle", cur.Idle),
	}

	level := slog.LevelDebug
	if waitDurationDelta >= poolWaitWarnAfter {
		level = slog.LevelWarn
	}

	return level, attrs, true
}
