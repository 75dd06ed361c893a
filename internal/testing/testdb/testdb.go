// Package testdb provides an isolated SQLite database with the full plaza schema.
//
// Each test gets its own file under t.TempDir(), so repositories, transactions and
// conditional updates run against a real SQL engine without external services.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := postgres.NewProfileRepository(tdb.DB)
//	}
package testdb

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"plaza/internal/infra/persistence/postgres"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB wraps a migrated database that is closed when the test ends.
type TestDB struct {
	DB   *gorm.DB
	Path string
}

// New opens and migrates a fresh database. BEGIN IMMEDIATE serialises writers the
// way row locks do on PostgreSQL.
func New(t *testing.T) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plaza.db")
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate&_foreign_keys=on", path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testdb: failed to get sql.DB: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := postgres.Migrate(context.Background(), db); err != nil {
		t.Fatalf("testdb: failed to migrate: %v", err)
	}

	return &TestDB{DB: db, Path: path}
}
