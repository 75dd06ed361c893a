package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Helper functions for constraint error checking. TranslateError maps driver errors
// to gorm sentinels; the message checks cover drivers that do not translate.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint")
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}

// supportsRowLocks reports whether SELECT ... FOR UPDATE is available.
// SQLite serialises writers at BEGIN IMMEDIATE instead.
func supportsRowLocks(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

func forUpdate(db *gorm.DB) *gorm.DB {
	if !supportsRowLocks(db) {
		return db
	}

	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}
