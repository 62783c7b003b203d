// Package dbtest opens throwaway migrated sqlite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"expense-ledger-go/internal/config"
	"expense-ledger-go/internal/db"
	"expense-ledger-go/pkg/logger"

	"gorm.io/gorm"
)

func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "ledger.db"),
	}
	gormDB, err := db.Open(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gormDB) })

	if _, err := db.Migrate(gormDB, config.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gormDB
}
