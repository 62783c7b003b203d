package db

import (
	"errors"
	"path/filepath"
	"testing"

	"expense-ledger-go/internal/config"
	"expense-ledger-go/pkg/logger"
)

func TestMigrateSQLite(t *testing.T) {
	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "nested", "ledger.db"),
	}
	gormDB, err := Open(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(gormDB)

	applied, err := Migrate(gormDB, config.DriverSQLite)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if applied == 0 {
		t.Fatalf("expected migrations to be applied")
	}

	again, err := Migrate(gormDB, config.DriverSQLite)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if again != 0 {
		t.Fatalf("expected no pending migrations, got %d", again)
	}

	for _, table := range []string{"users", "expenses", "expense_shares"} {
		if !gormDB.Migrator().HasTable(table) {
			t.Fatalf("expected table %s", table)
		}
	}
}

func TestMigrateUnknownDriver(t *testing.T) {
	cfg := config.DBConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "ledger.db")}
	gormDB, err := Open(cfg, logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer Close(gormDB)

	if _, err := Migrate(gormDB, "oracle"); !errors.Is(err, ErrMigrationsNotFound) {
		t.Fatalf("expected ErrMigrationsNotFound, got %v", err)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	if _, err := Open(config.DBConfig{Driver: "oracle"}, logger.Nop()); err == nil {
		t.Fatalf("expected error")
	}
}
