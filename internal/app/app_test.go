package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"expense-ledger-go/internal/config"
	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/internal/repository/inmemory"
	rediscache "expense-ledger-go/internal/repository/redis"
	"expense-ledger-go/pkg/logger"
)

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:      "test",
		Currency: "USD",
		DB: config.DBConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  filepath.Join(t.TempDir(), "ledger.db"),
			AutoMigrate: true,
		},
		Auth:  config.AuthConfig{JWTSecret: "app-test-secret", TokenTTL: time.Minute},
		Cache: config.CacheConfig{BalanceSheetTTL: time.Minute},
	}
}

func TestNewWithoutRedisUsesMemoryCache(t *testing.T) {
	application, err := New(context.Background(), sqliteConfig(t), logger.Nop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	if _, ok := application.sheetCache.(*inmemory.BalanceSheetCache); !ok {
		t.Fatalf("expected in-memory cache, got %T", application.sheetCache)
	}
	if application.redisClient != nil {
		t.Fatalf("expected no redis client")
	}

	// Auto-migrated schema is usable right away.
	if _, err := application.Users.Register(context.Background(), userdomain.RegisterInput{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestNewUsesRedisWhenConfigured(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	cfg := sqliteConfig(t)
	cfg.Cache.RedisURL = url
	application, err := New(context.Background(), cfg, logger.Nop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = application.Close() })

	if _, ok := application.sheetCache.(*rediscache.BalanceSheetCache); !ok {
		t.Fatalf("expected redis cache, got %T", application.sheetCache)
	}
	if application.redisClient == nil {
		t.Fatalf("expected redis client to be kept for Close")
	}
}

func TestNewFailsOnBadRedisURL(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Cache.RedisURL = "not a url"

	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatalf("expected error for an unusable REDIS_URL")
	}
}

func TestNewRejectsCurrencyFinerThanStorage(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Currency = "KWD"

	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatalf("expected error for a three-decimal currency")
	}
}
