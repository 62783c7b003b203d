package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"expense-ledger-go/pkg/logger"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DB.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.DB.Driver)
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("expected development secret")
	}
	if cfg.Currency != "USD" {
		t.Fatalf("expected USD, got %s", cfg.Currency)
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error without JWT_SECRET in production")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	contents := "export DB_DRIVER=sqlite\nJWT_SECRET=\"from-file\"\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test # local\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// Load only fills variables that are unset; t.Setenv restores them after.
	for _, key := range []string{"DB_DRIVER", "JWT_SECRET", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DB.Driver != DriverSQLite {
		t.Fatalf("expected sqlite from .env, got %s", cfg.DB.Driver)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("expected secret from .env, got %q", cfg.Auth.JWTSecret)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadKeepsEnvOverDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CURRENCY=EUR\nJWT_SECRET=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("CURRENCY", "jpy")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", "")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Currency != "JPY" {
		t.Fatalf("expected environment currency, got %s", cfg.Currency)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected environment secret, got %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadRejectsMalformedDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=\"unterminated\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for malformed .env")
	}
}

func TestSQLiteDSN(t *testing.T) {
	cfg := DBConfig{Driver: DriverSQLite, SQLitePath: "ledger.db"}
	if got := cfg.GetDSN(); got != "ledger.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Fatalf("unexpected dsn %s", got)
	}
}
