package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"expense-ledger-go/internal/auth"
	"expense-ledger-go/internal/config"
	"expense-ledger-go/internal/db"
	balancedomain "expense-ledger-go/internal/domain/balance"
	expensesdomain "expense-ledger-go/internal/domain/expenses"
	"expense-ledger-go/internal/domain/split"
	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/internal/metrics"
	"expense-ledger-go/internal/repository/inmemory"
	balancerepo "expense-ledger-go/internal/repository/postgres/balance"
	expensesrepo "expense-ledger-go/internal/repository/postgres/expenses"
	userrepo "expense-ledger-go/internal/repository/postgres/user"
	rediscache "expense-ledger-go/internal/repository/redis"
	"expense-ledger-go/internal/transport/httpserver"
	"expense-ledger-go/internal/transport/httpserver/handler"
	authmw "expense-ledger-go/internal/transport/httpserver/middleware"
	"expense-ledger-go/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg         config.Config
	log         logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	metrics     *metrics.Metrics
	sheetCache  balancedomain.Cache

	Users    *userdomain.Service
	Expenses *expensesdomain.Service
	Balance  *balancedomain.Service

	router     http.Handler
	httpServer *http.Server
}

// New opens the database and, when configured, redis, then wires every
// service around them.
func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	sheetCache, redisClient, err := newSheetCache(ctx, cfg.Cache, log)
	if err != nil {
		_ = db.Close(dbConn)
		return nil, err
	}

	application, err := NewWithDB(cfg, dbConn, sheetCache, log)
	if err != nil {
		_ = db.Close(dbConn)
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	application.redisClient = redisClient

	if cfg.DB.AutoMigrate {
		if _, err := application.Migrate(); err != nil {
			_ = application.Close()
			return nil, err
		}
	}

	return application, nil
}

// newSheetCache shares the balance sheet through redis when REDIS_URL is set
// and keeps it in process memory otherwise.
func newSheetCache(ctx context.Context, cfg config.CacheConfig, log logger.Logger) (balancedomain.Cache, *redis.Client, error) {
	if cfg.RedisURL == "" {
		return inmemory.NewBalanceSheetCache(), nil, nil
	}

	log.Info("app: connecting to redis")
	client, err := rediscache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return rediscache.NewBalanceSheetCache(client, ""), client, nil
}

// NewWithDB wires the application on an already opened database.
func NewWithDB(cfg config.Config, dbConn *gorm.DB, sheetCache balancedomain.Cache, log logger.Logger) (*App, error) {
	calc, err := split.NewCalculator(cfg.Currency)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	users := userdomain.NewService(userrepo.NewPostgres(dbConn), auth.NewBcryptHasher())
	expenses := expensesdomain.NewService(
		expensesrepo.NewPostgres(dbConn),
		calc,
		expensesdomain.WithSheetCache(sheetCache),
		expensesdomain.WithRecorder(m),
		expensesdomain.WithLogger(log),
	)
	balance, err := balancedomain.NewService(
		balancerepo.NewPostgres(dbConn),
		calc.Currency(),
		balancedomain.WithCache(sheetCache, cfg.Cache.BalanceSheetTTL),
		balancedomain.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	handlers := handler.New(users, expenses, balance, tokens, calc.Scale(), log)
	router := httpserver.NewRouter(cfg, handlers, authmw.NewJWTAuth(tokens, users, log), m, log)

	return &App{
		cfg:        cfg,
		log:        log,
		db:         dbConn,
		metrics:    m,
		sheetCache: sheetCache,
		Users:      users,
		Expenses:   expenses,
		Balance:    balance,
		router:     router,
		httpServer: httpserver.New(cfg, router),
	}, nil
}

func (a *App) Migrate() (int, error) {
	applied, err := db.Migrate(a.db, a.cfg.DB.Driver)
	if err != nil {
		return applied, fmt.Errorf("migrate: %w", err)
	}
	a.log.Info("db: migrations applied", "count", applied)
	return applied, nil
}

func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.redisClient != nil {
		errs = append(errs, a.redisClient.Close())
	}
	if a.db != nil {
		errs = append(errs, db.Close(a.db))
	}
	return errors.Join(errs...)
}
