package main

import (
	"context"
	"flag"

	"expense-ledger-go/internal/app"
	"expense-ledger-go/internal/config"
	"expense-ledger-go/pkg/logger"

	"github.com/google/subcommands"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending SQL migrations" }
func (*migrateCmd) Usage() string {
	return `expense-ledger migrate

  Applies the files under migrations/<DB_DRIVER> that are not yet recorded
  in schema_migrations.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := logger.NewFromEnv()

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("config: load failed", "err", err)
		return subcommands.ExitFailure
	}
	cfg.DB.AutoMigrate = false

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return subcommands.ExitFailure
	}
	defer application.Close()

	if _, err := application.Migrate(); err != nil {
		log.Critical("db: migrate failed", "err", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
