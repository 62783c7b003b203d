package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"expense-ledger-go/internal/app"
	"expense-ledger-go/internal/config"
	"expense-ledger-go/internal/domain/balance"
	"expense-ledger-go/pkg/logger"

	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
	output string
	stdout io.Writer
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the balance sheet to a file" }
func (*exportCmd) Usage() string {
	return `expense-ledger export [-format csv|xlsx] [-o <file>]

  Writes the current balance sheet. Without -o the sheet goes to
  balance_sheet.<format> in the working directory; "-" writes to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Output format (csv, xlsx).")
	f.StringVar(&c.output, "o", "", "Output file.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	format, err := balance.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	// Logs go to stderr so "-o -" output stays clean.
	opts := logger.OptionsFromEnv()
	opts.Output = os.Stderr
	log := logger.New(opts)

	cfg, err := config.Load(log)
	if err != nil {
		log.Critical("config: load failed", "err", err)
		return subcommands.ExitFailure
	}

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return subcommands.ExitFailure
	}
	defer application.Close()

	output := c.output
	if output == "" {
		output = format.Filename()
	}

	stdout := c.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	if err := writeExport(ctx, application.Balance, format, output, stdout); err != nil {
		log.Critical("export: failed", "format", format, "output", output, "err", err)
		return subcommands.ExitFailure
	}
	if output != "-" {
		log.Info("export: written", "format", format, "output", output)
	}
	return subcommands.ExitSuccess
}

// writeExport writes the sheet to output, or to stdout when output is "-".
func writeExport(ctx context.Context, svc *balance.Service, format balance.Format, output string, stdout io.Writer) (err error) {
	w := stdout
	if output != "-" {
		file, createErr := os.Create(output)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := file.Close(); err == nil {
				err = closeErr
			}
		}()
		w = file
	}
	return svc.Export(ctx, format, w)
}
