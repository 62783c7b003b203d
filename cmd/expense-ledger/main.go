package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&serveCmd{}, "")
	commander.Register(&migrateCmd{}, "")
	commander.Register(&exportCmd{}, "")

	// serve is the default command.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
