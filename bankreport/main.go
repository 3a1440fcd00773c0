// Command bankreport prints a daily report on Chinese bank stocks.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/bankreport/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
