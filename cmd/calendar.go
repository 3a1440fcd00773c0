package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bankreport"
	"github.com/google/subcommands"
)

type calendarCmd struct {
	date     string
	exchange string
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the most recent trading date" }
func (*calendarCmd) Usage() string {
	return `bankreport calendar [-d <date>] [-exchange <code>]

  Displays the most recent open trading date on or before the given date,
  looking back at most 10 days.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date (defaults to today)")
	f.StringVar(&c.exchange, "exchange", "", "Exchange code (defaults to the configured exchange)")
}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	exchange := c.exchange
	if exchange == "" {
		exchange = a.cfg.Report.Exchange
	}

	day, err := bankreport.ResolveTradingDate(ctx, a.client, exchange, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, day)
	return subcommands.ExitSuccess
}
