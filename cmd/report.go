package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bankreport"
	"github.com/etnz/bankreport/renderer"
	"github.com/google/subcommands"
)

// reportCmd prints the report, or a subset of its sections.
type reportCmd struct {
	name     string
	synopsis string
	usage    string
	sections []bankreport.Section

	date   string
	format string
}

func newReportCmd() *reportCmd {
	return &reportCmd{
		name:     "report",
		synopsis: "display the bank stocks report",
		usage: `bankreport report [-d <date>] [-format auto|text|pretty]

  Displays the full report: valuation, quotes, dividends, fundamentals and
  year to date performance of the tracked bank stocks.
  Sections that cannot be fetched are reported in place, the report is always printed.
`,
		sections: bankreport.AllSections,
	}
}

func newSectionCmd(s bankreport.Section) *reportCmd {
	return &reportCmd{
		name:     s.String(),
		synopsis: fmt.Sprintf("display the %s section of the report", s),
		usage: fmt.Sprintf(`bankreport %s [-d <date>] [-format auto|text|pretty]

  Displays only the %s section of the bank stocks report.
`, s, s),
		sections: []bankreport.Section{s},
	}
}

func (c *reportCmd) Name() string     { return c.name }
func (c *reportCmd) Synopsis() string { return c.synopsis }
func (c *reportCmd) Usage() string    { return c.usage }

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date of the report (defaults to today)")
	f.StringVar(&c.format, "format", formatAuto, "Output format: auto, text or pretty")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %v\n", f.Args())
		return subcommands.ExitUsageError
	}
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := validFormat(c.format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	report := a.build(ctx, on, c.sections...)
	printMarkdown(renderer.ReportMarkdown(report), c.format)
	return subcommands.ExitSuccess
}
