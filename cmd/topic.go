package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bankreport/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	format string
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `bankreport topic [-format auto|text|pretty] [<topic>...]

  Show documentation for the given topics, "*" for all of them.
  Without topic, shows the list of topics.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", formatAuto, "Output format: auto, text or pretty")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := validFormat(c.format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}

	doc, err := docs.GetTopics(topics...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc, c.format)

	return subcommands.ExitSuccess
}
