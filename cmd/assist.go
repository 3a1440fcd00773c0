package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/bankreport/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	date string
}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the AI assistant about the report"
}
func (*assistCmd) Usage() string {
	return `bankreport assist [-d <date>] [<question>...]

  Builds the report, then starts an interactive session with the AI assistant.
  The question, if any, is asked first. Type 'bye' to exit.
  Requires a Gemini API key (GEMINI_API_KEY or [assist] api_key).
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date of the report (defaults to today)")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	initialPrompt := strings.Join(f.Args(), " ")

	a, err := loadApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.log.Sync()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.cfg.Assist.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing Gemini's client: %v\n", err)
		return subcommands.ExitFailure
	}

	model := a.cfg.Assist.Model
	if model == "" {
		model = agent.DefaultModel
	}

	report := a.build(ctx, on)
	analyst := agent.NewAnalyst(model, report, a.log.Named("agent"))
	news := agent.NewNewsDesk(model)
	assistant := agent.New(os.Stdout, os.Stdin, model, analyst, news)

	if err := assistant.Run(ctx, client, initialPrompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: agent failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
