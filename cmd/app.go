// Package cmd implements the CLI application that reports on Chinese bank stocks.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/bankreport"
	"github.com/etnz/bankreport/config"
	"github.com/etnz/bankreport/date"
	"github.com/etnz/bankreport/tushare"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(newReportCmd(), "reports")
	for _, s := range bankreport.AllSections {
		c.Register(newSectionCmd(s), "reports")
	}
	c.Register(&calendarCmd{}, "market")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFiles stringList
var token = flag.String("token", "", "Tushare Pro API token (overrides "+config.EnvToken+")")
var logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides "+config.EnvLogLevel+")")

func init() {
	flag.Var(&configFiles, "config", "Configuration file (TOML), can be repeated. Defaults to "+config.DefaultFile+" if present")
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }
func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// app holds what every command needs once the configuration is loaded.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	client *tushare.Client
}

// loadApp loads the configuration and builds the logger and the provider client.
func loadApp() (*app, error) {
	if err := config.LoadDotEnv(config.DefaultDotEnv); err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.DefaultDotEnv, err)
	}
	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFlagOverrides(*token, *logLevel)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.Level()
	log, err := newLogger(level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	timeout, _ := cfg.Timeout()

	client := tushare.NewClient(cfg.Provider.Token,
		tushare.WithBaseURL(cfg.Provider.URL),
		tushare.WithTimeout(timeout),
		tushare.WithRateLimit(cfg.Provider.RateLimit),
		tushare.WithLogger(log.Named("tushare")),
	)
	if !client.HasToken() {
		log.Warn("no Tushare token configured, requests are likely to be rejected",
			zap.String("env", config.EnvToken))
	}
	return &app{cfg: cfg, log: log, client: client}, nil
}

// build runs the report pipeline for the given sections.
func (a *app) build(ctx context.Context, on date.Date, sections ...bankreport.Section) *bankreport.Report {
	return bankreport.Build(ctx, a.client, bankreport.Options{
		Exchange: a.cfg.Report.Exchange,
		Today:    on,
		Sections: sections,
		Logger:   a.log,
	})
}

// parseDay parses the -d flag. Empty means today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}
