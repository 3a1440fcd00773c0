// Package config loads the bankreport configuration.
//
// Priority, lowest first: defaults, TOML files (later files override earlier
// ones), environment variables, command line flags. A .env file can feed the
// environment without overriding variables already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// DefaultFile is read when it exists and no file is given explicitly.
const DefaultFile = "bankreport.toml"

// DefaultDotEnv is the dotenv file loaded into the environment.
const DefaultDotEnv = ".env"

// Environment variables.
const (
	EnvToken     = "TUSHARE_TOKEN"
	EnvURL       = "TUSHARE_API_URL"
	EnvRateLimit = "TUSHARE_RATE_LIMIT"
	EnvLogLevel  = "BANKREPORT_LOG_LEVEL"
	EnvGeminiKey = "GEMINI_API_KEY"
)

// Config represents the application configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Report   ReportConfig   `toml:"report"`
	Logging  LoggingConfig  `toml:"logging"`
	Assist   AssistConfig   `toml:"assist"`

	// envErr is the first invalid environment value, reported by Validate.
	envErr error
}

type ProviderConfig struct {
	URL       string `toml:"url"`
	Token     string `toml:"token"`
	RateLimit int    `toml:"rate_limit"` // calls per minute
	Timeout   string `toml:"timeout"`    // e.g. "30s"
}

type ReportConfig struct {
	Exchange string `toml:"exchange"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console or json
}

type AssistConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			URL:       "http://api.tushare.pro",
			RateLimit: 200,
			Timeout:   "30s",
		},
		Report: ReportConfig{
			Exchange: "SSE",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Assist: AssistConfig{
			Model: "gemini-2.5-flash",
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env.
// Without paths, DefaultFile is read if present.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	if len(paths) == 0 {
		if _, err := os.Stat(DefaultFile); err == nil {
			paths = []string{DefaultFile}
		}
	}

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	return config, nil
}

// LoadDotEnv loads path into the environment. Variables already set win.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func applyEnvOverrides(config *Config) {
	if token := os.Getenv(EnvToken); token != "" {
		config.Provider.Token = token
	}
	if url := os.Getenv(EnvURL); url != "" {
		config.Provider.URL = url
	}
	if rl := os.Getenv(EnvRateLimit); rl != "" {
		n, err := strconv.Atoi(rl)
		if err != nil {
			config.envErr = fmt.Errorf("%s: invalid rate limit %q: %w", EnvRateLimit, rl, err)
		} else {
			config.Provider.RateLimit = n
		}
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		config.Logging.Level = level
	}
	if key := os.Getenv(EnvGeminiKey); key != "" {
		config.Assist.APIKey = key
	}
}

// ApplyFlagOverrides applies command line values. Empty values are ignored.
func (c *Config) ApplyFlagOverrides(token, logLevel string) {
	if token != "" {
		c.Provider.Token = token
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Validate reports the first invalid value.
func (c *Config) Validate() error {
	if c.envErr != nil {
		return c.envErr
	}
	if c.Provider.URL == "" {
		return errors.New("provider.url is empty")
	}
	if c.Provider.RateLimit <= 0 {
		return fmt.Errorf("provider.rate_limit must be positive, got %d", c.Provider.RateLimit)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if c.Report.Exchange == "" {
		return errors.New("report.exchange is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

// Timeout is the parsed provider timeout.
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Provider.Timeout)
	if err != nil {
		return 0, fmt.Errorf("provider.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("provider.timeout must be positive, got %s", d)
	}
	return d, nil
}

// Level is the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return level, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
