package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// clearEnv unsets the variables read by the package for the duration of t.
func clearEnv(t *testing.T) {
	for _, k := range []string{EnvToken, EnvURL, EnvLogLevel, EnvGeminiKey, EnvRateLimit} {
		t.Setenv(k, "")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	c := NewDefaultConfig()
	require.NoError(t, c.Validate())
	d, err := c.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
	assert.Equal(t, "SSE", c.Report.Exchange)
	assert.Equal(t, 200, c.Provider.RateLimit)
}

func TestLoadFromFiles(t *testing.T) {
	clearEnv(t)
	base := writeFile(t, "base.toml", `
[provider]
token = "from-base"
rate_limit = 50

[logging]
level = "info"
`)
	override := writeFile(t, "override.toml", `
[provider]
token = "from-override"
`)
	c, err := LoadFromFiles(base, override)
	require.NoError(t, err)
	assert.Equal(t, "from-override", c.Provider.Token)
	assert.Equal(t, 50, c.Provider.RateLimit, "earlier files still apply")
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "http://api.tushare.pro", c.Provider.URL, "defaults still apply")
}

func TestLoadFromFiles_Errors(t *testing.T) {
	clearEnv(t)
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.toml", "[provider\n")
	_, err = LoadFromFiles(bad)
	assert.Error(t, err)
}

func TestPriority(t *testing.T) {
	clearEnv(t)
	file := writeFile(t, "c.toml", "[provider]\ntoken = \"file\"\n[logging]\nlevel = \"error\"\n")
	t.Setenv(EnvToken, "env")
	t.Setenv(EnvLogLevel, "info")

	c, err := LoadFromFiles(file)
	require.NoError(t, err)
	assert.Equal(t, "env", c.Provider.Token)
	assert.Equal(t, "info", c.Logging.Level)

	c.ApplyFlagOverrides("flag", "")
	assert.Equal(t, "flag", c.Provider.Token)
	assert.Equal(t, "info", c.Logging.Level)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvURL))
	t.Setenv(EnvToken, "already-set")
	env := writeFile(t, ".env", EnvToken+"=from-dotenv\n"+EnvURL+"=http://localhost:9999\n")

	require.NoError(t, LoadDotEnv(env))
	t.Cleanup(func() { os.Unsetenv(EnvURL) })

	c, err := LoadFromFiles(writeFile(t, "empty.toml", ""))
	require.NoError(t, err)
	assert.Equal(t, "already-set", c.Provider.Token, "dotenv does not override the environment")
	assert.Equal(t, "http://localhost:9999", c.Provider.URL)

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "none.env")))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "rate limit", modify: func(c *Config) { c.Provider.RateLimit = 0 }},
		{name: "timeout", modify: func(c *Config) { c.Provider.Timeout = "soon" }},
		{name: "negative timeout", modify: func(c *Config) { c.Provider.Timeout = "-1s" }},
		{name: "url", modify: func(c *Config) { c.Provider.URL = "" }},
		{name: "exchange", modify: func(c *Config) { c.Report.Exchange = "" }},
		{name: "level", modify: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "format", modify: func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewDefaultConfig()
			tc.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestInvalidEnvRateLimit(t *testing.T) {
	testCases := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "50", want: 50},
		{value: "fast", want: 200, wantErr: true},
		{value: "0", want: 0, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvRateLimit, tc.value)
			c, err := LoadFromFiles(writeFile(t, "empty.toml", ""))
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Provider.RateLimit)
			if !tc.wantErr {
				assert.NoError(t, c.Validate())
				return
			}
			assert.Error(t, c.Validate())
		})
	}

	clearEnv(t)
	t.Setenv(EnvRateLimit, "fast")
	c, err := LoadFromFiles(writeFile(t, "empty.toml", ""))
	require.NoError(t, err)
	assert.ErrorContains(t, c.Validate(), EnvRateLimit)
}

func TestLevel(t *testing.T) {
	c := NewDefaultConfig()
	c.Logging.Level = "debug"
	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, level)
}
