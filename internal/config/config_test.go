package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswave/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func baseEnv() map[string]string {
	return map[string]string{"NEWSWAVE_API_BASE_URL": "http://localhost:8080"}
}

func load(t *testing.T, opts config.LoadOptions) (*config.Config, error) {
	t.Helper()
	if opts.EnvFile == "" {
		opts.EnvFile = filepath.Join(t.TempDir(), "missing.env")
	}
	return config.Load(opts)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(t, config.LoadOptions{Environment: baseEnv()})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.True(t, cfg.API.CircuitBreaker)
	assert.Equal(t, "newswave.db", cfg.Session.DBPath)
	assert.Equal(t, 10, cfg.Feed.DefaultCount)
	assert.Equal(t, 4, cfg.Directory.Concurrency)
	assert.Equal(t, "noop", cfg.Summarizer.Provider)
	assert.Equal(t, 900, cfg.Summarizer.CharacterLimit)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoad_MissingBaseURL(t *testing.T) {
	_, err := load(t, config.LoadOptions{Environment: map[string]string{}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEWSWAVE_API_BASE_URL is required")
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "newswave.yaml", `
api:
  base_url: http://yaml.example
  timeout: 5s
  rate_limit: 2
feed:
  default_count: 20
directory:
  concurrency: 8
log:
  level: debug
`)
	envPath := writeFile(t, dir, ".env", `
NEWSWAVE_API_BASE_URL=https://dotenv.example
NEWSWAVE_FEED_DEFAULT_COUNT=30
`)

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: yamlPath,
		EnvFile:    envPath,
		Environment: map[string]string{
			"NEWSWAVE_FEED_DEFAULT_COUNT": "40",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://dotenv.example", cfg.API.BaseURL, ".env beats YAML")
	assert.Equal(t, 40, cfg.Feed.DefaultCount, "environment beats .env")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout, "YAML beats defaults")
	assert.InDelta(t, 2.0, cfg.API.RateLimit, 0.0001)
	assert.Equal(t, 8, cfg.Directory.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5, cfg.API.Burst, "unset keys keep defaults")
}

func TestLoad_ConfigFileFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "cfg.yaml", "session:\n  db_path: /tmp/custom.db\n")

	env := baseEnv()
	env[config.ConfigFileEnv] = yamlPath
	cfg, err := load(t, config.LoadOptions{Environment: env})

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Session.DBPath)
}

func TestLoad_ExplicitConfigFileMissing(t *testing.T) {
	_, err := load(t, config.LoadOptions{
		ConfigFile:  filepath.Join(t.TempDir(), "nope.yaml"),
		Environment: baseEnv(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "api: [unclosed")

	_, err := load(t, config.LoadOptions{ConfigFile: path, Environment: baseEnv()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	env := baseEnv()
	env["NEWSWAVE_FEED_DEFAULT_COUNT"] = "ten"

	_, err := load(t, config.LoadOptions{Environment: env})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse environment")
}

func TestLoad_SummarizerKeys(t *testing.T) {
	env := baseEnv()
	env["NEWSWAVE_SUMMARIZER"] = "Claude"
	env["ANTHROPIC_API_KEY"] = "sk-ant"
	env["OPENAI_API_KEY"] = "sk-openai"

	cfg, err := load(t, config.LoadOptions{Environment: env})

	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.Summarizer.Provider)
	assert.Equal(t, "sk-ant", cfg.Summarizer.APIKey())
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		c := config.Default()
		c.API.BaseURL = "https://api.example.com"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *config.Config) {}},
		{name: "ftp base url", mutate: func(c *config.Config) { c.API.BaseURL = "ftp://x" }, wantErr: "http or https"},
		{name: "base url without host", mutate: func(c *config.Config) { c.API.BaseURL = "http://" }, wantErr: "http or https"},
		{name: "negative timeout", mutate: func(c *config.Config) { c.API.Timeout = -time.Second }, wantErr: "NEWSWAVE_API_TIMEOUT"},
		{name: "negative rate", mutate: func(c *config.Config) { c.API.RateLimit = -1 }, wantErr: "NEWSWAVE_API_RATE_LIMIT"},
		{name: "zero burst with rate", mutate: func(c *config.Config) { c.API.Burst = 0 }, wantErr: "NEWSWAVE_API_BURST"},
		{name: "zero burst without rate", mutate: func(c *config.Config) { c.API.RateLimit, c.API.Burst = 0, 0 }},
		{name: "empty db path", mutate: func(c *config.Config) { c.Session.DBPath = " " }, wantErr: "NEWSWAVE_SESSION_DB"},
		{name: "feed count zero", mutate: func(c *config.Config) { c.Feed.DefaultCount = 0 }, wantErr: "NEWSWAVE_FEED_DEFAULT_COUNT"},
		{name: "feed count too big", mutate: func(c *config.Config) { c.Feed.DefaultCount = 101 }, wantErr: "NEWSWAVE_FEED_DEFAULT_COUNT"},
		{name: "concurrency", mutate: func(c *config.Config) { c.Directory.Concurrency = 0 }, wantErr: "NEWSWAVE_DIRECTORY_CONCURRENCY"},
		{name: "unknown summarizer", mutate: func(c *config.Config) { c.Summarizer.Provider = "gemini" }, wantErr: "NEWSWAVE_SUMMARIZER"},
		{name: "openai without key", mutate: func(c *config.Config) { c.Summarizer.Provider = "openai" }, wantErr: "OPENAI_API_KEY"},
		{name: "claude without key", mutate: func(c *config.Config) { c.Summarizer.Provider = "claude" }, wantErr: "ANTHROPIC_API_KEY"},
		{name: "char limit low", mutate: func(c *config.Config) { c.Summarizer.CharacterLimit = 99 }, wantErr: "SUMMARIZER_CHAR_LIMIT"},
		{name: "char limit high", mutate: func(c *config.Config) { c.Summarizer.CharacterLimit = 5001 }, wantErr: "SUMMARIZER_CHAR_LIMIT"},
		{name: "log level", mutate: func(c *config.Config) { c.Log.Level = "verbose" }, wantErr: "LOG_LEVEL"},
		{name: "log format", mutate: func(c *config.Config) { c.Log.Format = "xml" }, wantErr: "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
