// Package config loads newswave settings from built-in defaults, an optional
// YAML file, an optional .env file and the environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"newswave/internal/observability/logging"
)

// ConfigFileEnv names the variable holding the YAML config path.
const ConfigFileEnv = "NEWSWAVE_CONFIG"

// Config is the full application configuration.
type Config struct {
	API         APIConfig        `yaml:"api"`
	Session     SessionConfig    `yaml:"session"`
	Feed        FeedConfig       `yaml:"feed"`
	Directory   DirectoryConfig  `yaml:"directory"`
	Summarizer  SummarizerConfig `yaml:"summarizer"`
	Log         LogConfig        `yaml:"log"`
	MetricsFile string           `yaml:"metrics_file" env:"NEWSWAVE_METRICS_FILE"`
}

// APIConfig configures the upstream NewsWave API client.
type APIConfig struct {
	BaseURL string `yaml:"base_url" env:"NEWSWAVE_API_BASE_URL"`
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout" env:"NEWSWAVE_API_TIMEOUT"`
	// RateLimit is requests per second. Zero disables throttling.
	RateLimit      float64 `yaml:"rate_limit" env:"NEWSWAVE_API_RATE_LIMIT"`
	Burst          int     `yaml:"burst" env:"NEWSWAVE_API_BURST"`
	CircuitBreaker bool    `yaml:"circuit_breaker" env:"NEWSWAVE_API_CB_ENABLED"`
}

// SessionConfig configures the persisted session store.
type SessionConfig struct {
	DBPath string `yaml:"db_path" env:"NEWSWAVE_SESSION_DB"`
}

// FeedConfig configures the subscriber feed.
type FeedConfig struct {
	DefaultCount int `yaml:"default_count" env:"NEWSWAVE_FEED_DEFAULT_COUNT"`
}

// DirectoryConfig configures the publisher directory.
type DirectoryConfig struct {
	Concurrency int `yaml:"concurrency" env:"NEWSWAVE_DIRECTORY_CONCURRENCY"`
}

// SummarizerConfig selects the summary provider.
type SummarizerConfig struct {
	Provider       string        `yaml:"provider" env:"NEWSWAVE_SUMMARIZER"`
	Model          string        `yaml:"model" env:"NEWSWAVE_SUMMARIZER_MODEL"`
	CharacterLimit int           `yaml:"character_limit" env:"SUMMARIZER_CHAR_LIMIT"`
	Timeout        time.Duration `yaml:"timeout" env:"NEWSWAVE_SUMMARIZER_TIMEOUT"`
	OpenAIAPIKey   string        `yaml:"-" env:"OPENAI_API_KEY"`
	AnthropicKey   string        `yaml:"-" env:"ANTHROPIC_API_KEY"`
}

// APIKey returns the key for the selected provider.
func (s SummarizerConfig) APIKey() string {
	switch s.Provider {
	case "openai":
		return s.OpenAIAPIKey
	case "claude":
		return s.AnthropicKey
	default:
		return ""
	}
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// Default returns the built-in defaults. BaseURL has no default.
func Default() Config {
	return Config{
		API: APIConfig{
			RateLimit:      5,
			Burst:          5,
			CircuitBreaker: true,
		},
		Session:   SessionConfig{DBPath: "newswave.db"},
		Feed:      FeedConfig{DefaultCount: 10},
		Directory: DirectoryConfig{Concurrency: 4},
		Summarizer: SummarizerConfig{
			Provider:       "noop",
			CharacterLimit: 900,
			Timeout:        60 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// ConfigFile is the YAML path. Empty falls back to NEWSWAVE_CONFIG; when
	// both are empty no file is read.
	ConfigFile string
	// EnvFile is the dotenv path. Empty means ".env". A missing file is ignored.
	EnvFile string
	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load builds and validates the configuration.
func Load(opts LoadOptions) (*Config, error) {
	environ := opts.Environment
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		merged := make(map[string]string, len(environ)+len(dotenv))
		for k, v := range dotenv {
			merged[k] = v
		}
		for k, v := range environ {
			merged[k] = v
		}
		environ = merged
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	cfg := Default()

	path := opts.ConfigFile
	if path == "" {
		path = environ[ConfigFileEnv]
	}
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	// #nosec G304 -- path comes from a CLI flag or the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	c.Summarizer.Provider = strings.ToLower(strings.TrimSpace(c.Summarizer.Provider))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("NEWSWAVE_API_BASE_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("NEWSWAVE_API_BASE_URL must be an http or https URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return errors.New("NEWSWAVE_API_TIMEOUT must not be negative")
	}
	if c.API.RateLimit < 0 {
		return errors.New("NEWSWAVE_API_RATE_LIMIT must not be negative")
	}
	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		return errors.New("NEWSWAVE_API_BURST must be at least 1 when rate limiting is enabled")
	}

	if strings.TrimSpace(c.Session.DBPath) == "" {
		return errors.New("NEWSWAVE_SESSION_DB cannot be empty")
	}

	if c.Feed.DefaultCount < 1 || c.Feed.DefaultCount > 100 {
		return errors.New("NEWSWAVE_FEED_DEFAULT_COUNT must be between 1 and 100")
	}
	if c.Directory.Concurrency < 1 || c.Directory.Concurrency > 32 {
		return errors.New("NEWSWAVE_DIRECTORY_CONCURRENCY must be between 1 and 32")
	}

	switch c.Summarizer.Provider {
	case "noop":
	case "openai", "claude":
		if c.Summarizer.APIKey() == "" {
			key := "OPENAI_API_KEY"
			if c.Summarizer.Provider == "claude" {
				key = "ANTHROPIC_API_KEY"
			}
			return fmt.Errorf("%s is required for the %s summarizer", key, c.Summarizer.Provider)
		}
	default:
		return fmt.Errorf("NEWSWAVE_SUMMARIZER must be noop, openai or claude, got %q", c.Summarizer.Provider)
	}
	if c.Summarizer.CharacterLimit < 100 || c.Summarizer.CharacterLimit > 5000 {
		return errors.New("SUMMARIZER_CHAR_LIMIT must be between 100 and 5000")
	}
	if c.Summarizer.Timeout < 0 {
		return errors.New("NEWSWAVE_SUMMARIZER_TIMEOUT must not be negative")
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatText {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}
	return nil
}
