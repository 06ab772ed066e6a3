// Package summarizer generates short article summaries for publishers
// drafting a post. OpenAI and Claude providers run through a circuit breaker
// and retry with backoff; NoOp truncates locally.
package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newswave/internal/resilience/circuitbreaker"
	"newswave/internal/resilience/retry"
	"newswave/internal/utils/text"
)

// Summarizer turns article content into a summary.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Provider names accepted by New.
const (
	ProviderNoop   = "noop"
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
)

const (
	// DefaultCharacterLimit is the summary length requested when none is configured.
	DefaultCharacterLimit = 900

	minCharLimit = 100
	maxCharLimit = 5000

	// maxInputChars caps the text sent to a provider.
	maxInputChars = 10000

	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 1024
)

// ValidateCharacterLimit reports whether limit is within 100..5000.
func ValidateCharacterLimit(limit int) error {
	if limit < minCharLimit {
		return fmt.Errorf("character limit %d is below minimum %d", limit, minCharLimit)
	}
	if limit > maxCharLimit {
		return fmt.Errorf("character limit %d exceeds maximum %d", limit, maxCharLimit)
	}
	return nil
}

// Config selects and configures a provider.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	CharacterLimit int
	MaxTokens      int
	Timeout        time.Duration
}

func (c Config) withDefaults() Config {
	if c.CharacterLimit == 0 {
		c.CharacterLimit = DefaultCharacterLimit
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Option customizes an AI provider.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	retry      *retry.Config
	breaker    *circuitbreaker.CircuitBreaker
	metrics    SummaryMetricsRecorder
	httpClient *http.Client
}

// WithLogger sets the provider's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRetryConfig overrides retry.AIAPIConfig.
func WithRetryConfig(cfg retry.Config) Option {
	return func(o *options) { o.retry = &cfg }
}

// WithCircuitBreaker replaces the provider's default breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(o *options) { o.breaker = cb }
}

// WithMetricsRecorder replaces the Prometheus recorder.
func WithMetricsRecorder(m SummaryMetricsRecorder) Option {
	return func(o *options) { o.metrics = m }
}

// WithHTTPClient sets the HTTP client used to reach the provider.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// New builds the summarizer named by cfg.Provider. An empty provider means noop.
func New(cfg Config, opts ...Option) (Summarizer, error) {
	cfg = cfg.withDefaults()
	if err := ValidateCharacterLimit(cfg.CharacterLimit); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNoop:
		return NewNoOp(cfg.CharacterLimit), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("openai summarizer requires an api key")
		}
		return NewOpenAI(cfg, opts...), nil
	case ProviderClaude:
		if cfg.APIKey == "" {
			return nil, errors.New("claude summarizer requires an api key")
		}
		return NewClaude(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
	}
}

// providerError marks a provider failure with its HTTP status so retry can
// classify it.
type providerError struct {
	status int
	err    error
}

func (e *providerError) Error() string   { return e.err.Error() }
func (e *providerError) Unwrap() error   { return e.err }
func (e *providerError) HTTPStatus() int { return e.status }

// engine carries what both AI providers share: prompt building, input
// truncation, retry, breaker, logging and metrics.
type engine struct {
	service string
	limit   int
	timeout time.Duration
	retry   retry.Config
	breaker *circuitbreaker.CircuitBreaker
	metrics SummaryMetricsRecorder
	logger  *slog.Logger
}

func newEngine(service string, cfg Config, defaultBreaker circuitbreaker.Config, o options) engine {
	e := engine{
		service: service,
		limit:   cfg.CharacterLimit,
		timeout: cfg.Timeout,
		retry:   retry.AIAPIConfig(),
		breaker: o.breaker,
		metrics: o.metrics,
		logger:  o.logger,
	}
	if o.retry != nil {
		e.retry = *o.retry
	}
	if e.breaker == nil {
		e.breaker = circuitbreaker.New(defaultBreaker)
	}
	if e.metrics == nil {
		e.metrics = NewPrometheusSummaryMetrics()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.logger = e.logger.With(slog.String("service", service))
	return e
}

func collectOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (e engine) buildPrompt(input string) string {
	return fmt.Sprintf("Summarize the following article in English in at most %d characters. "+
		"Reply with the summary only.\n\n%s", e.limit, input)
}

func (e engine) summarize(ctx context.Context, input string, call func(ctx context.Context, prompt string) (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	input = strings.TrimSpace(input)
	if n := text.CountRunes(input); n > maxInputChars {
		input = text.Truncate(input, maxInputChars, "...\n(truncated)")
		e.logger.WarnContext(ctx, "input truncated",
			slog.Int("original_length", n),
			slog.Int("truncated_length", maxInputChars))
	}
	prompt := e.buildPrompt(input)

	var summary string
	err := retry.WithBackoff(ctx, e.retry, func() error {
		res, err := e.breaker.Execute(func() (interface{}, error) {
			return e.attempt(ctx, prompt, call)
		})
		if err != nil {
			if circuitbreaker.IsRejection(err) {
				e.logger.WarnContext(ctx, "circuit breaker open, request rejected",
					slog.String("state", e.breaker.State().String()))
				return fmt.Errorf("%s unavailable: %w", e.service, err)
			}
			return err
		}
		summary = res.(string)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%s summarize: %w", e.service, err)
	}
	return summary, nil
}

func (e engine) attempt(ctx context.Context, prompt string, call func(ctx context.Context, prompt string) (string, error)) (string, error) {
	start := time.Now()
	summary, err := call(ctx, prompt)
	duration := time.Since(start)
	if err != nil {
		e.logger.ErrorContext(ctx, "summarization failed",
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", fmt.Errorf("%s returned empty response", e.service)
	}

	length := text.CountRunes(summary)
	withinLimit := length <= e.limit
	e.logger.InfoContext(ctx, "summarization completed",
		slog.Int("summary_length", length),
		slog.Int("character_limit", e.limit),
		slog.Bool("within_limit", withinLimit),
		slog.Duration("duration", duration))

	e.metrics.RecordLength(length)
	e.metrics.RecordDuration(duration)
	e.metrics.RecordCompliance(withinLimit)
	if !withinLimit {
		e.logger.WarnContext(ctx, "summary exceeds character limit",
			slog.Int("excess", length-e.limit))
		e.metrics.RecordLimitExceeded()
	}
	return summary, nil
}
