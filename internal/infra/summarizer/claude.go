package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"newswave/internal/resilience/circuitbreaker"
)

const defaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude summarizes with the Anthropic Messages API.
type Claude struct {
	engine
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewClaude creates a Claude summarizer. The SDK's own retries are disabled;
// retry.WithBackoff owns them.
func NewClaude(cfg Config, opts ...Option) *Claude {
	cfg = cfg.withDefaults()
	o := collectOptions(opts)

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	if o.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(o.httpClient))
	}
	model := cfg.Model
	if model == "" {
		model = defaultClaudeModel
	}

	s := &Claude{
		engine:    newEngine("claude-api", cfg, circuitbreaker.ClaudeAPIConfig(), o),
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
	s.logger.Info("initialized summarizer",
		slog.String("model", model),
		slog.Int("character_limit", s.limit))
	return s
}

// Summarize returns an English summary of input.
func (s *Claude) Summarize(ctx context.Context, input string) (string, error) {
	return s.summarize(ctx, input, s.complete)
}

func (s *Claude) complete(ctx context.Context, prompt string) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			err = &providerError{status: apiErr.StatusCode, err: err}
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", errors.New("claude api returned empty content")
	}
	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", errors.New("claude api returned unexpected content type")
	}
	return block.Text, nil
}
