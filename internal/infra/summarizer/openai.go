package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"newswave/internal/resilience/circuitbreaker"
)

const defaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAI summarizes with the OpenAI chat completion API.
type OpenAI struct {
	engine
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates an OpenAI summarizer. cfg.BaseURL overrides the API
// endpoint.
func NewOpenAI(cfg Config, opts ...Option) *OpenAI {
	cfg = cfg.withDefaults()
	o := collectOptions(opts)

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if o.httpClient != nil {
		clientCfg.HTTPClient = o.httpClient
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	s := &OpenAI{
		engine:    newEngine("openai-api", cfg, circuitbreaker.OpenAIAPIConfig(), o),
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}
	s.logger.Info("initialized summarizer",
		slog.String("model", model),
		slog.Int("character_limit", s.limit))
	return s
}

// Summarize returns an English summary of input.
func (s *OpenAI) Summarize(ctx context.Context, input string) (string, error) {
	return s.summarize(ctx, input, s.complete)
}

func (s *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", classifyOpenAI(err))
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAI(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &providerError{status: apiErr.HTTPStatusCode, err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &providerError{status: reqErr.HTTPStatusCode, err: err}
	}
	return err
}
