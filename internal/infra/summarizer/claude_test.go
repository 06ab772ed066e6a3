package summarizer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswave/internal/infra/summarizer"
)

func writeClaudeMessage(w http.ResponseWriter, content []map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":            "msg_01",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-sonnet-4-5-20250929",
		"content":       content,
		"stop_reason":   "end_turn",
		"stop_sequence": nil,
		"usage":         map[string]int{"input_tokens": 42, "output_tokens": 12},
	})
}

func textContent(s string) []map[string]any {
	return []map[string]any{{"type": "text", "text": s}}
}

func newClaude(t *testing.T, handler http.HandlerFunc) (*summarizer.Claude, *MockMetricsRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := &MockMetricsRecorder{}
	s := summarizer.NewClaude(summarizer.Config{
		APIKey:         "sk-ant-test",
		BaseURL:        srv.URL,
		CharacterLimit: 300,
		Timeout:        5 * time.Second,
	}, fastRetry(), summarizer.WithMetricsRecorder(rec))
	return s, rec
}

func TestClaude_Summarize(t *testing.T) {
	var body struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	s, rec := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeClaudeMessage(w, textContent("Transit plan approved."))
	})

	summary, err := s.Summarize(context.Background(), article)

	require.NoError(t, err)
	assert.Equal(t, "Transit plan approved.", summary)
	assert.Equal(t, "claude-sonnet-4-5-20250929", body.Model)
	assert.Equal(t, 1024, body.MaxTokens)
	require.Len(t, body.Messages, 1)
	require.Len(t, body.Messages[0].Content, 1)
	assert.Contains(t, body.Messages[0].Content[0].Text, "at most 300 characters")
	assert.Equal(t, []int{22}, rec.Lengths)
}

func TestClaude_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	s, _ := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"internal"}}`))
			return
		}
		writeClaudeMessage(w, textContent("Second try."))
	})

	summary, err := s.Summarize(context.Background(), article)

	require.NoError(t, err)
	assert.Equal(t, "Second try.", summary)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClaude_DoesNotRetryBadRequest(t *testing.T) {
	var calls atomic.Int32
	s, _ := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	})

	_, err := s.Summarize(context.Background(), article)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude api error")
	assert.Equal(t, int32(1), calls.Load())
}

func TestClaude_EmptyContent(t *testing.T) {
	s, rec := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		writeClaudeMessage(w, []map[string]any{})
	})

	_, err := s.Summarize(context.Background(), article)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty content")
	assert.Empty(t, rec.Lengths)
}

func TestClaude_RespectsContextCancellation(t *testing.T) {
	s, _ := newClaude(t, func(w http.ResponseWriter, r *http.Request) {
		writeClaudeMessage(w, textContent("never used"))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Summarize(ctx, article)

	assert.Error(t, err)
}
