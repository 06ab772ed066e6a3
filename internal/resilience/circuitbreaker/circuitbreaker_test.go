package circuitbreaker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          100 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func fail(cb *CircuitBreaker, err error, n int) {
	for i := 0; i < n; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, err })
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	require.NotNil(t, cb)
	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreaker_Execute_PassesThrough(t *testing.T) {
	cb := New(testConfig())

	got, err := cb.Execute(func() (interface{}, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	boom := errors.New("boom")
	got, err = cb.Execute(func() (interface{}, error) { return nil, boom })
	assert.Same(t, boom, err)
	assert.Nil(t, got)
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig())

	fail(cb, errors.New("upstream down"), 5)
	require.True(t, cb.IsOpen())

	called := false
	_, err := cb.Execute(func() (interface{}, error) {
		called = true
		return nil, nil
	})
	assert.False(t, called, "function must not run while open")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejection(err))
}

func TestCircuitBreaker_StaysClosedBelowMinRequests(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 10
	cb := New(cfg)

	fail(cb, errors.New("upstream down"), 4)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig())
	fail(cb, errors.New("upstream down"), 6)
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)

	_, err := cb.Execute(func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.NotEqual(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_IsFailureFiltersErrors(t *testing.T) {
	clientErr := errors.New("bad request")
	cfg := testConfig()
	cfg.IsFailure = func(err error) bool { return !errors.Is(err, clientErr) }
	cb := New(cfg)

	fail(cb, fmt.Errorf("wrapped: %w", clientErr), 10)
	assert.Equal(t, gobreaker.StateClosed, cb.State(), "ignored errors must not trip the circuit")

	fail(cb, errors.New("server error"), 20)
	assert.Equal(t, gobreaker.StateOpen, cb.State())
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(gobreaker.ErrOpenState))
	assert.True(t, IsRejection(fmt.Errorf("call: %w", gobreaker.ErrTooManyRequests)))
	assert.False(t, IsRejection(errors.New("boom")))
	assert.False(t, IsRejection(nil))
}

func TestPresetConfigs(t *testing.T) {
	tests := []struct {
		cfg  Config
		name string
	}{
		{cfg: UpstreamAPIConfig(), name: "newswave-api"},
		{cfg: ClaudeAPIConfig(), name: "claude-api"},
		{cfg: OpenAIAPIConfig(), name: "openai-api"},
		{cfg: DefaultConfig("custom"), name: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cfg.Name)
			assert.Positive(t, tt.cfg.MaxRequests)
			assert.Positive(t, tt.cfg.MinRequests)
			assert.Greater(t, tt.cfg.Timeout, time.Duration(0))
			assert.InDelta(t, 0.6, tt.cfg.FailureThreshold, 0.001)
		})
	}
}
