// Package newsapi is the gateway to the NewsWave HTTP API. It is the only
// package that performs remote calls, and it normalizes the API's varying
// response shapes into domain entities.
package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"newswave/internal/observability/logging"
	"newswave/internal/observability/metrics"
	"newswave/internal/observability/tracing"
	"newswave/internal/resilience/circuitbreaker"
	"newswave/internal/utils/text"
)

const (
	apiPrefix       = "/api"
	maxResponseSize = 10 << 20
)

// Config holds connection settings for the upstream API.
type Config struct {
	// BaseURL is the API origin, e.g. "https://news.example.com". Paths are
	// resolved under BaseURL + "/api".
	BaseURL string

	// Timeout bounds each request. Zero leaves the transport default.
	Timeout time.Duration

	// RateLimit caps outgoing requests per second. Zero disables throttling.
	RateLimit float64

	// Burst is the limiter bucket size. Values below 1 mean 1.
	Burst int

	// CircuitBreaker enables fail-fast behavior when the upstream keeps failing.
	CircuitBreaker bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithClock sets the clock used for publish-date fallbacks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracing.TracerName) }
}

// WithCircuitBreaker installs a specific breaker, overriding Config.CircuitBreaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// Client calls the NewsWave API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuitbreaker.CircuitBreaker
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// New creates a Client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return nil, fmt.Errorf("invalid api base url %q", cfg.BaseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(base.String(), "/") + apiPrefix,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
		tracer:     tracing.GetTracer(),
		now:        time.Now,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if cfg.CircuitBreaker {
		cbCfg := circuitbreaker.UpstreamAPIConfig()
		cbCfg.IsFailure = countsAgainstBreaker
		c.breaker = circuitbreaker.New(cbCfg)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// response is a successful upstream reply.
type response struct {
	status int
	body   []byte
	json   bool
}

// empty reports a no-content reply.
func (r response) empty() bool {
	return r.status == http.StatusNoContent || len(bytes.TrimSpace(r.body)) == 0
}

// text returns the body as trimmed raw text.
func (r response) text() string {
	return strings.TrimSpace(string(r.body))
}

// call performs one request and records metrics, a span and a log entry.
// op is the metric label; in, when non-nil, is sent as the JSON body.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, in any) (response, error) {
	start := time.Now()
	requestLine := method + " " + path
	requestID := uuid.New().String()

	ctx, span := tracing.StartClientSpan(ctx, c.tracer, method, apiPrefix+path)

	resp, err := c.execute(ctx, requestLine, requestID, method, path, query, in)

	status := resp.status
	outcome := metrics.Outcome(err)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		if circuitbreaker.IsRejection(apiErr.Err) {
			outcome = metrics.OutcomeRejected
		}
	}
	tracing.EndClientSpan(span, status, err)
	metrics.RecordAPICall(op, outcome, time.Since(start))
	if status > 0 {
		metrics.RecordAPIStatus(op, status)
	}

	logger := logging.WithRequestID(c.logger, requestID).With(
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)))
	if err != nil {
		logger.WarnContext(ctx, "api request failed", slog.Any("error", err), slog.Any("details", errDetails(err)))
		return response{}, err
	}
	logger.DebugContext(ctx, "api request completed")
	return resp, nil
}

func (c *Client) execute(ctx context.Context, requestLine, requestID, method, path string, query url.Values, in any) (response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return response{}, &Error{Op: requestLine, Message: MsgNetwork, Details: err.Error(), Err: err}
		}
	}

	if c.breaker == nil {
		return c.roundTrip(ctx, requestLine, requestID, method, path, query, in)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, requestLine, requestID, method, path, query, in)
	})
	if err != nil {
		if circuitbreaker.IsRejection(err) {
			return response{}, &Error{Op: requestLine, Message: MsgUnavailable, Details: err.Error(), Err: err}
		}
		return response{}, err
	}
	return result.(response), nil
}

func (c *Client) roundTrip(ctx context.Context, requestLine, requestID, method, path string, query url.Values, in any) (response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return response{}, &Error{Op: requestLine, Message: "failed to encode request", Err: err}
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return response{}, &Error{Op: requestLine, Message: MsgNetwork, Details: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, &Error{Op: requestLine, Message: MsgNetwork, Details: err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return response{}, &Error{
			Op:         requestLine,
			StatusCode: resp.StatusCode,
			Message:    MsgNetwork,
			Details:    err.Error(),
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := statusText(resp)
		var details any
		if err := json.Unmarshal(raw, &details); err != nil || details == nil {
			details = map[string]any{"message": reason}
		}
		return response{}, &Error{
			Op:         requestLine,
			StatusCode: resp.StatusCode,
			Message:    "API request failed: " + reason,
			Details:    details,
		}
	}

	return response{
		status: resp.StatusCode,
		body:   raw,
		json:   isJSON(resp.Header.Get("Content-Type")),
	}, nil
}

// decode unmarshals a successful body into v. Raw text bodies are attempted
// as JSON too, since some endpoints mislabel their content type.
func decode(requestLine string, resp response, v any) error {
	if err := json.Unmarshal(resp.body, v); err != nil {
		details := err.Error()
		if !resp.json {
			details = fmt.Sprintf("non-JSON body: %q", truncateForLog(resp.text()))
		}
		return &Error{
			Op:         requestLine,
			StatusCode: resp.status,
			Message:    MsgMalformed,
			Details:    details,
			Err:        err,
		}
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func errDetails(err error) any {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Details
	}
	return nil
}

func truncateForLog(s string) string {
	return text.Truncate(s, 200, "...")
}
