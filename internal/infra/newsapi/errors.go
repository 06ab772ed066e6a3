package newsapi

import (
	"errors"
	"net/http"
)

// User-facing failure messages.
const (
	MsgNetwork      = "An unexpected network error occurred."
	MsgMalformed    = "malformed response"
	MsgNoIdentifier = "response carried no identifier"
	MsgUnavailable  = "NewsWave API is temporarily unavailable"
)

// Error is the uniform failure returned by every Client operation. Transport
// errors, non-2xx statuses and undecodable bodies are all reported as *Error;
// the underlying cause, if any, is reachable through errors.Unwrap.
type Error struct {
	// Op is the request line, e.g. "POST /Publishers".
	Op string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Message is a human-readable summary suitable for display.
	Message string
	// Details is the decoded error body, or a best-effort description.
	Details any
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the response status code, or 0.
func (e *Error) HTTPStatus() int {
	return e.StatusCode
}

// IsClientError reports whether the upstream rejected the request with a 4xx.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// DetailMessage returns the upstream's own message when the error body
// carried one, falling back to Message.
func (e *Error) DetailMessage() string {
	if m, ok := e.Details.(map[string]any); ok {
		for _, key := range []string{"message", "title", "detail", "error"} {
			if s, ok := m[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if s, ok := e.Details.(string); ok && s != "" && e.StatusCode > 0 {
		return s
	}
	return e.Message
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// countsAgainstBreaker excludes 4xx responses: the upstream answered, so it
// is healthy.
func countsAgainstBreaker(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsClientError() {
		return false
	}
	return true
}

func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
