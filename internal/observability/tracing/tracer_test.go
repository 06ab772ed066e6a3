package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newRecorder(t *testing.T) (*tracetest.InMemoryExporter, trace.Tracer) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp.Tracer(TracerName)
}

func attrs(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestClientSpan_Success(t *testing.T) {
	exporter, tracer := newRecorder(t)

	_, span := StartClientSpan(context.Background(), tracer, "GET", "/api/Publishers")
	EndClientSpan(span, 200, nil)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "GET /api/Publishers", got.Name)
	assert.Equal(t, trace.SpanKindClient, got.SpanKind)
	assert.Equal(t, codes.Ok, got.Status.Code)

	a := attrs(got.Attributes)
	assert.Equal(t, "GET", a["http.method"].AsString())
	assert.Equal(t, "/api/Publishers", a["http.path"].AsString())
	assert.Equal(t, int64(200), a["http.status_code"].AsInt64())
}

func TestClientSpan_Error(t *testing.T) {
	exporter, tracer := newRecorder(t)

	_, span := StartClientSpan(context.Background(), tracer, "POST", "/api/Subscribers")
	EndClientSpan(span, 0, errors.New("connection refused"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, codes.Error, got.Status.Code)
	assert.Equal(t, "connection refused", got.Status.Description)
	_, hasStatus := attrs(got.Attributes)["http.status_code"]
	assert.False(t, hasStatus)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "exception", got.Events[0].Name)
}

func TestGetTracer(t *testing.T) {
	assert.NotNil(t, GetTracer())
}
