package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestLogger_AddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo)

	ctx := WithCorrelationID(context.Background(), "abc-123")
	logger.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc-123", rec["correlation_id"])
	assert.Equal(t, "hello", rec["msg"])
}

func TestLogger_WithAttrsKeepsContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo).With(slog.String("component", "seed"))

	logger.InfoContext(WithCorrelationID(context.Background(), "c-1"), "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "seed", rec["component"])
	assert.Equal(t, "c-1", rec["correlation_id"])
}

func TestLogger_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "json", slog.LevelInfo)

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	logger.InfoContext(ctx, "traced")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, span.SpanContext().TraceID().String(), rec["trace_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, ExtractCorrelationID(context.Background()))

	id := GenerateCorrelationID()
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, GenerateCorrelationID())
}

func TestRepoLogger_LogViolation(t *testing.T) {
	var buf bytes.Buffer
	prev := Logger
	Logger = NewLogger(&buf, "json", slog.LevelDebug)
	defer func() { Logger = prev }()

	NewRepoLogger("planets").LogViolation(context.Background(), errors.New("duplicate"), "create")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "planets", rec["table"])
	assert.Equal(t, "create", rec["operation"])
}

func TestTraceRepositoryMethod(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	layer := NewTraceLayer(tp.Tracer("test"), "sqlite")

	_, span := layer.TraceRepositoryMethod(context.Background(), "Create", "planets")
	EndSpan(span, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "repository.Create", spans[0].Name())
	assert.Len(t, spans[0].Events(), 1, "error should be recorded as an event")
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "holonet"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_Stdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := InitTracing(TracingConfig{
		ServiceName:  "holonet-test",
		Enabled:      true,
		Exporter:     "stdout",
		SamplerRatio: 1,
		Writer:       &buf,
	})
	require.NoError(t, err)

	_, span := Tracer.Start(context.Background(), "unit")
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "unit")
}

func TestTracingResource(t *testing.T) {
	res, err := tracingResource(TracingConfig{
		ServiceName:    "holonet",
		ServiceVersion: "1.2.0",
		Environment:    "test",
		DBSystem:       "sqlite",
	})
	require.NoError(t, err)

	set := res.Set()
	for key, want := range map[string]string{
		"service.name":           "holonet",
		"service.version":        "1.2.0",
		"deployment.environment": "test",
		"db.system":              "sqlite",
	} {
		got, ok := set.Value(attribute.Key(key))
		require.True(t, ok, key)
		assert.Equal(t, want, got.AsString(), key)
	}

	res, err = tracingResource(TracingConfig{ServiceName: "holonet"})
	require.NoError(t, err)
	_, ok := res.Set().Value("db.system")
	assert.False(t, ok)
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, "AlwaysOnSampler", newSampler(1).Description())
	assert.Contains(t, newSampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}

func TestConstraintViolationsCounter(t *testing.T) {
	before := testutil.ToFloat64(ConstraintViolations.WithLabelValues("vehicles", "unique"))
	ConstraintViolations.WithLabelValues("vehicles", "unique").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ConstraintViolations.WithLabelValues("vehicles", "unique")))
}

func TestTrackQuery(t *testing.T) {
	done := TrackQuery("GetByID", "track_query_test")
	done()
	assert.Equal(t, 1, testutil.CollectAndCount(DatabaseQueryLatency, "holonet_database_query_latency_seconds"))
}
