package repository

import (
	"context"
	"errors"
	"testing"

	"holonet/internal/models"
	"holonet/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultListLimit, clampLimit(0))
	assert.Equal(t, 1, clampLimit(1))
	assert.Equal(t, maxListLimit, clampLimit(maxListLimit+1))
	assert.Equal(t, 0, clampOffset(-3))
	assert.Equal(t, 40, clampOffset(40))
}

func TestRepository_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := observability.Tracer
	observability.Tracer = tp.Tracer("test")
	t.Cleanup(func() { observability.Tracer = prev })

	s := newTestStore(t)
	_, err := s.Planets.GetByID(context.Background(), 77)
	require.ErrorIs(t, err, models.ErrNotFound)

	spans := recorder.Ended()
	require.NotEmpty(t, spans)
	span := spans[len(spans)-1]
	assert.Equal(t, "repository.GetByID", span.Name())
	assert.Contains(t, span.Attributes(), attribute.String("db.system", "sqlite"))
	assert.Contains(t, span.Attributes(), attribute.String("db.table", "planets"))
	assert.Equal(t, "Error", span.Status().Code.String())
}

func TestRepository_CountsViolations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	counter := observability.ConstraintViolations.WithLabelValues("vehicles", "unique")
	before := testutil.ToFloat64(counter)

	require.NoError(t, s.Vehicles.Create(ctx, &models.Vehicle{Name: "AT-AT"}))
	err := s.Vehicles.Create(ctx, &models.Vehicle{Name: "AT-AT"})
	require.ErrorIs(t, err, models.ErrUniqueViolation)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestWriteErr_WrapsUnknownFailures(t *testing.T) {
	s := newTestStore(t)
	b := newBase(s.DB(), "users")

	err := b.writeErr(context.Background(), "Create", errors.New("disk on fire"))
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)

	assert.NoError(t, b.writeErr(context.Background(), "Create", nil))
}
