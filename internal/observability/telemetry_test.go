package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTelemetryDisabled(t *testing.T) {
	shutdown, err := InitTelemetry(context.Background(), false, "blockscene")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewTracerProviderSetsServiceName(t *testing.T) {
	ctx := context.Background()
	rec := tracetest.NewSpanRecorder()
	tp, err := NewTracerProvider(ctx, "blockscene-test", trace.WithSpanProcessor(rec))
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "op")
	span.End()
	require.NoError(t, tp.Shutdown(ctx))

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Resource().Attributes(), semconv.ServiceName("blockscene-test"))
}
