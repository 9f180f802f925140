package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"chngfilter/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOTelInitialization(t *testing.T) {
	cfg := config.Default().Telemetry
	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider, "trace exporter none keeps the no-op tracer")
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.PrometheusHTTP)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestOTelInitialization_StdoutTracer(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "stdout"
	cfg.MetricsEnabled = false

	providers, err := InitializeOTel(cfg, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.NotNil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)

	rec := httptest.NewRecorder()
	providers.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOTelInitialization_UnknownExporter(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.TraceExporter = "zipkin"

	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestFilterMetrics_PrometheusExposition(t *testing.T) {
	providers, err := InitializeOTel(config.Default().Telemetry, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := NewFilterMetrics(providers.Meter)
	require.NoError(t, err)
	metrics.RecordInvocation(context.Background(), "split", 3*time.Millisecond, map[string]int{"positive": 2, "negative": 1})

	rec := httptest.NewRecorder()
	providers.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "filter_invocations_total")
	assert.Contains(t, body, "filter_rows_matched_total")
	assert.Contains(t, body, "filter_duration_seconds")
	assert.Contains(t, body, `subset="positive"`)
}

func TestFilterMetrics_RecordInvocation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	metrics, err := NewFilterMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordInvocation(ctx, "highlight", time.Millisecond, map[string]int{"highlighted": 3})
	metrics.RecordInvocation(ctx, "highlight", time.Millisecond, map[string]int{"highlighted": 2})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	sums := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(2), sums["filter_invocations"])
	assert.Equal(t, int64(5), sums["filter_rows_matched"])
}

func TestFilterMetrics_NilIsNoop(t *testing.T) {
	var metrics *FilterMetrics
	assert.NotPanics(t, func() {
		metrics.RecordInvocation(context.Background(), "split", time.Second, nil)
	})
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(ctx, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)

	// No span in context: nothing to record, nothing to panic on.
	assert.NotPanics(t, func() { RecordError(context.Background(), errors.New("x")) })
}
