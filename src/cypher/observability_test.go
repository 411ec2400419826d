package cypher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installTestProviders(t *testing.T) (*tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})
	return recorder, reader
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += int64(dp.Count)
				}
			}
		}
	}
	return sums
}

func TestCompileSpan(t *testing.T) {
	recorder, _ := installTestProviders(t)

	q, err := EntityQuery(person, movie)
	require.NoError(t, err)
	_, err = Compile(q)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "cypher.compile", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)

	kind, ok := spanAttr(span.Attributes(), "cypher.statement.kind")
	require.True(t, ok)
	assert.Equal(t, "query", kind.AsString())

	vars, ok := spanAttr(span.Attributes(), "cypher.variables.count")
	require.True(t, ok)
	assert.Equal(t, int64(2), vars.AsInt64())

	id, ok := spanAttr(span.Attributes(), "cypher.compile.id")
	require.True(t, ok)
	assert.Len(t, id.AsString(), 36)
}

func TestCompileSpanRecordsError(t *testing.T) {
	recorder, _ := installTestProviders(t)

	_, err := Render(NewBindParameter("x"))
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestCompileMetrics(t *testing.T) {
	_, reader := installTestProviders(t)

	q, err := EntityQuery(person, movie)
	require.NoError(t, err)
	_, err = Compile(q)
	require.NoError(t, err)
	_, err = Render(NewBindParameter("x"))
	require.Error(t, err)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(1), sums["cypher.compile.count"])
	assert.Equal(t, int64(1), sums["cypher.compile.errors"])
	assert.Equal(t, int64(2), sums["cypher.anonymous_variables"])
	assert.Equal(t, int64(2), sums["cypher.compile.duration"])
}

func TestTelemetryDisabled(t *testing.T) {
	recorder, reader := installTestProviders(t)

	_, err := Compile(NewNode(), WithObservability(&ObservabilityConfig{}))
	require.NoError(t, err)

	assert.Empty(t, recorder.Ended())
	assert.Empty(t, collectSums(t, reader))
}

func TestCachedCompileEmitsNoSpan(t *testing.T) {
	recorder, _ := installTestProviders(t)

	c, err := NewCypherCompiler(NewNode())
	require.NoError(t, err)
	_, err = c.Compile()
	require.NoError(t, err)
	_, err = c.Compile()
	require.NoError(t, err)

	assert.Len(t, recorder.Ended(), 1)
}

func TestDefaultObservabilityConfig(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	v, ok := spanAttr(cfg.TracingAttributes, "cypher.compiler")
	require.True(t, ok)
	assert.Equal(t, "cypherkit", v.AsString())

	oi := initObservability()
	assert.NotNil(t, oi.tracer)
	assert.NotNil(t, oi.compileDuration)
	assert.NotNil(t, oi.anonymousVariables)
}
