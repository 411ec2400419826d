package cypher

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/seuros/cypherkit/src/cypher"

// ObservabilityConfig controls telemetry collection
type ObservabilityConfig struct {
	// EnableTracing emits a span per compilation
	EnableTracing bool

	// EnableMetrics records compile duration and counters
	EnableMetrics bool

	// TracingAttributes are additional attributes to add to all spans
	TracingAttributes []attribute.KeyValue

	// MetricAttributes are additional attributes to add to all metrics
	MetricAttributes []attribute.KeyValue
}

// DefaultObservabilityConfig returns default observability configuration.
// Nothing is exported unless the host installs OpenTelemetry providers.
func DefaultObservabilityConfig() *ObservabilityConfig {
	return &ObservabilityConfig{
		EnableTracing: true,
		EnableMetrics: true,
		TracingAttributes: []attribute.KeyValue{
			attribute.String("cypher.compiler", "cypherkit"),
			attribute.String("cypher.compiler.version", LibraryVersion),
		},
		MetricAttributes: []attribute.KeyValue{
			attribute.String("cypher.compiler", "cypherkit"),
		},
	}
}

// observabilityInstruments holds OpenTelemetry instruments
type observabilityInstruments struct {
	tracer trace.Tracer
	meter  metric.Meter

	compileDuration    metric.Float64Histogram
	compileCount       metric.Int64Counter
	compileErrors      metric.Int64Counter
	anonymousVariables metric.Int64Counter
}

// initObservability initializes OpenTelemetry instruments
func initObservability() *observabilityInstruments {
	tracer := otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(LibraryVersion))
	meter := otel.Meter(instrumentationName, metric.WithInstrumentationVersion(LibraryVersion))

	oi := &observabilityInstruments{tracer: tracer, meter: meter}

	var err error
	oi.compileDuration, err = meter.Float64Histogram(
		"cypher.compile.duration",
		metric.WithDescription("Duration of statement compilation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}

	oi.compileCount, err = meter.Int64Counter(
		"cypher.compile.count",
		metric.WithDescription("Number of statements compiled"),
	)
	if err != nil {
		otel.Handle(err)
	}

	oi.compileErrors, err = meter.Int64Counter(
		"cypher.compile.errors",
		metric.WithDescription("Number of failed compilations"),
	)
	if err != nil {
		otel.Handle(err)
	}

	oi.anonymousVariables, err = meter.Int64Counter(
		"cypher.anonymous_variables",
		metric.WithDescription("Number of anonymous variable names generated"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return oi
}

// spanContext holds span-specific context information
type spanContext struct {
	span      trace.Span
	startTime time.Time
}

// compileStats is reported by renderers that track variables.
type compileStats struct {
	variables int
	anonymous int
}

func (oi *observabilityInstruments) startCompileSpan(ctx context.Context, kind Kind, compileID string, config *ObservabilityConfig) (context.Context, *spanContext) {
	if !config.EnableTracing {
		return ctx, &spanContext{startTime: time.Now()}
	}

	attrs := make([]attribute.KeyValue, 0, len(config.TracingAttributes)+2)
	attrs = append(attrs, config.TracingAttributes...)
	attrs = append(attrs,
		attribute.String("cypher.statement.kind", string(kind)),
		attribute.String("cypher.compile.id", compileID),
	)

	ctx, span := oi.tracer.Start(ctx, "cypher.compile",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, &spanContext{span: span, startTime: time.Now()}
}

func (oi *observabilityInstruments) finishCompileSpan(ctx context.Context, spanCtx *spanContext, kind Kind, stats compileStats, err error, config *ObservabilityConfig) time.Duration {
	duration := time.Since(spanCtx.startTime)

	if config.EnableMetrics {
		kindAttr := attribute.String("cypher.statement.kind", string(kind))
		statusAttr := attribute.String("cypher.compile.status", "success")
		if err != nil {
			statusAttr = attribute.String("cypher.compile.status", "error")
		}
		attrs := append(append([]attribute.KeyValue{}, config.MetricAttributes...), kindAttr, statusAttr)

		oi.compileDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
		if err != nil {
			oi.compileErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		} else {
			oi.compileCount.Add(ctx, 1, metric.WithAttributes(attrs...))
			if stats.anonymous > 0 {
				oi.anonymousVariables.Add(ctx, int64(stats.anonymous), metric.WithAttributes(config.MetricAttributes...))
			}
		}
	}

	if config.EnableTracing && spanCtx.span != nil {
		spanCtx.span.SetAttributes(
			attribute.Int("cypher.variables.count", stats.variables),
			attribute.Float64("cypher.compile.duration_ms", float64(duration.Nanoseconds())/1e6),
		)
		if err != nil {
			spanCtx.span.RecordError(err)
			spanCtx.span.SetStatus(codes.Error, err.Error())
		} else {
			spanCtx.span.SetStatus(codes.Ok, "")
		}
		spanCtx.span.End()
	}
	return duration
}
