package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/seuros/cypherkit/src/cypher"
)

// telemetry installs stdout span and metric exporters as the global
// providers until Shutdown.
type telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider

	prevTracer trace.TracerProvider
	prevMeter  metric.MeterProvider
}

func setupTelemetry(w io.Writer) (*telemetry, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", "cyq"),
		attribute.String("service.version", cypher.Version()),
	)

	spanExporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create span exporter: %w", err)
	}
	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}

	t := &telemetry{
		tracerProvider: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(spanExporter),
			sdktrace.WithResource(res),
		),
		meterProvider: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
			sdkmetric.WithResource(res),
		),
		prevTracer: otel.GetTracerProvider(),
		prevMeter:  otel.GetMeterProvider(),
	}
	otel.SetTracerProvider(t.tracerProvider)
	otel.SetMeterProvider(t.meterProvider)
	return t, nil
}

// Shutdown flushes pending telemetry and restores the previous providers.
func (t *telemetry) Shutdown(ctx context.Context) error {
	otel.SetTracerProvider(t.prevTracer)
	otel.SetMeterProvider(t.prevMeter)
	return errors.Join(
		t.tracerProvider.Shutdown(ctx),
		t.meterProvider.Shutdown(ctx),
	)
}
