// Package telemetry wires the OpenTelemetry tracer provider used by the CLI.
// Library code obtains tracers through the otel global, so embedding callers
// that install no provider pay only for noop spans.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/openbsp/openbsp/internal/build"
)

type TracerOption func(c *config)

func WithOTLPEndpoint(endpoint string) TracerOption {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

func WithServiceName(serviceName string) TracerOption {
	return func(c *config) {
		c.serviceName = serviceName
	}
}

func WithSamplingRatio(samplingRatio float64) TracerOption {
	return func(c *config) {
		c.samplingRatio = samplingRatio
	}
}

type config struct {
	endpoint      string
	serviceName   string
	samplingRatio float64
}

// MustNewTracerProvider builds an OTLP/gRPC-exporting tracer provider,
// installs it as the otel global and returns it. It panics when the exporter
// cannot be constructed.
func MustNewTracerProvider(opts ...TracerOption) *sdktrace.TracerProvider {
	cfg := &config{
		serviceName: build.ProjectName,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(cfg.serviceName),
			semconv.ServiceVersionKey.String(build.Version),
		))
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.endpoint),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to establish a connection with the otlp exporter: %v", err))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.samplingRatio)),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(exp)),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tp)

	return tp
}

// TraceError records err on the span and marks its status accordingly.
func TraceError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
