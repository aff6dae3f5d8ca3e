package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const defaultServiceName = "nftview"

// Provider owns the tracer provider used by a Recorder.
type Provider struct {
	sdk     *sdktrace.TracerProvider // nil when export is disabled
	tracing oteltrace.TracerProvider
}

// NewProvider exports to OTLP over HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is
// set. Otherwise spans are dropped.
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{tracing: noop.NewTracerProvider()}, nil
	}

	// The variable holds a URL (http://host:4318); the scheme decides TLS.
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	return NewProviderWithExporter(exporter), nil
}

// NewProviderWithExporter batches spans into exporter off the caller's
// goroutine, so Record never waits on the network. Tests pass an in-memory
// exporter and call ForceFlush before reading it.
func NewProviderWithExporter(exporter sdktrace.SpanExporter) *Provider {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{sdk: tp, tracing: tp}
}

// Enabled reports whether spans leave the process.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Recorder returns a Recorder backed by this provider.
func (p *Provider) Recorder() *Recorder {
	if p == nil {
		return NewRecorder(noop.NewTracerProvider())
	}
	return NewRecorder(p.tracing)
}

// ForceFlush exports every span recorded so far.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.ForceFlush(ctx)
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
