package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/modcache/internal/core/ports"
)

// Provider owns the SDK tracer provider whose spans are reported by a SpanLogger.
type Provider struct {
	tp    *sdktrace.TracerProvider
	spans *SpanLogger
}

// NewProvider creates a Provider logging spans through logger once enabled.
func NewProvider(logger ports.Logger) *Provider {
	spans := NewSpanLogger(logger)
	return &Provider{
		tp:    sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans)),
		spans: spans,
	}
}

// TracerProvider returns the underlying SDK provider.
func (p *Provider) TracerProvider() *sdktrace.TracerProvider {
	return p.tp
}

// Tracer returns a named tracer backed by the provider.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// SetEnabled switches span logging on or off.
func (p *Provider) SetEnabled(enable bool) {
	p.spans.SetEnabled(enable)
}

// Shutdown ends the provider. Spans started afterwards are dropped.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
