// Package telemetry turns OpenTelemetry spans into log lines.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/modcache/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*SpanLogger)(nil)

// SpanLogger implements sdktrace.SpanProcessor by logging every ended span through a
// ports.Logger. It stays silent until enabled.
type SpanLogger struct {
	logger  ports.Logger
	enabled atomic.Bool
}

// NewSpanLogger returns a disabled SpanLogger writing to logger.
func NewSpanLogger(logger ports.Logger) *SpanLogger {
	return &SpanLogger{logger: logger}
}

// SetEnabled switches span logging on or off.
func (l *SpanLogger) SetEnabled(enable bool) {
	l.enabled.Store(enable)
}

// OnStart does nothing; spans are reported once their duration is known.
func (l *SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the span name, duration, status and attributes.
// Failed spans are logged as warnings.
func (l *SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	if !l.enabled.Load() || !s.SpanContext().IsValid() {
		return
	}

	msg := FormatSpan(s)
	if s.Status().Code == codes.Error {
		l.logger.Warn(msg)
		return
	}
	l.logger.Info(msg)
}

// ForceFlush does nothing.
func (l *SpanLogger) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (l *SpanLogger) Shutdown(context.Context) error {
	return nil
}

// FormatSpan renders s as "trace <name> <status> <duration> key=value...".
func FormatSpan(s sdktrace.ReadOnlySpan) string {
	status := "ok"
	if s.Status().Code == codes.Error {
		status = "error"
		if desc := s.Status().Description; desc != "" {
			status += " (" + desc + ")"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "trace %s %s %s", s.Name(), status, s.EndTime().Sub(s.StartTime()).Round(time.Microsecond))
	for _, kv := range s.Attributes() {
		fmt.Fprintf(&b, " %s=%s", kv.Key, kv.Value.Emit())
	}
	return b.String()
}
