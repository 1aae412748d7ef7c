// Package perf records OpenTelemetry spans in memory so a run can dump its
// own timings with --perf.
package perf

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/meza/coverage-gate/internal/constants"
)

var (
	initOnce sync.Once
	exporter *spanExporter
	tracer   trace.Tracer
)

func ensureInitialized() {
	initOnce.Do(func() {
		exporter = newSpanExporter()
		provider := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		tracer = provider.Tracer(constants.AppName)
	})
}

// StartSpan opens a span as a child of whatever span ctx carries.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ensureInitialized()
	if ctx == nil {
		ctx = context.Background()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Reset drops every recorded span (tests only).
func Reset() {
	ensureInitialized()
	exporter.Reset()
}

type spanExporter struct {
	mu    sync.Mutex
	spans []sdktrace.ReadOnlySpan
}

func newSpanExporter() *spanExporter {
	return &spanExporter{
		spans: make([]sdktrace.ReadOnlySpan, 0),
	}
}

func (exporter *spanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	exporter.spans = append(exporter.spans, spans...)
	return nil
}

func (exporter *spanExporter) Shutdown(context.Context) error {
	return nil
}

func (exporter *spanExporter) Reset() {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	exporter.spans = exporter.spans[:0]
}

func (exporter *spanExporter) Snapshot() []sdktrace.ReadOnlySpan {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()

	out := make([]sdktrace.ReadOnlySpan, len(exporter.spans))
	copy(out, exporter.spans)
	return out
}
