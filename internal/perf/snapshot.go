package perf

import (
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type SpanSnapshot struct {
	Name         string                 `json:"name"`
	TraceID      string                 `json:"trace_id"`
	SpanID       string                 `json:"span_id"`
	ParentSpanID string                 `json:"parent_span_id,omitempty"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      time.Time              `json:"end_time"`
	DurationNS   int64                  `json:"duration_ns"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
}

// GetSpans returns the finished spans in the order they ended.
func GetSpans() []SpanSnapshot {
	ensureInitialized()
	spans := exporter.Snapshot()

	out := make([]SpanSnapshot, 0, len(spans))
	for _, span := range spans {
		out = append(out, snapshotSpan(span))
	}
	return out
}

func FindSpanByName(spans []SpanSnapshot, name string) (SpanSnapshot, bool) {
	for _, span := range spans {
		if span.Name == name {
			return span, true
		}
	}
	return SpanSnapshot{}, false
}

func snapshotSpan(span sdktrace.ReadOnlySpan) SpanSnapshot {
	sc := span.SpanContext()
	psc := span.Parent()

	out := SpanSnapshot{
		Name:       span.Name(),
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		StartTime:  span.StartTime(),
		EndTime:    span.EndTime(),
		DurationNS: span.EndTime().Sub(span.StartTime()).Nanoseconds(),
		Attributes: attributesToMap(span.Attributes()),
	}
	if psc.IsValid() {
		out.ParentSpanID = psc.SpanID().String()
	}
	return out
}

func attributesToMap(attrs []attribute.KeyValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}
