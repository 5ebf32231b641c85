package service

import (
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var (
	recorderOnce sync.Once
	recorder     *tracetest.SpanRecorder
)

// spanRecorder installs a recording global tracer provider once per test
// binary; tracers already handed out keep delegating to the first one.
func spanRecorder() *tracetest.SpanRecorder {
	recorderOnce.Do(func() {
		recorder = tracetest.NewSpanRecorder()
		otel.SetTracerProvider(tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder)))
	})
	return recorder
}

// endedSpan returns the last ended span of the name, optionally narrowed to
// the spans tagged with the birth key.
func endedSpan(t *testing.T, r *tracetest.SpanRecorder, name, birthKey string) tracesdk.ReadOnlySpan {
	t.Helper()
	spans := lo.Filter(r.Ended(), func(s tracesdk.ReadOnlySpan, _ int) bool {
		if s.Name() != name {
			return false
		}
		if birthKey == "" {
			return true
		}
		return lo.SomeBy(s.Attributes(), func(kv attribute.KeyValue) bool {
			return kv.Key == "chart.birth_key" && kv.Value.AsString() == birthKey
		})
	})
	require.NotEmpty(t, spans, "no ended span %s", name)
	return spans[len(spans)-1]
}
