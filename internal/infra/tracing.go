package infra

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/pkg/bininfo"
	"xuanxin.dev/backend-next/internal/pkg/observability"
)

func newExporter(ctx context.Context, name string, w io.Writer) (tracesdk.SpanExporter, error) {
	switch name {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	case "otlp":
		return otlptracegrpc.New(ctx)
	default:
		return nil, errors.Errorf("unknown tracing exporter %q", name)
	}
}

// NewTracerProvider builds a provider batching spans to every named exporter.
func NewTracerProvider(ctx context.Context, conf *appconfig.Config, w io.Writer) (*tracesdk.TracerProvider, error) {
	opts := []tracesdk.TracerProviderOption{
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(conf.TracingSampleRate))),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(observability.ServiceName),
			semconv.ServiceVersionKey.String(bininfo.Version),
			attribute.String("environment", conf.AppContext.Env.String()),
		)),
	}
	for _, name := range conf.TracingExporters {
		exporter, err := newExporter(ctx, name, w)
		if err != nil {
			return nil, errors.Wrap(err, "infra: tracing")
		}
		opts = append(opts, tracesdk.WithBatcher(exporter))
	}
	return tracesdk.NewTracerProvider(opts...), nil
}

// TracingInit installs the global tracer provider with side-effect. It is a
// no-op unless tracing is enabled; spans then go to the default noop provider.
func TracingInit(lc fx.Lifecycle, conf *appconfig.Config) error {
	if !conf.TracingEnabled {
		log.Debug().Msg("Tracing is disabled.")
		return nil
	}
	log.Info().Strs("exporters", conf.TracingExporters).Msg("Initializing tracing...")

	tp, err := NewTracerProvider(context.Background(), conf, os.Stdout)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return nil
}
