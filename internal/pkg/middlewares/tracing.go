package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"xuanxin.dev/backend-next/internal/pkg/observability"
)

// fiberCarrier exposes the request headers to the propagators.
type fiberCarrier struct{ c *fiber.Ctx }

func (f fiberCarrier) Get(key string) string { return f.c.Get(key) }

func (f fiberCarrier) Set(key, value string) { f.c.Request().Header.Set(key, value) }

func (f fiberCarrier) Keys() []string {
	var keys []string
	f.c.Request().Header.VisitAll(func(k, _ []byte) {
		keys = append(keys, string(k))
	})
	return keys
}

// Tracing opens a server span per request named "HTTP <method> <route>",
// continuing any trace the caller propagated.
func Tracing(tp trace.TracerProvider) fiber.Handler {
	tracer := tp.Tracer(observability.ServiceName)

	return func(c *fiber.Ctx) error {
		ctx := otel.GetTextMapPropagator().Extract(c.UserContext(), fiberCarrier{c})
		ctx, span := tracer.Start(ctx, "HTTP "+c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethodKey.String(c.Method()),
				semconv.HTTPTargetKey.String(string(c.Request().RequestURI())),
			),
		)
		defer span.End()
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			// run the error handler here so the span sees the final status
			span.RecordError(err)
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, utils.StatusMessage(status))
		}
		if route := c.Route(); route != nil && route.Path != "" {
			span.SetName("HTTP " + c.Method() + " " + route.Path)
		}
		return nil
	}
}
