package middlewares

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"xuanxin.dev/backend-next/internal/constant"
)

// SentryHub returns the hub fibersentry attached to the request, nil when
// the sentry middleware did not run.
func SentryHub(c *fiber.Ctx) *sentry.Hub {
	hub, _ := c.Locals(constant.ContextKeySentryHub).(*sentry.Hub)
	return hub
}

// EnrichSentry tags the sentry hub with the request id and opens a
// transaction continuing any upstream trace.
func EnrichSentry() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(constant.SlimHeaderKey) != "" {
			return c.Next()
		}

		if hub := SentryHub(c); hub != nil {
			if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
				hub.Scope().SetTag("request_id", id)
			}
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		span := sentry.StartSpan(c.UserContext(), "http.server",
			sentry.ContinueFromRequest(&r),
			sentry.WithTransactionName(c.Method()+" "+c.Path()),
		)
		defer span.Finish()

		c.SetUserContext(span.Context())
		return c.Next()
	}
}
