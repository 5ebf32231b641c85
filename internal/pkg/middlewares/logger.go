package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/pkg/flog"
)

func Logger(app *fiber.App) {
	Chained(
		app,
		flog.NewHandlerMiddleware(log.With().Logger()),
		flog.RequestIDHandler("request_id", constant.RequestIDHeader),
		flog.RemoteAddrHandler("ip"),
		flog.MethodHandler("method"),
		flog.URLHandler("url"),
		flog.UserAgentHandler("user_agent"),
		requestLogger(),
	)
}

func requestLogger() fiber.Handler {
	return flog.AccessHandler(func(ctx *fiber.Ctx, duration time.Duration) {
		flog.InfoFrom(ctx).
			Str("evt.name", "http.request").
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", duration).
			Msg("received request")
	})
}

// Chained registers the handlers on app in order.
func Chained(app *fiber.App, handlers ...fiber.Handler) {
	for _, h := range handlers {
		app.Use(h)
	}
}
