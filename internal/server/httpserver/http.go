package httpserver

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/helmet/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/constant"
	"xuanxin.dev/backend-next/internal/pkg/bininfo"
	"xuanxin.dev/backend-next/internal/pkg/fiberstore"
	"xuanxin.dev/backend-next/internal/pkg/middlewares"
	"xuanxin.dev/backend-next/internal/pkg/observability"
)

var registerPromOnce sync.Once

func Create(conf *appconfig.Config, redisClient *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Xuanxin Backend",
		ServerHeader: fmt.Sprintf("Xuanxin/%s", bininfo.Version),
		ReadTimeout:  time.Second * 20,
		WriteTimeout: time.Second * 20,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:             conf.HTTPServerShutdownTimeout,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          conf.TrustedProxies,
		ErrorHandler:            ErrorHandler,
		Immutable:               true,
		JSONEncoder:             json.Marshal,
		JSONDecoder:             json.Unmarshal,
	})

	app.Use(favicon.New())
	app.Use(fibersentry.New(fibersentry.Config{
		Repanic: true,
		Timeout: time.Second * 5,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, OPTIONS",
		AllowHeaders:  "Content-Type, Accept-Language, X-Requested-With, sentry-trace, traceparent, tracestate",
		ExposeHeaders: strings.Join([]string{
			"Content-Type",
			constant.RequestIDHeader,
			constant.CacheStatusHeader,
			constant.BirthKeyHeader,
			constant.RecordIDHeader,
		}, ", "),
	}))
	middlewares.Logger(app)
	// the logger middleware injects RequestID into the context,
	// and we need an extra middleware to extract it and repopulate it into ctx.Locals
	app.Use(middlewares.RequestID())

	app.Use(helmet.New(helmet.Config{
		HSTSMaxAge:         31356000,
		HSTSPreloadEnabled: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		PermissionPolicy:   "interest-cohort=()",
	}))
	app.Use(middlewares.InjectI18n())
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Str("evt.name", "http.panic").Msgf("panic: %v\n%s\n", e, buf)
		},
	}))
	registerPromOnce.Do(func() {
		fiberprom := fiberprometheus.New(observability.ServiceName)
		fiberprom.RegisterAt(app, "/metrics")
		app.Use(fiberprom.Middleware)
	})

	if conf.TracingEnabled {
		app.Use(middlewares.Tracing(otel.GetTracerProvider()))
	}

	if conf.DevMode {
		log.Info().Msg("Running in DEV mode")
		app.Use(pprof.New())
	}

	if !conf.DevMode {
		app.Use(middlewares.EnrichSentry())

		log.Info().Msg("enabling per-client limiter for chart computation endpoints.")
		app.Use(limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return !strings.HasPrefix(c.Path(), "/api/v1/bazi")
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    "TOO_MANY_REQUESTS",
					"message": "Your client is sending requests too frequently. Identical charts are cached and do not need to be requested again.",
				})
			},
			Max:        120,
			Expiration: time.Minute,
			Storage:    fiberstore.NewRedis(redisClient, "limiter"),
		}))
	}

	return app
}
