package server

import (
	"context"
	"net"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/app"
	"xuanxin.dev/backend-next/internal/app/appconfig"
	"xuanxin.dev/backend-next/internal/app/appcontext"
)

func Run() {
	app.New(appcontext.Declare(appcontext.EnvServer), fx.Invoke(run)).Run()
}

func run(serviceApp *fiber.App, conf *appconfig.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.ServiceAddress)
			if err != nil {
				return err
			}

			go func() {
				if err := serviceApp.Listener(ln); err != nil {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			log.Info().
				Str("evt.name", "server.started").
				Str("address", conf.ServiceAddress).
				Msg("server started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if conf.DevMode {
				return nil
			}
			return serviceApp.ShutdownWithTimeout(conf.HTTPServerShutdownTimeout)
		},
	})
}
