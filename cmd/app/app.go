package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	cliapp "xuanxin.dev/backend-next/cmd/app/cli"
	"xuanxin.dev/backend-next/cmd/app/cli/cacheflush"
	"xuanxin.dev/backend-next/cmd/app/cli/chart"
	"xuanxin.dev/backend-next/cmd/app/cli/migrate"
	"xuanxin.dev/backend-next/cmd/app/server"
	"xuanxin.dev/backend-next/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "xuanxin",
		Description: "The Xuanxin BaZi profile backend. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS JetStream to archive computed profiles and Redis as the result cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			chart.Command(),
			migrate.Command(cliapp.DepsFn[migrate.CommandDeps]()),
			cacheflush.Command(cliapp.DepsFn[cacheflush.CommandDeps]()),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
