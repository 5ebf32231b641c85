package migrate

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/repo"
)

type CommandDeps struct {
	fx.In

	ChartRecordRepo *repo.ChartRecord
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "create the archive tables and indexes",
		Description: "create the chart_records table and its indexes when they do not exist yet",
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}
			if err := deps.ChartRecordRepo.CreateSchema(c.Context); err != nil {
				return err
			}
			log.Info().Str("evt.name", "cli.migrate.done").Msg("schema is up to date")
			return nil
		},
	}
}
