package cacheflush

import (
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"xuanxin.dev/backend-next/internal/model/cache"
)

type CommandDeps struct {
	fx.In

	// Redis is only requested so that the caches are bound before flushing.
	Redis *redis.Client
}

func Command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:      "cache-flush",
		Usage:     "flush a named cache",
		ArgsUsage: "<name>...",
		Description: "flush one or more named caches, e.g. chartResult#birthKey or elementAdvisories",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("at least one cache name is required", 1)
			}
			if _, err := depsFn(); err != nil {
				return err
			}
			for _, name := range c.Args().Slice() {
				if err := cache.Delete(c.Context, name); err != nil {
					return fmt.Errorf("%w (known caches: %s)", err, strings.Join(cache.Names(), ", "))
				}
				log.Info().Str("evt.name", "cli.cache.flushed").Str("cache", name).Msg("cache flushed")
			}
			return nil
		},
	}
}
