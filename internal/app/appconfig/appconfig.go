package appconfig

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"xuanxin.dev/backend-next/internal/app/appcontext"
	"xuanxin.dev/backend-next/internal/pkg/projectpath"
)

// EnvPrefix prefixes every configuration variable, e.g. XUANXIN_V1_POSTGRES_DSN.
const EnvPrefix = "xuanxin_v1"

func Parse(ctx appcontext.Ctx) (*Config, error) {
	err := godotenv.Load(filepath.Join(projectpath.Root, ".env"))
	if err != nil {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	var config ConfigSpec
	err = envconfig.Process(EnvPrefix, &config)
	if err != nil {
		_ = envconfig.Usage(EnvPrefix, &config)
		return nil, fmt.Errorf("failed to parse configuration: %w. More info on how to configure this backend is located at https://pkg.go.dev/xuanxin.dev/backend-next/internal/app/appconfig#ConfigSpec", err)
	}

	return &Config{
		ConfigSpec: config,
		AppContext: ctx,
	}, nil
}
