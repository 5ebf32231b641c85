package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"xuanxin.dev/backend-next/internal/app/appconfig"
)

// Configure replaces the global logger. It runs before the fx graph is
// built since providers log while they are constructed.
func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	// rotated by size; old files are gzipped
	logFile := &lumberjack.Logger{
		Filename:   "logs/app.log",
		MaxSize:    100,
		MaxBackups: 10,
		MaxAge:     30,
		Compress:   true,
	}

	level := zerolog.DebugLevel
	if conf.DevMode {
		level = zerolog.TraceLevel
	}

	var stdout io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339Nano,
	}
	if conf.LogJsonStdout {
		stdout = os.Stdout
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(logFile, stdout)).
		With().
		Timestamp().
		Str("env", conf.AppContext.Env.String()).
		Logger().
		Level(level)
}
