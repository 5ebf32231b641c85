package logger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

type fxLogger struct {
	l zerolog.Logger
}

var _ fxevent.Logger = (*fxLogger)(nil)

// Fx routes fx lifecycle events through the global zerolog logger.
func Fx() fxevent.Logger {
	return &fxLogger{
		l: log.Logger.
			With().
			Str("evt.name", "fx.init").
			Logger(),
	}
}

func (f *fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStart hook failed")
			return
		}
		f.l.Debug().Str("callee", e.FunctionName).Dur("runtime", e.Runtime).Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("callee", e.FunctionName).Str("caller", e.CallerName).Msg("OnStop hook failed")
			return
		}
		f.l.Debug().Str("callee", e.FunctionName).Dur("runtime", e.Runtime).Msg("OnStop hook executed")
	case *fxevent.Provided:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("constructor", e.ConstructorName).Msg("error encountered while applying options")
			return
		}
		f.l.Trace().Str("constructor", e.ConstructorName).Str("types", strings.Join(e.OutputTypeNames, ", ")).Msg("provided")
	case *fxevent.Invoked:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Str("function", e.FunctionName).Str("stack", e.Trace).Msg("invoke failed")
			return
		}
		f.l.Trace().Str("function", e.FunctionName).Msg("invoked")
	case *fxevent.Stopping:
		f.l.Info().Str("signal", strings.ToUpper(e.Signal.String())).Msg("received signal")
	case *fxevent.RollingBack:
		f.l.Error().Err(e.StartErr).Msg("start failed, rolling back")
	case *fxevent.Started:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Msg("start failed")
			return
		}
		f.l.Info().Msg("started")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			f.l.Error().Err(e.Err).Msg("custom logger initialization failed")
		}
	}
}
