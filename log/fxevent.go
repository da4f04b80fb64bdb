package log

import (
	"github.com/rs/zerolog"
	"go.uber.org/dig"
	"go.uber.org/fx/fxevent"
)

type fxLogger struct {
	logger *zerolog.Logger
}

// InitFxLogger returns an fx event logger writing to logger. Wiring is traced,
// lifecycle milestones are logged at info and every failure is logged as an
// error with its rendered report.
func InitFxLogger(logger *zerolog.Logger) fxevent.Logger {
	return fxLogger{logger: logger}
}

func (l fxLogger) failure(err error) *zerolog.Event {
	return l.logger.Error().Err(dig.RootCause(err)).Str("report", Report(err))
}

func (l fxLogger) hook(kind string, function string, caller string, err error, event *zerolog.Event) {
	if err != nil {
		l.failure(err).Str("callee", function).Str("caller", caller).Msg(kind + " hook failed")
		return
	}
	event.Str("callee", function).Str("caller", caller).Msg(kind + " hook executed")
}

func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.hook("OnStart", e.FunctionName, e.CallerName, e.Err, l.logger.Trace().Dur("runtime", e.Runtime))
	case *fxevent.OnStopExecuted:
		l.hook("OnStop", e.FunctionName, e.CallerName, e.Err, l.logger.Trace().Dur("runtime", e.Runtime))
	case *fxevent.Provided:
		if e.Err != nil {
			l.failure(e.Err).Str("constructor", e.ConstructorName).Msg("Provide failed")
		} else {
			l.logger.Trace().Str("constructor", e.ConstructorName).Strs("types", e.OutputTypeNames).Msg("Provided")
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			l.failure(e.Err).Str("function", e.FunctionName).Msg("Invoke failed")
		}
	case *fxevent.Stopping:
		l.logger.Info().Stringer("signal", e.Signal).Msg("Received signal")
	case *fxevent.Stopped:
		if e.Err != nil {
			l.failure(e.Err).Msg("Stop failed")
		}
	case *fxevent.RollingBack:
		l.failure(e.StartErr).Msg("Start failed, rolling back")
	case *fxevent.RolledBack:
		if e.Err != nil {
			l.failure(e.Err).Msg("Rollback failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			l.failure(e.Err).Msg("Start failed")
		} else {
			l.logger.Info().Msg("Started")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			l.failure(e.Err).Msg("Logger initialization failed")
		}
	}
}
