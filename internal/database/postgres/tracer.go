package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// queryLogger forwards pgx trace events to zerolog.
type queryLogger struct {
	log zerolog.Logger
}

func (l queryLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var ev *zerolog.Event
	switch level {
	case tracelog.LogLevelTrace, tracelog.LogLevelDebug:
		ev = l.log.Debug()
	case tracelog.LogLevelInfo:
		ev = l.log.Info()
	case tracelog.LogLevelWarn:
		ev = l.log.Warn()
	default:
		ev = l.log.Error()
	}
	// args may carry password hashes
	delete(data, "args")
	ev.Fields(data).Msg(msg)
}

func traceLevel(lvl zerolog.Level) tracelog.LogLevel {
	switch {
	case lvl <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case lvl == zerolog.InfoLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
