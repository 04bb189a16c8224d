package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the logger of one command run. Verbose runs log at
// debug level with timestamps; normal runs print only level and message.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
	})
}

// stages times the steps of a render. Each step is logged at debug level
// when it ends, the whole run once at info level.
type stages struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func startStages(l *log.Logger) *stages {
	now := time.Now()
	return &stages{logger: l, start: now, last: now}
}

// step logs the end of a step with the time since the previous one.
func (s *stages) step(msg string, keyvals ...any) {
	now := time.Now()
	s.logger.Debug(msg, append(keyvals, "took", now.Sub(s.last).Round(time.Microsecond))...)
	s.last = now
}

// finish logs msg with the time since startStages.
func (s *stages) finish(msg string, keyvals ...any) {
	s.logger.Info(msg, append(keyvals, "took", time.Since(s.start).Round(time.Millisecond))...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default() outside of a command run.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
