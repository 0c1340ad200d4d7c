package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nats-io/nats-server/v2/server"
)

// InitLogger installs a JSON slog logger on stdout as the default.
func InitLogger(level slog.Level) {
	slog.SetDefault(newJSONLogger(os.Stdout, level))
}

func newJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: level}))
}

// natsLoggerAdapter routes embedded server logs into slog. Notices and
// traces are chatty, so they go out at debug level.
type natsLoggerAdapter struct {
	logger *slog.Logger
}

// NewNATSServerLogger wraps logger (slog.Default when nil) for the embedded server.
func NewNATSServerLogger(logger *slog.Logger) server.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &natsLoggerAdapter{logger: logger.With("component", "nats")}
}

func (nl *natsLoggerAdapter) log(level slog.Level, kind, format string, v ...any) {
	nl.logger.Log(context.Background(), level, fmt.Sprintf(format, v...), "nats_level", kind)
}

func (nl *natsLoggerAdapter) Noticef(format string, v ...any) {
	nl.log(slog.LevelDebug, "notice", format, v...)
}
func (nl *natsLoggerAdapter) Warnf(format string, v ...any) {
	nl.log(slog.LevelWarn, "warn", format, v...)
}
func (nl *natsLoggerAdapter) Errorf(format string, v ...any) {
	nl.log(slog.LevelError, "error", format, v...)
}
func (nl *natsLoggerAdapter) Fatalf(format string, v ...any) {
	nl.log(slog.LevelError, "fatal", format, v...)
}
func (nl *natsLoggerAdapter) Debugf(format string, v ...any) {
	nl.log(slog.LevelDebug, "debug", format, v...)
}
func (nl *natsLoggerAdapter) Tracef(format string, v ...any) {
	nl.log(slog.LevelDebug, "trace", format, v...)
}
