package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gorm.io/gorm/logger"
)

// New returns a tint-backed logger writing to w at the named level
// (debug, info, warn, error; anything else means info).
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			if s, ok := a.Value.Any().(string); ok && s == "" {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Gorm routes gorm's SQL logging through log. Statements are logged only at
// debug level; slow queries and errors at warn.
func Gorm(log *slog.Logger, level string) logger.Interface {
	lvl := logger.Warn
	if ParseLevel(level) == slog.LevelDebug {
		lvl = logger.Info
	}
	return logger.New(
		slog.NewLogLogger(log.With("component", "gorm").Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
