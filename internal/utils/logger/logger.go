package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/config"
)

// New returns the service logger for the given environment. A non-empty level
// (debug, info, warn, error) overrides the environment default.
func New(env string, level ...string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: pick(slog.LevelInfo, level)}))
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: pick(slog.LevelDebug, level)}))
	default:
		log = setupPrettySlog(pick(slog.LevelDebug, level))
	}

	return log
}

func setupPrettySlog(level ...slog.Level) *slog.Logger {
	lvl := slog.LevelDebug
	if len(level) > 0 {
		lvl = level[0]
	}

	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: lvl},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func pick(def slog.Level, level []string) slog.Level {
	if len(level) == 0 {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(level[0])) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return def
}
