package configs

import (
	"log/slog"
	"strings"
)

// Logger configures the structured logger. Level sets the minimum emitted
// level ("debug", "info", "warn", "error"); Format selects the output
// encoding ("text" or "json"). Unknown values fall back to the defaults.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// SlogLevel converts the textual level into a slog.Level, defaulting to
// slog.LevelInfo for anything unrecognized.
func (c Logger) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SlogFormat normalizes the requested output format; anything but "json"
// yields "text".
func (c Logger) SlogFormat() string {
	if strings.EqualFold(c.Format, "json") {
		return "json"
	}
	return "text"
}
