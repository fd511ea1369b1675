package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the service logger. In development it writes human-readable
// console output; elsewhere it emits JSON lines for log collectors.
func New(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var l zerolog.Logger
	if appEnv == "production" {
		l = zerolog.New(os.Stdout)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return l.Level(level).With().Timestamp().Str("service", "daunku").Logger()
}
