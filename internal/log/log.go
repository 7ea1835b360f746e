// Package log configures the zerolog logger shared by mfpack commands.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the log level when no explicit level is configured.
const EnvLogLevel = "MFPACK_LOG_LEVEL"

// Config captures options for configuring the base logger.
type Config struct {
	Level  string    // optional level name ("debug", "info", ...)
	Output io.Writer // optional writer, defaults to stderr
	Pretty bool      // human-readable console output instead of JSON
}

var (
	once sync.Once
	base zerolog.Logger
)

// Configure initialises the base logger exactly once. Later calls are no-ops,
// so commands may call it unconditionally.
func Configure(cfg Config) {
	once.Do(func() {
		level := zerolog.WarnLevel
		name := cfg.Level
		if name == "" {
			name = os.Getenv(EnvLogLevel)
		}
		if name != "" {
			if parsed, err := zerolog.ParseLevel(name); err == nil {
				level = parsed
			}
		}
		zerolog.SetGlobalLevel(level)
		zerolog.TimeFieldFormat = time.RFC3339

		writer := cfg.Output
		if writer == nil {
			writer = os.Stderr
		}
		if cfg.Pretty {
			writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
		}

		base = zerolog.New(writer).With().Timestamp().Logger()
	})
}

// WithComponent returns a child logger annotated with the given component
// name, configuring defaults first if needed.
func WithComponent(component string) zerolog.Logger {
	Configure(Config{})
	return base.With().Str("component", component).Logger()
}
