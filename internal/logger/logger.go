package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It discards output until Init is called.
var Logger = zerolog.Nop()

// Init configures the global logger. Unknown levels fall back to info.
func Init(level string, development bool) {
	Logger = New(os.Stdout, level, development)

	Logger.Info().
		Str("level", Logger.GetLevel().String()).
		Msg("logger initialized")
}

// New builds a logger writing to out. Console output is used in development.
func New(out io.Writer, level string, development bool) zerolog.Logger {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || logLevel == zerolog.NoLevel {
		logLevel = zerolog.InfoLevel
	}

	if development {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(logLevel).
		With().
		Timestamp().
		Logger()
}

// WithComponent returns a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
