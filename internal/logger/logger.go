// Package logger builds the application's zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yukikurage/task-web/internal/config"
)

// New returns a logger for env writing to os.Stdout.
func New(env string) zerolog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New with an explicit destination. Local runs get a
// human-readable console writer and trace level; dev logs debug; everything
// else logs info as JSON.
func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	zerolog.TimestampFieldName = "timestamp"

	level := zerolog.InfoLevel
	switch env {
	case config.EnvLocal:
		level = zerolog.TraceLevel
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	case config.EnvDev:
		level = zerolog.DebugLevel
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("env", env).
		Int("pid", os.Getpid()).
		Logger()
}
