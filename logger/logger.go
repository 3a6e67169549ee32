package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the shared service logger.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init applies the configured level and service name.
func Init(service, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Log = zerolog.New(os.Stdout).
		Level(lvl).
		With().Timestamp().Str("service", service).
		Logger()
}
