package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// InitLogging sets up the global logger. When filePath is non-empty the log
// stream is duplicated to that file in addition to stderr.
func InitLogging(filePath string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var w io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			w = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr}, f)
		}
	}

	log = zerolog.New(w).With().Timestamp().Logger()
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	log.Info().Msgf(format, args...)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	log.Error().Msgf(format, args...)
}
