package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global logger. format is "console" or "json".
func InitLogger(level, format string) {
	InitLoggerTo(os.Stderr, level, format)
}

// InitLoggerTo is InitLogger with an explicit sink.
func InitLoggerTo(w io.Writer, level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(strings.TrimSpace(format)) != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Logger returns the global logger tagged with a module name.
func Logger(module string) *zerolog.Logger {
	l := log.Logger.With().Str("module", strings.ToUpper(module)).Logger()
	return &l
}

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	log.Info().
		Str("module", strings.ToUpper(module)).
		Str("action", action).
		Str("request_id", strings.TrimSpace(requestID)).
		Msg(message)
}

// LogError is LogEvent at error level with the cause attached.
func LogError(requestID, module, action string, err error) {
	log.Error().
		Err(err).
		Str("module", strings.ToUpper(module)).
		Str("action", action).
		Str("request_id", strings.TrimSpace(requestID)).
		Send()
}
