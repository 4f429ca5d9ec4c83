package config

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/jsdocmd/internal/foundation/normalization"
)

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logLevelNormalizer = normalization.NewNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

var logFormatNormalizer = normalization.NewNormalizer("log format", map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// NewLogger builds the slog logger described by l. verbose forces debug level.
func NewLogger(w io.Writer, l Logging, verbose bool) *slog.Logger {
	level := logLevelNormalizer.Normalize(l.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if logFormatNormalizer.Normalize(l.Format) == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
