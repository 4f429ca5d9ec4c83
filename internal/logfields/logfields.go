package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDir        = "dir"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyAttempt    = "attempt"
	KeySections   = "sections"
	KeyChanged    = "changed"
	KeyError      = "error"
	KeyCategory   = "category"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Dir(d string) slog.Attr             { return slog.String(KeyDir, d) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func Command(c string) slog.Attr         { return slog.String(KeyCommand, c) }
func Attempt(n int) slog.Attr            { return slog.Int(KeyAttempt, n) }
func Sections(n int) slog.Attr           { return slog.Int(KeySections, n) }
func Changed(c bool) slog.Attr           { return slog.Bool(KeyChanged, c) }
func Duration(d time.Duration) slog.Attr { return slog.Int64(KeyDurationMS, d.Milliseconds()) }
func Category(c string) slog.Attr        { return slog.String(KeyCategory, c) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
