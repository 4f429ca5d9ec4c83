package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", ValidationError("bad input").Build(), 2},
		{"not found", NotFoundError("missing").Build(), 3},
		{"config", ConfigError("bad config").Build(), 7},
		{"toolchain", ToolchainError("tsc failed").Build(), 8},
		{"internal", InternalError("boom").Build(), 10},
		{"manifest", ManifestError("unreadable").Build(), 11},
		{"wrapped filesystem", fmt.Errorf("write: %w", FileSystemError("denied").Build()), 11},
		{"unclassified", errors.New("unknown"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, slog.Default())
	verbose := NewCLIErrorAdapter(true, slog.Default())
	cause := errors.New("exit status 2")
	toolErr := ToolchainError("tsc failed").WithCause(cause).Build()
	jsdocErr := ToolchainError("command failed").
		WithCause(cause).
		WithContext("stderr", "ERROR: Unable to parse button.js").
		Build()

	tests := []struct {
		name     string
		adapter  *CLIErrorAdapter
		err      error
		contains string
	}{
		{"internal hidden", quiet, InternalError("nil map").Build(), "Internal error occurred (use -v for details)"},
		{"message only", quiet, toolErr, "Error: tsc failed"},
		{"verbose includes cause", verbose, toolErr, "exit status 2"},
		{"tool stderr shown", quiet, jsdocErr, "Error: command failed\nERROR: Unable to parse button.js"},
		{"unclassified", quiet, errors.New("unknown error"), "Error: unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.adapter.FormatError(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("FormatError() = %q, want to contain %q", got, tt.contains)
			}
		})
	}

	if got := quiet.FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty", got)
	}
}
