package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/jsdoc"
	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
	"git.home.luguber.info/inful/jsdocmd/internal/retry"
)

// DefaultCommand is the doc extractor invocation; the module path is appended.
const DefaultCommand = "npx jsdoc -X"

// Extractor produces the documentation entries of one compiled module.
type Extractor interface {
	Extract(ctx context.Context, file string) ([]jsdoc.Entry, error)
}

// CommandExtractor runs a jsdoc-compatible command that prints explain output.
type CommandExtractor struct {
	runner  Runner
	command []string
	policy  retry.Policy
	logger  *slog.Logger
	onRetry func()
}

// NewCommandExtractor splits command on whitespace; an empty command selects
// DefaultCommand.
func NewCommandExtractor(runner Runner, command string, policy retry.Policy, logger *slog.Logger) *CommandExtractor {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultCommand)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandExtractor{runner: runner, command: fields, policy: policy, logger: logger}
}

// SetRetryHook registers fn to be called before every retry.
func (e *CommandExtractor) SetRetryHook(fn func()) {
	e.onRetry = fn
}

// Extract runs the command for file, retrying retryable failures per the
// policy, and parses the output.
func (e *CommandExtractor) Extract(ctx context.Context, file string) ([]jsdoc.Entry, error) {
	args := append(append([]string{}, e.command[1:]...), file)

	var out []byte
	err := e.policy.Do(ctx, func(ctx context.Context) error {
		var runErr error
		out, runErr = e.runner.Run(ctx, e.command[0], args...)
		return runErr
	}, func(attempt int, err error) {
		e.logger.Warn("Doc extraction failed, retrying",
			logfields.File(file), logfields.Attempt(attempt), logfields.Error(err))
		if e.onRetry != nil {
			e.onRetry()
		}
	})
	if err != nil {
		return nil, ferrors.ToolchainError("extract documentation").WithCause(err).
			WithContext("file", file).
			Build()
	}

	entries, err := jsdoc.ParseExplain(out)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", file, err)
	}
	return entries, nil
}
