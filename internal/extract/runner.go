// Package extract runs the external JavaScript toolchain: the manifest
// analyzer, the TypeScript compiler and the doc extractor.
package extract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec in Dir (the current directory when empty).
type ExecRunner struct {
	Dir string
}

// Run executes name with args. Failures are classified toolchain errors
// carrying the command line and captured stderr; a missing binary is a
// not_found error.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 -- command and arguments come from the project configuration
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}

	line := strings.Join(append([]string{name}, args...), " ")
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ferrors.NotFoundError("command not found").WithCause(err).
			WithContext("command", line).
			Build()
	}
	if ctx.Err() != nil {
		return nil, ferrors.ToolchainError("command cancelled").WithCause(ctx.Err()).
			WithRetry(ferrors.RetryNever).
			WithContext("command", line).
			Build()
	}
	return nil, ferrors.ToolchainError("command failed").WithCause(err).
		WithContext("command", line).
		WithContext("stderr", strings.TrimSpace(stderr.String())).
		Build()
}
