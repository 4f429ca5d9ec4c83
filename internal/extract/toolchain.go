package extract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
)

// Toolchain makes sure the manifest and compiled output exist before a run.
type Toolchain struct {
	Runner Runner
	Logger *slog.Logger

	CustomElements string   // manifest path
	OutputDir      string   // compiled output directory
	SrcDir         string   // source directory
	AnalyzeFlags   []string // already prefixed with "--"
}

// AnalyzeArgs is the npx argument list that generates the manifest.
func (t *Toolchain) AnalyzeArgs() []string {
	args := []string{"cem", "analyze"}
	args = append(args, t.AnalyzeFlags...)
	return append(args, "--outdir", filepath.Dir(t.CustomElements), "--globs", t.SrcDir+"/**")
}

// CompileArgs is the npx argument list that compiles TypeScript sources.
func (t *Toolchain) CompileArgs() []string {
	return []string{"-p", "typescript", "tsc"}
}

// Ensure runs the analyzer when the manifest is missing and the compiler
// when the output directory is missing.
func (t *Toolchain) Ensure(ctx context.Context) error {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	missing, err := isMissing(t.CustomElements)
	if err != nil {
		return err
	}
	if missing {
		args := t.AnalyzeArgs()
		logger.Warn("No custom elements manifest available. Attempting to generate",
			logfields.Path(t.CustomElements), logfields.Command(commandLine(args)))
		if _, err := t.Runner.Run(ctx, "npx", args...); err != nil {
			return ferrors.ToolchainError("generate custom elements manifest").WithCause(err).
				WithContext("path", t.CustomElements).
				Build()
		}
	}

	missing, err = isMissing(t.OutputDir)
	if err != nil {
		return err
	}
	if missing {
		args := t.CompileArgs()
		logger.Warn("Output directory not available. Attempting TypeScript compile",
			logfields.Dir(t.OutputDir), logfields.Command(commandLine(args)))
		if _, err := t.Runner.Run(ctx, "npx", args...); err != nil {
			return ferrors.ToolchainError("compile typescript sources").WithCause(err).
				WithContext("dir", t.OutputDir).
				Build()
		}
	}
	return nil
}

func commandLine(args []string) string {
	return strings.Join(append([]string{"npx"}, args...), " ")
}

func isMissing(p string) (bool, error) {
	_, err := os.Stat(p)
	switch {
	case err == nil:
		return false, nil
	case os.IsNotExist(err):
		return true, nil
	default:
		return false, ferrors.FileSystemError("stat path").WithCause(err).
			WithContext("path", p).
			Build()
	}
}
