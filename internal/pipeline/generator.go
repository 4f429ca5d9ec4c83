// Package pipeline runs one README generation pass: toolchain bootstrap,
// manifest grouping, per-module extraction and rendering, and writing.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/jsdocmd/internal/config"
	"git.home.luguber.info/inful/jsdocmd/internal/extract"
	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
	"git.home.luguber.info/inful/jsdocmd/internal/manifest"
	"git.home.luguber.info/inful/jsdocmd/internal/metrics"
	"git.home.luguber.info/inful/jsdocmd/internal/output"
	"git.home.luguber.info/inful/jsdocmd/internal/render"
)

// Stage names used in logs and metrics.
const (
	StageToolchain = "toolchain"
	StageManifest  = "manifest"
	StageRender    = "render"
	StageWrite     = "write"
)

// Ensurer prepares the inputs a run depends on.
type Ensurer interface {
	Ensure(ctx context.Context) error
}

// DocumentWriter stores a rendered document.
type DocumentWriter interface {
	Write(dir, name, content string) (output.Result, error)
}

// Generator renders one README per manifest directory.
type Generator struct {
	cfg       *config.Config
	toolchain Ensurer
	extractor extract.Extractor
	writer    DocumentWriter
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithToolchain replaces the external toolchain bootstrap.
func WithToolchain(t Ensurer) Option { return func(g *Generator) { g.toolchain = t } }

// WithExtractor replaces the doc extractor.
func WithExtractor(e extract.Extractor) Option { return func(g *Generator) { g.extractor = e } }

// WithWriter replaces the document writer.
func WithWriter(w DocumentWriter) Option { return func(g *Generator) { g.writer = w } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(g *Generator) { g.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(g *Generator) { g.logger = l } }

// NewGenerator wires a Generator from cfg. Collaborators not supplied through
// options run the real toolchain in the working directory.
func NewGenerator(cfg *config.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:      cfg,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}

	runner := extract.ExecRunner{}
	if g.toolchain == nil {
		g.toolchain = &extract.Toolchain{
			Runner:         runner,
			Logger:         g.logger,
			CustomElements: cfg.CustomElements,
			OutputDir:      cfg.Dir,
			SrcDir:         cfg.SrcDir,
			AnalyzeFlags:   cfg.AnalyzerFlags(),
		}
	}
	if g.extractor == nil {
		ex := extract.NewCommandExtractor(runner, cfg.JSDocCommand, cfg.RetryPolicy(), g.logger)
		ex.SetRetryHook(g.recorder.IncExtractRetry)
		g.extractor = ex
	}
	if g.writer == nil {
		g.writer = output.Writer{}
	}
	return g
}

// RenderOptions derives the renderer options from the configuration.
func RenderOptions(cfg *config.Config) render.Options {
	return render.Options{
		KeepImports:    cfg.KeepImports,
		ImportRoot:     cfg.ImportRoot,
		OutputDir:      cfg.Dir,
		FenceLanguages: cfg.FenceLanguages,
	}
}

// Filter derives the manifest filter from the configuration.
func Filter(cfg *config.Config) manifest.Filter {
	return manifest.Filter{
		ExcludePaths: cfg.ExcludePaths,
		ExcludeKinds: cfg.ExcludeKinds,
	}
}

// Run performs one generation pass.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}
	logger := g.logger.With(logfields.RunID(report.RunID))
	start := time.Now()

	err := g.run(ctx, logger, report)

	report.Duration = time.Since(start)
	g.recorder.ObserveRunDuration(report.Duration)
	g.recorder.IncRunOutcome(metrics.ResultFor(err, ctx.Err() != nil))
	if err != nil {
		logger.Error("Generation failed",
			logfields.Error(err),
			logfields.Category(string(ferrors.GetCategory(err))),
			logfields.Duration(report.Duration))
		return report, err
	}
	logger.Info("Generation complete",
		slog.Int("documents", len(report.Documents)),
		slog.Int("changed", report.Changed()),
		logfields.Duration(report.Duration))
	return report, nil
}

func (g *Generator) run(ctx context.Context, logger *slog.Logger, report *Report) error {
	if err := g.stage(ctx, StageToolchain, func(ctx context.Context) error {
		return g.toolchain.Ensure(ctx)
	}); err != nil {
		return err
	}

	var groups []manifest.Group
	if err := g.stage(ctx, StageManifest, func(context.Context) error {
		m, err := manifest.Load(g.cfg.CustomElements)
		if err != nil {
			return err
		}
		groups = m.Group(Filter(g.cfg))
		return nil
	}); err != nil {
		return err
	}
	logger.Debug("Manifest grouped",
		slog.Int("groups", len(groups)),
		slog.Any("dirs", manifest.Dirs(groups)),
		logfields.Path(g.cfg.CustomElements))

	opts := RenderOptions(g.cfg)
	for _, group := range groups {
		var sections []render.Section
		if err := g.stage(ctx, StageRender, func(ctx context.Context) error {
			var err error
			sections, err = g.renderGroup(ctx, group, opts)
			return err
		}); err != nil {
			return err
		}
		g.recorder.AddSections(len(sections))

		doc := render.AssembleDocument(sections)
		var res output.Result
		if err := g.stage(ctx, StageWrite, func(context.Context) error {
			var err error
			res, err = g.writer.Write(group.Dir, g.cfg.OutFile, string(doc))
			return err
		}); err != nil {
			return err
		}
		g.recorder.IncDocument(res.Changed)

		report.Documents = append(report.Documents, DocumentReport{
			Dir:      group.Dir,
			Path:     res.Path,
			Sections: len(sections),
			Changed:  res.Changed,
			Digest:   res.Digest,
		})
		level := slog.LevelDebug
		if res.Changed {
			level = slog.LevelInfo
		}
		logger.Log(ctx, level, "Document processed",
			logfields.Path(res.Path), logfields.Sections(len(sections)), logfields.Changed(res.Changed))
	}
	return nil
}

// renderGroup extracts and renders the group's modules concurrently. Sections
// keep the group's file order.
func (g *Generator) renderGroup(ctx context.Context, group manifest.Group, opts render.Options) ([]render.Section, error) {
	sections := make([]render.Section, len(group.Files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Workers, 1))

	for i, src := range group.Files {
		eg.Go(func() error {
			compiled := manifest.CompiledPath(src, g.cfg.SrcDir, g.cfg.Dir)
			entries, err := g.extractor.Extract(ctx, compiled)
			if err != nil {
				return err
			}
			sections[i] = render.RenderSection(compiled, entries, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

func (g *Generator) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	g.recorder.ObserveStageDuration(name, elapsed)
	g.recorder.IncStageResult(name, metrics.ResultFor(err, ctx.Err() != nil))
	g.logger.Debug("Stage finished", logfields.Stage(name), logfields.Duration(elapsed))
	return err
}
