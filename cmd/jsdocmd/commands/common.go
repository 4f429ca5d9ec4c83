// Package commands implements the jsdocmd subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/jsdocmd/internal/config"
	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
	"git.home.luguber.info/inful/jsdocmd/internal/metrics"
	"git.home.luguber.info/inful/jsdocmd/internal/pipeline"
)

// Global carries state shared by every subcommand.
type Global struct {
	Config      *config.Config
	ConfigPath  string
	ConfigFound bool
	Logger      *slog.Logger
	Recorder    metrics.Recorder
	Out         io.Writer

	metricsFile string
	prom        *metrics.PrometheusRecorder
	// extra options appended to every generator; tests inject fakes here.
	extra []pipeline.Option
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (JSON, or YAML by extension)" default:".jsdoc-markdown.config.json"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	EnvFile     []string         `name:"env-file" help:"Dotenv files loaded before reading configuration" default:".env,.env.local"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file on exit"`

	Generate  GenerateCmd `cmd:"" default:"withargs" help:"Generate README files for every documented directory"`
	Watch     WatchCmd    `cmd:"" help:"Generate, then regenerate whenever sources change"`
	ConfigCmd ConfigCmd   `cmd:"" name:"config" help:"Inspect the merged configuration"`
	Render    RenderCmd   `cmd:"" help:"Render one module's JSDoc entries to stdout"`
}

// AfterApply runs after flag parsing; set up a bootstrap logger until the
// configuration is known.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// Setup loads env files and configuration, installs the configured logger
// and prepares the metrics recorder.
func (c *CLI) Setup(out io.Writer) (*Global, error) {
	loaded, err := config.LoadEnvFiles(c.EnvFile...)
	if err != nil {
		return nil, err
	}
	cfg, found, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	logger := config.NewLogger(os.Stderr, cfg.Logging, c.Verbose)
	slog.SetDefault(logger)
	for _, f := range loaded {
		logger.Debug("Loaded env file", logfields.File(f))
	}
	if found {
		logger.Debug("Loaded config file", logfields.Path(c.Config))
	} else {
		logger.Debug("No config file; using defaults", logfields.Path(c.Config))
	}

	g := &Global{
		Config:      cfg,
		ConfigPath:  c.Config,
		ConfigFound: found,
		Logger:      logger,
		Recorder:    metrics.NoopRecorder{},
		Out:         out,
		metricsFile: c.MetricsFile,
	}
	if c.MetricsFile != "" {
		g.prom = metrics.NewPrometheusRecorder(prom.NewRegistry())
		g.Recorder = g.prom
	}
	return g, nil
}

// Flush writes the metrics textfile when one was requested.
func (g *Global) Flush() error {
	if g == nil || g.prom == nil {
		return nil
	}
	if err := g.prom.WriteTextfile(g.metricsFile); err != nil {
		return err
	}
	g.Logger.Debug("Wrote metrics", logfields.Path(g.metricsFile))
	return nil
}

func (g *Global) generator(opts ...pipeline.Option) *pipeline.Generator {
	all := []pipeline.Option{
		pipeline.WithRecorder(g.Recorder),
		pipeline.WithLogger(g.Logger),
	}
	all = append(all, opts...)
	return pipeline.NewGenerator(g.Config, append(all, g.extra...)...)
}
