package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/jsdocmd/internal/config"
	"git.home.luguber.info/inful/jsdocmd/internal/output"
	"git.home.luguber.info/inful/jsdocmd/internal/pipeline"
)

// BuildFlags override configuration values for a generation run. Zero values
// leave the configured value in place.
type BuildFlags struct {
	CustomElements string   `name:"custom-elements" help:"Custom elements manifest path"`
	Dir            string   `name:"dir" help:"Compiled output directory"`
	SrcDir         string   `name:"src-dir" help:"Source directory"`
	OutFile        string   `name:"out-file" help:"Name of the generated file in each directory"`
	KeepImports    bool     `name:"keep-imports" help:"Keep the compiled directory in import examples"`
	ImportRoot     string   `name:"import-root" help:"Package name replacing the compiled directory in imports"`
	ExcludePaths   []string `name:"exclude-paths" help:"Path substrings to skip (comma separated)"`
	ExcludeKinds   []string `name:"exclude-kinds" help:"Export kinds that disqualify a module (comma separated)"`
	AnalyzeFlags   []string `name:"analyze-flags" help:"Flags passed to the manifest analyzer (comma separated)"`
	Workers        int      `name:"workers" help:"Modules extracted in parallel per directory"`
}

// Apply overlays the flags that were set onto cfg.
func (b BuildFlags) Apply(cfg *config.Config) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setString(&cfg.CustomElements, b.CustomElements)
	setString(&cfg.Dir, b.Dir)
	setString(&cfg.SrcDir, b.SrcDir)
	setString(&cfg.OutFile, b.OutFile)
	setString(&cfg.ImportRoot, b.ImportRoot)
	if b.KeepImports {
		cfg.KeepImports = true
	}
	if len(b.ExcludePaths) > 0 {
		cfg.ExcludePaths = b.ExcludePaths
	}
	if len(b.ExcludeKinds) > 0 {
		cfg.ExcludeKinds = b.ExcludeKinds
	}
	if len(b.AnalyzeFlags) > 0 {
		cfg.AnalyzeFlags = b.AnalyzeFlags
	}
	if b.Workers > 0 {
		cfg.Workers = b.Workers
	}
}

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	BuildFlags `embed:""`

	DryRun bool `name:"dry-run" help:"Render without writing; list the documents that would change"`
}

func (c *GenerateCmd) Run(ctx context.Context, g *Global) error {
	c.Apply(g.Config)
	if err := g.Config.Validate(); err != nil {
		return err
	}

	gen := g.generator(pipeline.WithWriter(output.Writer{DryRun: c.DryRun}))
	report, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	if c.DryRun {
		for _, doc := range report.Documents {
			state := "unchanged"
			if doc.Changed {
				state = "changed"
			}
			_, _ = fmt.Fprintf(g.Out, "%s\t%s\n", state, doc.Path)
		}
	}
	return nil
}
