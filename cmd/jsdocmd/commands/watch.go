package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
	"git.home.luguber.info/inful/jsdocmd/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	BuildFlags `embed:""`

	Debounce time.Duration `help:"Quiet period before regenerating" default:"300ms"`
}

func (c *WatchCmd) Run(ctx context.Context, g *Global) error {
	c.Apply(g.Config)
	if err := g.Config.Validate(); err != nil {
		return err
	}
	gen := g.generator()

	rebuild := func(ctx context.Context) error {
		_, err := gen.Run(ctx)
		return err
	}
	if err := rebuild(ctx); err != nil {
		g.Logger.Warn("Initial generation failed; watching anyway", logfields.Error(err))
	}

	w := &watch.Watcher{
		Dirs:        []string{g.Config.SrcDir, g.Config.Dir},
		Files:       []string{g.Config.CustomElements},
		IgnoreNames: []string{g.Config.OutFile},
		Debounce:    c.Debounce,
		Rebuild:     rebuild,
		Logger:      g.Logger,
	}
	return w.Run(ctx)
}
