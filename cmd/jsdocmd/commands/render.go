package commands

import (
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/jsdoc"
	"git.home.luguber.info/inful/jsdocmd/internal/pipeline"
	"git.home.luguber.info/inful/jsdocmd/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	File       string `arg:"" help:"JSON array of documentation entries, or - for stdin"`
	ModulePath string `name:"module-path" help:"Compiled module path used for import examples (defaults to FILE)"`
}

func (c *RenderCmd) Run(g *Global) error {
	var r io.Reader = os.Stdin
	if c.File != "-" {
		f, err := os.Open(c.File)
		if err != nil {
			if os.IsNotExist(err) {
				return ferrors.NotFoundError("entries file not found").WithContext("path", c.File).Build()
			}
			return ferrors.FileSystemError("open entries file").WithCause(err).
				WithContext("path", c.File).
				Build()
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	entries, err := jsdoc.Decode(r)
	if err != nil {
		return err
	}
	modulePath := c.ModulePath
	if modulePath == "" {
		modulePath = c.File
	}

	section := render.RenderSection(modulePath, entries, pipeline.RenderOptions(g.Config))
	_, err = io.WriteString(g.Out, string(section))
	return err
}
