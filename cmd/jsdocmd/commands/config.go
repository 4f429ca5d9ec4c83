package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/jsdocmd/internal/foundation"
	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
)

// ConfigCmd groups the configuration subcommands.
type ConfigCmd struct {
	Dump ConfigDumpCmd `cmd:"" help:"Write the merged configuration to the config path"`
	Get  ConfigGetCmd  `cmd:"" help:"Print one configuration value"`
}

// ConfigDumpCmd implements 'config dump'.
type ConfigDumpCmd struct {
	Stdout bool `help:"Print JSON to stdout instead of writing the config file"`
}

func (c *ConfigDumpCmd) Run(g *Global) error {
	if err := g.Config.Validate(); err != nil {
		return err
	}
	if c.Stdout {
		data, err := g.Config.Marshal(".json")
		if err != nil {
			return ferrors.InternalError("encode config").WithCause(err).Build()
		}
		_, err = g.Out.Write(data)
		return err
	}
	if err := g.Config.Dump(g.ConfigPath); err != nil {
		return err
	}
	g.Logger.Info("Wrote configuration", logfields.Path(g.ConfigPath))
	return nil
}

// ConfigGetCmd implements 'config get'.
type ConfigGetCmd struct {
	Path string `arg:"" help:"Dotted key path, e.g. logging.level or excludePaths[0]"`
	Sep  string `help:"Path separator" default:"."`
}

func (c *ConfigGetCmd) Run(g *Global) error {
	tree, err := g.Config.Tree()
	if err != nil {
		return ferrors.InternalError("encode config").WithCause(err).Build()
	}
	v, ok := foundation.Lookup(tree, c.Path, c.Sep).Get()
	if !ok {
		return ferrors.NotFoundError("configuration key not found").
			WithContext("path", c.Path).
			Build()
	}

	if s, isString := v.(string); isString {
		_, err = fmt.Fprintln(g.Out, s)
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ferrors.InternalError("encode value").WithCause(err).Build()
	}
	_, err = fmt.Fprintln(g.Out, string(data))
	return err
}
