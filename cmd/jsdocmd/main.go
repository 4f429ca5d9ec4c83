package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/jsdocmd/cmd/jsdocmd/commands"
	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/version"
)

func main() {
	var cli commands.CLI
	kctx := kong.Parse(&cli,
		kong.Name("jsdocmd"),
		kong.Description("Generate Markdown READMEs from JSDoc comments of custom element packages."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global, err := cli.Setup(os.Stdout)
	if err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(global)
	if ferr := global.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	stop()
	ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
}
