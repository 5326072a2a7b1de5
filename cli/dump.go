package cli

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

type DumpCmd struct {
	File FileOrStdin `help:"Source input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()
	d := newSession(runCtx, &cmd.File, ctx.Stderr)
	if err := feedFile(runCtx, d, cmd.File.Contents); err != nil {
		return err
	}

	repr.New(ctx.Stdout, repr.Indent("  ")).Println(d.Buffer().Syntax())
	return nil
}
