package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/kestrel-ml/kestrel/output"
)

type OutlineCmd struct {
	File FileOrStdin `help:"Source input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *OutlineCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()
	d := newSession(runCtx, &cmd.File, ctx.Stderr)
	if err := feedFile(runCtx, d, cmd.File.Contents); err != nil {
		return err
	}

	bindings := d.Outline(runCtx)
	if len(bindings) == 0 {
		printInfof(ctx.Stdout, "no top-level bindings")
		return nil
	}

	styles := output.NewStyles(ctx.Stdout)
	for _, b := range bindings {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s %s : %s %s\n",
			styles.Keyword("let"),
			styles.Binding(b.Name),
			styles.Type(b.Type.String()),
			styles.Dim(fmt.Sprintf("(line %d)", b.Pos.Line)),
		)
	}
	return nil
}
