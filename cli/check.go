package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/telemetry"
)

type CheckCmd struct {
	File FileOrStdin `help:"Source input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	JSON bool        `help:"Report diagnostics as JSON."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
		checkTimer = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
	}

	reportTelemetry := func() {
		if collector != nil {
			checkTimer.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}
	}

	d := newSession(runCtx, &cmd.File, ctx.Stderr)
	if err := feedFile(runCtx, d, cmd.File.Contents); err != nil {
		return err
	}

	diags := d.Diagnostics(runCtx)
	if len(diags) > 0 {
		var renderer diag.Renderer
		if cmd.JSON {
			renderer = diag.NewJSONRenderer()
		} else {
			opts := []diag.TextRendererOption{diag.WithSource(cmd.File.Contents)}
			if isTerminal() {
				opts = append(opts, diag.WithColor())
			}
			renderer = diag.NewTextRenderer(opts...)
		}
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(diags))

		if !cmd.JSON {
			_, _ = fmt.Fprintln(ctx.Stderr)
			printError(ctx.Stderr, fmt.Sprintf("%d finding(s)", len(diags)))
		}

		reportTelemetry()
		os.Exit(1)
	}

	printSuccess(ctx.Stdout, "Check passed")
	reportTelemetry()

	return nil
}
