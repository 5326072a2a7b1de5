package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/kestrel-ml/kestrel/diag"
)

type WatchCmd struct {
	File string `help:"Source file to watch." arg:"" type:"existingfile"`
}

// Run re-checks the file on every write until interrupted. The file's
// directory is watched rather than the file itself so editors that
// replace-on-save keep triggering events.
func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(cmd.File)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	printInfof(ctx.Stdout, "watching %s", cmd.File)
	if err := cmd.checkOnce(ctx, target); err != nil {
		return err
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			if name != target {
				continue
			}
			if err := cmd.checkOnce(ctx, target); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())
		}
	}
}

func (cmd *WatchCmd) checkOnce(ctx *kong.Context, target string) error {
	contents, err := os.ReadFile(target)
	if err != nil {
		return err
	}
	file := &FileOrStdin{Filename: target, Contents: contents}

	runCtx := context.Background()
	d := newSession(runCtx, file, ctx.Stderr)
	if err := feedFile(runCtx, d, contents); err != nil {
		return err
	}

	diags := d.Diagnostics(runCtx)
	if len(diags) == 0 {
		printSuccess(ctx.Stdout, fmt.Sprintf("%s: ok", filepath.Base(target)))
		return nil
	}

	opts := []diag.TextRendererOption{diag.WithSource(contents)}
	if isTerminal() {
		opts = append(opts, diag.WithColor())
	}
	renderer := diag.NewTextRenderer(opts...)
	_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(diags))
	printError(ctx.Stderr, fmt.Sprintf("%s: %d finding(s)", filepath.Base(target), len(diags)))
	return nil
}
