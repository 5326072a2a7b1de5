package cli

import (
	"context"
	"io"

	"github.com/kestrel-ml/kestrel/dispatch"
	"github.com/kestrel-ml/kestrel/lexer"
	"github.com/kestrel-ml/kestrel/project"
)

// feedChunk is how much source a single fragment carries when the CLI drives
// a session. Small enough to exercise fragment boundaries on real files.
const feedChunk = 4096

// newSession builds a dispatcher for a source file, loading the adjacent
// .kestrel config when one exists. Config failures are reported but never
// block the session.
func newSession(ctx context.Context, file *FileOrStdin, stderr io.Writer) *dispatch.Dispatcher {
	store := project.NewStore()
	d := dispatch.New(store)

	if configPath := file.ConfigPath(); configPath != "" {
		for _, failure := range d.LoadConfig(ctx, configPath) {
			printError(stderr, failure.Error())
		}
	}
	return d
}

// feedFile pushes the file's contents through a full feed cycle, fragment by
// fragment, ending with the final fragment that signals end-of-input.
func feedFile(ctx context.Context, d *dispatch.Dispatcher, contents []byte) error {
	d.BeginFeed(ctx)

	for off := 0; ; off += feedChunk {
		end := off + feedChunk
		final := end >= len(contents)
		if final {
			end = len(contents)
		}
		_, err := d.Feed(ctx, lexer.Fragment{Text: string(contents[off:end]), Final: final})
		if err != nil {
			return err
		}
		if final {
			return nil
		}
	}
}
