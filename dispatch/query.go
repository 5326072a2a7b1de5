package dispatch

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/telemetry"
	"github.com/kestrel-ml/kestrel/token"
	"github.com/kestrel-ml/kestrel/types"
)

// Queries read through the buffer's lazily derived state, which reflects the
// history last committed. They never start or mutate a feed session.

// Diagnostics returns the combined parse and type findings, type errors
// first.
func (d *Dispatcher) Diagnostics(ctx context.Context) []diag.Diagnostic {
	timer := telemetry.FromContext(ctx).Start("diagnostics")
	defer timer.End()

	return d.buf.Diagnostics()
}

// Outline returns the checked top-level bindings in source order.
func (d *Dispatcher) Outline(ctx context.Context) []types.BindingInfo {
	timer := telemetry.FromContext(ctx).Start("outline")
	defer timer.End()

	return d.buf.Types().Bindings
}

// Complete returns every name in scope matching the prefix, predeclared
// values included.
func (d *Dispatcher) Complete(ctx context.Context, prefix string) []types.ScopeEntry {
	timer := telemetry.FromContext(ctx).Start("complete")
	defer timer.End()

	var out []types.ScopeEntry
	for _, e := range d.buf.Types().Scope {
		if strings.HasPrefix(e.Name, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Locate returns the definition position of a top-level binding. An unknown
// or predeclared name yields ok=false, not an error.
func (d *Dispatcher) Locate(ctx context.Context, name string) (token.Position, bool) {
	timer := telemetry.FromContext(ctx).Start("locate")
	defer timer.End()

	e, ok := d.buf.Types().Lookup(name)
	if !ok || e.Pos == (token.Position{}) {
		return token.Position{}, false
	}
	return e.Pos, true
}

// TypeOf returns the rendered type of a name in scope.
func (d *Dispatcher) TypeOf(ctx context.Context, name string) (string, bool) {
	timer := telemetry.FromContext(ctx).Start("type of")
	defer timer.End()

	e, ok := d.buf.Types().Lookup(name)
	if !ok {
		return "", false
	}
	return e.Type.String(), true
}

// WhichPath resolves a module name against the project's source and build
// paths. Absence is an absent result, not an error.
func (d *Dispatcher) WhichPath(ctx context.Context, name string) (string, bool) {
	timer := telemetry.FromContext(ctx).Start("which path")
	defer timer.End()

	filename := strings.ToLower(name) + ".ml"
	dirs := append(d.proj.SourcePaths(), d.proj.BuildPaths()...)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, filename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
