// Package buffer owns the committed token history for one open document and
// the parse and type state derived from it.
//
// Derived state is computed lazily on first read and cached until the next
// Update. The cache is sound because derivation is pure: the parser and the
// typer are functions of the committed history and the project settings
// alone, so identical inputs always reproduce identical outputs. A project
// settings change is observed through the project's generation counter.
package buffer

import (
	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/history"
	"github.com/kestrel-ml/kestrel/project"
	"github.com/kestrel-ml/kestrel/syntax"
	"github.com/kestrel-ml/kestrel/token"
	"github.com/kestrel-ml/kestrel/types"
)

// Kind distinguishes what the buffer's tokens parse as.
type Kind uint8

const (
	// Implementation is a top-level module body.
	Implementation Kind = iota
	// Interface is a signature file; it parses with the same grammar but
	// is reported distinctly to clients.
	Interface
)

func (k Kind) String() string {
	if k == Interface {
		return "interface"
	}
	return "implementation"
}

// Buffer is one open document: a committed token history plus cached state
// derived from it.
type Buffer struct {
	proj *project.Project
	kind Kind
	path string

	hist history.History[token.Token]

	derived *derived
}

// derived caches the parse and type results for one committed history.
type derived struct {
	tree       *syntax.Tree
	info       *types.Info
	generation uint64 // Project generation the info was computed under
}

// New creates a fresh buffer with an empty history and no derived state.
func New(proj *project.Project, kind Kind, path string) *Buffer {
	return &Buffer{
		proj: proj,
		kind: kind,
		path: path,
		hist: history.New[token.Token](),
	}
}

// Kind returns the buffer's parser kind.
func (b *Buffer) Kind() Kind {
	return b.kind
}

// Path returns the buffer's source path, empty for unnamed buffers.
func (b *Buffer) Path() string {
	return b.path
}

// Project returns the configuration scope the buffer is typed against.
func (b *Buffer) Project() *project.Project {
	return b.proj
}

// SetProject rebinds the buffer to a different configuration scope and
// invalidates derived state.
func (b *Buffer) SetProject(proj *project.Project) {
	b.proj = proj
	b.derived = nil
}

// LexerState returns the committed history, the base for the next feed, seek
// or drop cycle.
func (b *Buffer) LexerState() history.History[token.Token] {
	return b.hist
}

// Update replaces the committed history wholesale and invalidates all cached
// derived state. This is the single mutation point for the buffer's lexical
// state.
func (b *Buffer) Update(h history.History[token.Token]) {
	b.hist = h
	b.derived = nil
}

// Syntax returns the parse tree derived from the tokens before the cursor,
// computing it on first access since the last Update.
func (b *Buffer) Syntax() *syntax.Tree {
	d := b.ensureDerived()
	return d.tree
}

// Types returns the type information for the current parse tree. A project
// settings change (generation bump) forces re-checking; the parse tree
// itself is reused since it does not depend on the project.
func (b *Buffer) Types() *types.Info {
	d := b.ensureDerived()
	gen := b.proj.Generation()
	if d.info == nil || d.generation != gen {
		d.info = types.Check(d.tree, types.Context{
			Packages:   b.proj.Packages(),
			Extensions: b.proj.ExtensionSet(),
		})
		d.generation = gen
	}
	return d.info
}

// Diagnostics returns the combined findings for the committed history, type
// errors before parse errors.
func (b *Buffer) Diagnostics() []diag.Diagnostic {
	info := b.Types()
	tree := b.Syntax()

	out := make([]diag.Diagnostic, 0, len(info.Diags)+len(tree.Diags))
	out = append(out, info.Diags...)
	out = append(out, tree.Diags...)
	for i := range out {
		out[i].Path = b.path
	}
	return out
}

func (b *Buffer) ensureDerived() *derived {
	if b.derived == nil {
		b.derived = &derived{tree: syntax.Parse(b.hist.Past())}
	}
	return b.derived
}
