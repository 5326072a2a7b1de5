package diag

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/kestrel-ml/kestrel/output"
	"github.com/mattn/go-runewidth"
)

// Renderer formats diagnostics for output.
type Renderer interface {
	// Render formats a single diagnostic.
	Render(d Diagnostic) string

	// RenderAll formats multiple diagnostics.
	RenderAll(ds []Diagnostic) string
}

// TextRenderer formats diagnostics for command-line output, optionally with a
// caret excerpt of the offending source line.
type TextRenderer struct {
	source  []byte // Optional source content for excerpt context
	colored bool
}

// TextRendererOption configures a TextRenderer.
type TextRendererOption func(*TextRenderer)

// WithSource sets the source content used for excerpt context.
func WithSource(source []byte) TextRendererOption {
	return func(tr *TextRenderer) {
		tr.source = source
	}
}

// WithColor enables lipgloss styling of severities and gutters.
func WithColor() TextRendererOption {
	return func(tr *TextRenderer) {
		tr.colored = true
	}
}

// NewTextRenderer creates a text renderer.
func NewTextRenderer(opts ...TextRendererOption) *TextRenderer {
	tr := &TextRenderer{}
	for _, opt := range opts {
		opt(tr)
	}
	return tr
}

// Render formats a single diagnostic, with a source excerpt when source
// content is available.
func (tr *TextRenderer) Render(d Diagnostic) string {
	head := d.String()
	if tr.colored {
		style := output.ErrorStyle
		if d.Severity == Warning {
			style = output.WarningStyle
		}
		head = style.Render(head)
	}

	if tr.source == nil {
		return head
	}

	excerpt := tr.excerpt(d)
	if excerpt == "" {
		return head
	}
	return head + "\n\n" + excerpt
}

// RenderAll formats diagnostics separated by blank lines.
func (tr *TextRenderer) RenderAll(ds []Diagnostic) string {
	if len(ds) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, d := range ds {
		buf.WriteString(tr.Render(d))
		if i < len(ds)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// excerpt renders the offending line with a caret under the error column.
// Caret alignment uses display widths so wide runes line up correctly.
func (tr *TextRenderer) excerpt(d Diagnostic) string {
	lines := strings.Split(string(tr.source), "\n")
	if d.Pos.Line < 1 || d.Pos.Line > len(lines) {
		return ""
	}
	line := lines[d.Pos.Line-1]

	var buf bytes.Buffer
	gutter := "   "
	if tr.colored {
		gutter = output.GutterStyle.Render("   ")
	}
	buf.WriteString(gutter)
	buf.WriteString(line)
	buf.WriteByte('\n')

	if d.Pos.Column > 0 {
		buf.WriteString("   ")
		prefix := line
		if d.Pos.Column-1 <= len(line) {
			prefix = line[:d.Pos.Column-1]
		}
		buf.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
		buf.WriteString("^")
	}
	return buf.String()
}

// JSONRenderer formats diagnostics as JSON for tooling consumers.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// DiagnosticJSON is the wire shape of a diagnostic.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

func toJSON(d Diagnostic) DiagnosticJSON {
	return DiagnosticJSON{
		Severity: d.Severity.String(),
		Path:     d.Path,
		Line:     d.Pos.Line,
		Column:   d.Pos.Column,
		Source:   d.Source,
		Message:  d.Message,
	}
}

// Render formats a single diagnostic as a JSON object.
func (jr *JSONRenderer) Render(d Diagnostic) string {
	data, _ := json.Marshal(toJSON(d))
	return string(data)
}

// RenderAll formats diagnostics as an indented JSON array.
func (jr *JSONRenderer) RenderAll(ds []Diagnostic) string {
	out := make([]DiagnosticJSON, 0, len(ds))
	for _, d := range ds {
		out = append(out, toJSON(d))
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return string(data)
}
