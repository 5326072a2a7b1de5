// Package diag defines the diagnostic model shared by the parser, the typer
// and the configuration loader, and renderers that present diagnostics as
// text (with source excerpts) or JSON.
//
// Diagnostics are data, not errors: malformed source never fails an engine
// operation, it only populates the diagnostic list attached to the derived
// state.
package diag

import (
	"fmt"

	"github.com/kestrel-ml/kestrel/token"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Diagnostic is a single finding against the fed source.
type Diagnostic struct {
	Severity Severity
	Pos      token.Position
	Path     string // Source path, may be empty for unnamed buffers
	Source   string // Producing stage: "parser", "typer", "config"
	Message  string
}

// String renders the diagnostic in file:line:col style.
func (d Diagnostic) String() string {
	location := fmt.Sprintf("%s:%d:%d", d.Path, d.Pos.Line, d.Pos.Column)
	if d.Path == "" {
		location = fmt.Sprintf("line %d, column %d", d.Pos.Line, d.Pos.Column)
	}
	return fmt.Sprintf("%s: %s: %s", location, d.Severity, d.Message)
}

// Errorf builds an error diagnostic at pos.
func Errorf(source string, pos token.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: Error,
		Pos:      pos,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Warningf builds a warning diagnostic at pos.
func Warningf(source string, pos token.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Severity: Warning,
		Pos:      pos,
		Source:   source,
		Message:  fmt.Sprintf(format, args...),
	}
}
