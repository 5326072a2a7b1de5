package token

import "fmt"

// Position represents a location in the fed source.
type Position struct {
	Offset int // Byte offset
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Start is the position of the first byte of a document.
var Start = Position{Offset: 0, Line: 1, Column: 1}

// Before reports whether p is strictly before q in source order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// After reports whether p is strictly after q in source order.
func (p Position) After(q Position) bool {
	return q.Before(p)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
