// Package types infers simple types for a syntax tree against a project's
// environment. Like the parser, checking is a pure function of its inputs:
// the same tree and project settings always produce the same Info, so buffers
// can cache the result.
//
// The checker never fails. Ill-typed expressions get the Unknown type and a
// diagnostic, and checking continues, so queries against a broken buffer
// still answer for the well-typed prefix.
package types

import (
	"fmt"
)

// Type is the inferred type of an expression or binding.
type Type interface {
	typeNode()
	String() string
}

type basic uint8

const (
	intKind basic = iota
	floatKind
	stringKind
	boolKind
	unitKind
	unknownKind
)

var (
	Int     Type = basic(intKind)
	Float   Type = basic(floatKind)
	String  Type = basic(stringKind)
	Bool    Type = basic(boolKind)
	Unit    Type = basic(unitKind)
	Unknown Type = basic(unknownKind)
)

func (basic) typeNode() {}

func (b basic) String() string {
	switch b {
	case basic(intKind):
		return "int"
	case basic(floatKind):
		return "float"
	case basic(stringKind):
		return "string"
	case basic(boolKind):
		return "bool"
	case basic(unitKind):
		return "unit"
	default:
		return "?"
	}
}

// Arrow is a function type.
type Arrow struct {
	From Type
	To   Type
}

func (*Arrow) typeNode() {}

func (a *Arrow) String() string {
	from := a.From.String()
	if _, ok := a.From.(*Arrow); ok {
		from = "(" + from + ")"
	}
	return fmt.Sprintf("%s -> %s", from, a.To.String())
}

// Equal reports whether two types are structurally identical. Unknown is
// never equal to anything, including itself; mismatch reporting skips
// Unknown operands separately.
func Equal(a, b Type) bool {
	if a == Unknown || b == Unknown {
		return false
	}
	if x, ok := a.(*Arrow); ok {
		y, ok := b.(*Arrow)
		return ok && Equal(x.From, y.From) && Equal(x.To, y.To)
	}
	return a == b
}
