// Package syntax parses a token history into a tree of top-level phrases.
//
// Parsing is a pure function of the token sequence: identical tokens always
// produce an identical tree, which is what allows buffers to cache the result
// until the next history commit. Malformed source never fails the parse; it
// is recorded as diagnostics and the parser resynchronizes at the next phrase
// boundary, so queries keep working against the well-formed prefix.
package syntax

import (
	"github.com/shopspring/decimal"

	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/token"
)

// Tree is the parsed form of a token history.
type Tree struct {
	Bindings []*Binding
	Diags    []diag.Diagnostic
}

// Binding is one top-level phrase. A bare expression phrase is represented as
// a binding with an empty name.
type Binding struct {
	Rec     bool
	Name    string
	NamePos token.Position
	Params  []Param
	Body    Expr
	LetPos  token.Position
}

// Param is a function parameter.
type Param struct {
	Name string
	Pos  token.Position
}

// Expr is an expression node.
type Expr interface {
	Pos() token.Position
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value  decimal.Decimal
	TokPos token.Position
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value  decimal.Decimal
	TokPos token.Position
}

// StringLit is a quoted string literal. Value excludes the quotes.
type StringLit struct {
	Value  string
	TokPos token.Position
}

// BoolLit is true or false.
type BoolLit struct {
	Value  bool
	TokPos token.Position
}

// Ident is a variable reference.
type Ident struct {
	Name   string
	TokPos token.Position
}

// Binary is an infix operation.
type Binary struct {
	Op    token.Type
	OpPos token.Position
	Left  Expr
	Right Expr
}

// If is a conditional expression.
type If struct {
	Cond   Expr
	Then   Expr
	Else   Expr
	IfPos  token.Position
}

// Fun is a single-parameter function literal.
type Fun struct {
	Param  Param
	Body   Expr
	FunPos token.Position
}

// Apply is a function application.
type Apply struct {
	Fn  Expr
	Arg Expr
}

// LetIn is a local binding scoped to a body expression.
type LetIn struct {
	Binding *Binding
	Body    Expr
}

// Bad marks a region that failed to parse.
type Bad struct {
	TokPos token.Position
}

func (e *IntLit) Pos() token.Position    { return e.TokPos }
func (e *FloatLit) Pos() token.Position  { return e.TokPos }
func (e *StringLit) Pos() token.Position { return e.TokPos }
func (e *BoolLit) Pos() token.Position   { return e.TokPos }
func (e *Ident) Pos() token.Position     { return e.TokPos }
func (e *Binary) Pos() token.Position    { return e.Left.Pos() }
func (e *If) Pos() token.Position        { return e.IfPos }
func (e *Fun) Pos() token.Position       { return e.FunPos }
func (e *Apply) Pos() token.Position     { return e.Fn.Pos() }
func (e *LetIn) Pos() token.Position     { return e.Binding.LetPos }
func (e *Bad) Pos() token.Position       { return e.TokPos }

func (*IntLit) exprNode()    {}
func (*FloatLit) exprNode()  {}
func (*StringLit) exprNode() {}
func (*BoolLit) exprNode()   {}
func (*Ident) exprNode()     {}
func (*Binary) exprNode()    {}
func (*If) exprNode()        {}
func (*Fun) exprNode()       {}
func (*Apply) exprNode()     {}
func (*LetIn) exprNode()     {}
func (*Bad) exprNode()       {}
