package types

import (
	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/syntax"
	"github.com/kestrel-ml/kestrel/token"
)

// Context carries the project settings the checker depends on. It is a plain
// value so that checking stays a pure function of (tree, context).
type Context struct {
	// Packages selects which builtin packages predeclare values.
	Packages []string

	// Extensions toggles optional checker behavior. Known extensions:
	// "floatcoerce" permits mixed int/float arithmetic (result float);
	// "warnunused" reports local bindings that are never referenced.
	Extensions map[string]bool
}

// ScopeEntry is a name visible at the top level, predeclared or bound.
type ScopeEntry struct {
	Name string
	Type Type
	Pos  token.Position // Zero for predeclared values
}

// BindingInfo is the checked form of a top-level binding.
type BindingInfo struct {
	Name string
	Pos  token.Position
	Type Type
}

// Info is the result of checking a tree.
type Info struct {
	Bindings []BindingInfo
	Scope    []ScopeEntry
	Diags    []diag.Diagnostic
}

// Lookup returns the type of a name in the final top-level scope.
func (i *Info) Lookup(name string) (ScopeEntry, bool) {
	// Later entries shadow earlier ones.
	for j := len(i.Scope) - 1; j >= 0; j-- {
		if i.Scope[j].Name == name {
			return i.Scope[j], true
		}
	}
	return ScopeEntry{}, false
}

// Check infers types for every top-level binding in tree.
func Check(tree *syntax.Tree, ctx Context) *Info {
	c := &checker{ctx: ctx}
	info := &Info{}

	for _, pkg := range ctx.Packages {
		values, ok := builtinPackages[pkg]
		if !ok {
			continue
		}
		for name, typ := range values {
			c.scope = append(c.scope, &entry{name: name, typ: typ})
		}
	}

	for _, b := range tree.Bindings {
		typ := c.checkBinding(b)
		if b.Name != "" {
			info.Bindings = append(info.Bindings, BindingInfo{Name: b.Name, Pos: b.NamePos, Type: typ})
			c.scope = append(c.scope, &entry{name: b.Name, typ: typ, pos: b.NamePos})
		}
	}

	for _, e := range c.scope {
		info.Scope = append(info.Scope, ScopeEntry{Name: e.name, Type: e.typ, Pos: e.pos})
	}
	info.Diags = c.diags
	return info
}

type entry struct {
	name string
	typ  Type
	pos  token.Position
	uses int
}

type checker struct {
	ctx   Context
	scope []*entry
	diags []diag.Diagnostic
}

func (c *checker) errorf(pos token.Position, format string, args ...interface{}) {
	c.diags = append(c.diags, diag.Errorf("typer", pos, format, args...))
}

func (c *checker) warnf(pos token.Position, format string, args ...interface{}) {
	c.diags = append(c.diags, diag.Warningf("typer", pos, format, args...))
}

func (c *checker) lookup(name string) *entry {
	for i := len(c.scope) - 1; i >= 0; i-- {
		if c.scope[i].name == name {
			return c.scope[i]
		}
	}
	return nil
}

// push adds an entry and returns the scope depth to restore afterwards.
func (c *checker) push(e *entry) int {
	c.scope = append(c.scope, e)
	return len(c.scope) - 1
}

func (c *checker) popTo(depth int) {
	c.scope = c.scope[:depth]
}

// checkBinding infers the type of a binding's body under its parameters.
// Recursive bindings see themselves with the Unknown type while their body is
// checked.
func (c *checker) checkBinding(b *syntax.Binding) Type {
	depth := len(c.scope)

	if b.Rec && b.Name != "" {
		c.push(&entry{name: b.Name, typ: Unknown, pos: b.NamePos})
	}

	params := make([]*entry, 0, len(b.Params))
	for _, p := range b.Params {
		e := &entry{name: p.Name, typ: Unknown, pos: p.Pos}
		params = append(params, e)
		c.push(e)
	}

	body := c.infer(b.Body)
	c.popTo(depth)

	typ := body
	for i := len(params) - 1; i >= 0; i-- {
		typ = &Arrow{From: params[i].typ, To: typ}
	}
	return typ
}

func (c *checker) infer(expr syntax.Expr) Type {
	switch e := expr.(type) {
	case *syntax.IntLit:
		return Int
	case *syntax.FloatLit:
		return Float
	case *syntax.StringLit:
		return String
	case *syntax.BoolLit:
		return Bool
	case *syntax.Bad:
		return Unknown

	case *syntax.Ident:
		ent := c.lookup(e.Name)
		if ent == nil {
			c.errorf(e.TokPos, "unbound identifier %q", e.Name)
			return Unknown
		}
		ent.uses++
		return ent.typ

	case *syntax.Binary:
		return c.inferBinary(e)

	case *syntax.If:
		cond := c.infer(e.Cond)
		if cond != Unknown && cond != Bool {
			c.errorf(e.Cond.Pos(), "condition has type %s, expected bool", cond)
		}
		thenT := c.infer(e.Then)
		elseT := c.infer(e.Else)
		switch {
		case thenT == Unknown:
			return elseT
		case elseT == Unknown:
			return thenT
		case Equal(thenT, elseT):
			return thenT
		default:
			c.errorf(e.Else.Pos(), "branches have mismatched types %s and %s", thenT, elseT)
			return Unknown
		}

	case *syntax.Fun:
		depth := len(c.scope)
		param := &entry{name: e.Param.Name, typ: Unknown, pos: e.Param.Pos}
		c.push(param)
		body := c.infer(e.Body)
		c.popTo(depth)
		return &Arrow{From: param.typ, To: body}

	case *syntax.Apply:
		fn := c.infer(e.Fn)
		arg := c.infer(e.Arg)
		switch f := fn.(type) {
		case *Arrow:
			if f.From != Unknown && arg != Unknown && !Equal(f.From, arg) {
				c.errorf(e.Arg.Pos(), "argument has type %s, expected %s", arg, f.From)
			}
			return f.To
		default:
			if fn != Unknown {
				c.errorf(e.Fn.Pos(), "this expression has type %s and is not a function", fn)
			}
			return Unknown
		}

	case *syntax.LetIn:
		typ := c.checkBinding(e.Binding)
		depth := len(c.scope)
		local := &entry{name: e.Binding.Name, typ: typ, pos: e.Binding.NamePos}
		if e.Binding.Name != "" {
			c.push(local)
		}
		body := c.infer(e.Body)
		c.popTo(depth)
		if c.ctx.Extensions["warnunused"] && e.Binding.Name != "" && local.uses == 0 {
			c.warnf(e.Binding.NamePos, "unused binding %q", e.Binding.Name)
		}
		return body

	default:
		return Unknown
	}
}

func (c *checker) inferBinary(e *syntax.Binary) Type {
	left := c.infer(e.Left)
	right := c.infer(e.Right)

	switch e.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		return c.inferArith(e, left, right)

	case token.CARET:
		for _, side := range []struct {
			t   Type
			pos token.Position
		}{{left, e.Left.Pos()}, {right, e.Right.Pos()}} {
			if side.t != Unknown && side.t != String {
				c.errorf(side.pos, "operand of '^' has type %s, expected string", side.t)
			}
		}
		return String

	case token.LT, token.GT, token.EQUALS:
		if left != Unknown && right != Unknown && !Equal(left, right) {
			c.errorf(e.OpPos, "cannot compare %s with %s", left, right)
		}
		return Bool

	default:
		return Unknown
	}
}

func (c *checker) inferArith(e *syntax.Binary, left, right Type) Type {
	numeric := func(t Type) bool { return t == Int || t == Float }

	if left == Unknown || right == Unknown {
		// Best effort: a known numeric side decides the result.
		if numeric(left) {
			return left
		}
		if numeric(right) {
			return right
		}
		return Unknown
	}

	switch {
	case left == Int && right == Int:
		return Int
	case left == Float && right == Float:
		return Float
	case numeric(left) && numeric(right):
		if c.ctx.Extensions["floatcoerce"] {
			return Float
		}
		c.errorf(e.OpPos, "cannot mix int and float without the floatcoerce extension")
		return Unknown
	default:
		c.errorf(e.OpPos, "operands of %s have types %s and %s, expected numbers", e.Op, left, right)
		return Unknown
	}
}
