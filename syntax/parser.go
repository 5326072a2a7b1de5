package syntax

import (
	"github.com/shopspring/decimal"

	"github.com/kestrel-ml/kestrel/diag"
	"github.com/kestrel-ml/kestrel/token"
)

// Parse builds a Tree from a token sequence. ILLEGAL tokens and syntax errors
// become diagnostics; the parser resynchronizes at the next ';;' or top-level
// 'let' and keeps going.
func Parse(toks []token.Token) *Tree {
	p := &parser{toks: toks}
	tree := &Tree{}

	for !p.done() {
		if p.peek().Type == token.SEMISEMI {
			p.next()
			continue
		}

		b := p.parsePhrase()
		if b != nil {
			tree.Bindings = append(tree.Bindings, b)
		}
		p.syncPhrase()
	}

	tree.Diags = p.diags
	return tree
}

type parser struct {
	toks  []token.Token
	off   int
	diags []diag.Diagnostic
}

func (p *parser) done() bool {
	return p.off >= len(p.toks)
}

func (p *parser) peek() token.Token {
	if p.done() {
		last := token.Start
		if len(p.toks) > 0 {
			last = p.toks[len(p.toks)-1].EndPos()
		}
		return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column, Start: last.Offset, End: last.Offset}
	}
	return p.toks[p.off]
}

func (p *parser) next() token.Token {
	tok := p.peek()
	if !p.done() {
		p.off++
	}
	return tok
}

func (p *parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.diags = append(p.diags, diag.Errorf("parser", pos, format, args...))
}

// syncPhrase skips ahead to the next phrase boundary after an error, or past
// the ';;' closing a well-formed phrase.
func (p *parser) syncPhrase() {
	for !p.done() {
		switch p.peek().Type {
		case token.SEMISEMI:
			p.next()
			return
		case token.LET:
			return
		default:
			p.next()
		}
	}
}

// parsePhrase parses one top-level phrase: a let binding or a bare
// expression. Returns nil when nothing usable could be parsed.
func (p *parser) parsePhrase() *Binding {
	if p.peek().Type == token.LET {
		return p.parseLet(true)
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	return &Binding{Body: expr, LetPos: expr.Pos()}
}

// parseLet parses 'let [rec] name params = expr'. At top level a trailing
// 'in' turns the binding into a let-in expression phrase.
func (p *parser) parseLet(topLevel bool) *Binding {
	letTok := p.next() // 'let'
	b := &Binding{LetPos: letTok.StartPos()}

	if p.peek().Type == token.REC {
		p.next()
		b.Rec = true
	}

	name := p.peek()
	if name.Type != token.IDENT {
		p.errorf(name.StartPos(), "expected binding name, found %s", name.Type)
		return nil
	}
	p.next()
	b.Name = name.Text
	b.NamePos = name.StartPos()

	for p.peek().Type == token.IDENT {
		param := p.next()
		b.Params = append(b.Params, Param{Name: param.Text, Pos: param.StartPos()})
	}

	if p.peek().Type != token.EQUALS {
		p.errorf(p.peek().StartPos(), "expected '=' after binding name, found %s", p.peek().Type)
		return nil
	}
	p.next()

	b.Body = p.parseExpr()
	if b.Body == nil {
		return nil
	}

	if topLevel && p.peek().Type == token.IN {
		p.next()
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		return &Binding{Body: &LetIn{Binding: b, Body: body}, LetPos: b.LetPos}
	}

	return b
}

// Precedence climbing, lowest first: comparison, concat, sum, product,
// application, atoms.

func (p *parser) parseExpr() Expr {
	switch p.peek().Type {
	case token.FUN:
		return p.parseFun()
	case token.IF:
		return p.parseIf()
	case token.LET:
		b := p.parseLet(false)
		if b == nil {
			return nil
		}
		if p.peek().Type != token.IN {
			p.errorf(p.peek().StartPos(), "expected 'in' after local binding, found %s", p.peek().Type)
			return nil
		}
		p.next()
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		return &LetIn{Binding: b, Body: body}
	default:
		return p.parseCompare()
	}
}

func (p *parser) parseFun() Expr {
	funTok := p.next() // 'fun'

	param := p.peek()
	if param.Type != token.IDENT {
		p.errorf(param.StartPos(), "expected parameter name after 'fun', found %s", param.Type)
		return nil
	}
	p.next()

	if p.peek().Type != token.ARROW {
		p.errorf(p.peek().StartPos(), "expected '->' after parameter, found %s", p.peek().Type)
		return nil
	}
	p.next()

	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return &Fun{
		Param:  Param{Name: param.Text, Pos: param.StartPos()},
		Body:   body,
		FunPos: funTok.StartPos(),
	}
}

func (p *parser) parseIf() Expr {
	ifTok := p.next() // 'if'

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if p.peek().Type != token.THEN {
		p.errorf(p.peek().StartPos(), "expected 'then', found %s", p.peek().Type)
		return nil
	}
	p.next()

	thenExpr := p.parseExpr()
	if thenExpr == nil {
		return nil
	}
	if p.peek().Type != token.ELSE {
		p.errorf(p.peek().StartPos(), "expected 'else', found %s", p.peek().Type)
		return nil
	}
	p.next()

	elseExpr := p.parseExpr()
	if elseExpr == nil {
		return nil
	}
	return &If{Cond: cond, Then: thenExpr, Else: elseExpr, IfPos: ifTok.StartPos()}
}

func (p *parser) parseCompare() Expr {
	left := p.parseConcat()
	if left == nil {
		return nil
	}
	for {
		op := p.peek()
		if op.Type != token.LT && op.Type != token.GT && op.Type != token.EQUALS {
			return left
		}
		p.next()
		right := p.parseConcat()
		if right == nil {
			return nil
		}
		left = &Binary{Op: op.Type, OpPos: op.StartPos(), Left: left, Right: right}
	}
}

func (p *parser) parseConcat() Expr {
	left := p.parseSum()
	if left == nil {
		return nil
	}
	for p.peek().Type == token.CARET {
		op := p.next()
		right := p.parseSum()
		if right == nil {
			return nil
		}
		left = &Binary{Op: op.Type, OpPos: op.StartPos(), Left: left, Right: right}
	}
	return left
}

func (p *parser) parseSum() Expr {
	left := p.parseProduct()
	if left == nil {
		return nil
	}
	for {
		op := p.peek()
		if op.Type != token.PLUS && op.Type != token.MINUS {
			return left
		}
		p.next()
		right := p.parseProduct()
		if right == nil {
			return nil
		}
		left = &Binary{Op: op.Type, OpPos: op.StartPos(), Left: left, Right: right}
	}
}

func (p *parser) parseProduct() Expr {
	left := p.parseApply()
	if left == nil {
		return nil
	}
	for {
		op := p.peek()
		if op.Type != token.STAR && op.Type != token.SLASH {
			return left
		}
		p.next()
		right := p.parseApply()
		if right == nil {
			return nil
		}
		left = &Binary{Op: op.Type, OpPos: op.StartPos(), Left: left, Right: right}
	}
}

func (p *parser) parseApply() Expr {
	fn := p.parseAtom()
	if fn == nil {
		return nil
	}
	for p.atomAhead() {
		arg := p.parseAtom()
		if arg == nil {
			return nil
		}
		fn = &Apply{Fn: fn, Arg: arg}
	}
	return fn
}

// atomAhead reports whether the next token can begin an application argument.
func (p *parser) atomAhead() bool {
	switch p.peek().Type {
	case token.INT, token.FLOAT, token.STRING, token.TRUE, token.FALSE,
		token.IDENT, token.LPAREN:
		return true
	default:
		return false
	}
}

func (p *parser) parseAtom() Expr {
	tok := p.peek()
	switch tok.Type {
	case token.INT:
		p.next()
		v, err := decimal.NewFromString(tok.Text)
		if err != nil {
			p.errorf(tok.StartPos(), "malformed integer literal %q", tok.Text)
			return &Bad{TokPos: tok.StartPos()}
		}
		return &IntLit{Value: v, TokPos: tok.StartPos()}

	case token.FLOAT:
		p.next()
		v, err := decimal.NewFromString(tok.Text)
		if err != nil {
			p.errorf(tok.StartPos(), "malformed float literal %q", tok.Text)
			return &Bad{TokPos: tok.StartPos()}
		}
		return &FloatLit{Value: v, TokPos: tok.StartPos()}

	case token.STRING:
		p.next()
		return &StringLit{Value: unquote(tok.Text), TokPos: tok.StartPos()}

	case token.TRUE, token.FALSE:
		p.next()
		return &BoolLit{Value: tok.Type == token.TRUE, TokPos: tok.StartPos()}

	case token.IDENT:
		p.next()
		return &Ident{Name: tok.Text, TokPos: tok.StartPos()}

	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		if p.peek().Type != token.RPAREN {
			p.errorf(p.peek().StartPos(), "expected ')', found %s", p.peek().Type)
			return nil
		}
		p.next()
		return inner

	case token.ILLEGAL:
		p.next()
		p.errorf(tok.StartPos(), "unexpected character %q", tok.Text)
		return &Bad{TokPos: tok.StartPos()}

	default:
		p.errorf(tok.StartPos(), "expected expression, found %s", tok.Type)
		return nil
	}
}

// unquote strips the surrounding quotes and resolves simple escapes. The
// scanner guarantees the token starts with '"'; the closing quote may be
// missing on malformed input.
func unquote(text string) string {
	if len(text) < 2 {
		return ""
	}
	body := text[1:]
	if body[len(body)-1] == '"' {
		body = body[:len(body)-1]
	}

	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			default:
				out = append(out, body[i])
			}
			continue
		}
		out = append(out, body[i])
	}
	return string(out)
}
