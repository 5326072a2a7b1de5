// Package scanner implements a resumable lexer for ML-style source text.
//
// Unlike a whole-file lexer, a Scanner accepts the source in fragments: an
// editor feeds whatever it has buffered, and the Scanner emits every token
// that is provably complete. A token touching the end of the buffered input
// is held back until more input arrives, since the next fragment could extend
// it ("le" + "t" must lex as a single keyword). The final fragment releases
// everything.
//
// Scanning is deterministic: the same sequence of fragments always produces
// the same sequence of tokens, which is what allows derived parse state to be
// cached against the token stream alone.
package scanner

import (
	"github.com/kestrel-ml/kestrel/token"
)

// Scanner tokenizes ML source code fed fragment by fragment.
type Scanner struct {
	pending []byte // Bytes buffered but not yet consumed into tokens
	base    token.Position
	eof     bool
}

// New creates a Scanner that begins scanning at the given position.
func New(from token.Position) *Scanner {
	return &Scanner{base: from}
}

// EOF reports whether a final fragment has been consumed.
func (s *Scanner) EOF() bool {
	return s.eof
}

// Pos returns the position just past the last byte consumed into a token.
// Bytes still pending (an incomplete trailing token) are not counted.
func (s *Scanner) Pos() token.Position {
	return s.base
}

// Scan appends fragment to the pending input and returns all tokens that are
// complete. When final is true the fragment is treated as the last one: every
// pending byte is consumed and the Scanner reports EOF afterwards.
func (s *Scanner) Scan(fragment []byte, final bool) []token.Token {
	s.pending = append(s.pending, fragment...)

	run := &scanRun{src: s.pending, pos: s.base, markPos: s.base, final: final}
	tokens := run.scanAll()

	s.pending = s.pending[run.mark:]
	s.base = run.markPos
	if final {
		s.eof = true
	}
	return tokens
}

// scanRun scans as much of src as is provably complete. mark trails off: it
// sits just past the last emitted token (or skipped space), so an incomplete
// trailing token stays pending for the next fragment.
type scanRun struct {
	src     []byte
	pos     token.Position // Position of src[off]
	off     int
	mark    int
	markPos token.Position
	final   bool
}

func (r *scanRun) scanAll() []token.Token {
	var tokens []token.Token

	for r.off < len(r.src) {
		r.skipSpace()
		if r.off >= len(r.src) {
			break
		}

		if r.peek() == '#' {
			if !r.skipLineComment() {
				break
			}
			continue
		}

		tok, ok := r.scanToken()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
		r.commit()
	}

	return tokens
}

func (r *scanRun) commit() {
	r.mark = r.off
	r.markPos = r.pos
}

// scanToken scans one token starting at the current offset. It returns
// ok=false when the token reaches the end of the buffered input and a later
// fragment could still extend it.
func (r *scanRun) scanToken() (token.Token, bool) {
	start := r.off
	startPos := r.pos

	ch := r.advance()

	switch {
	case ch >= '0' && ch <= '9':
		return r.scanNumber(start, startPos)

	case ch == '"':
		return r.scanString(start, startPos)

	case ch >= 'a' && ch <= 'z' || ch == '_':
		return r.scanKeywordOrIdent(start, startPos)

	case ch == ';':
		if r.atEnd() && !r.final {
			return token.Token{}, false
		}
		if r.peek() == ';' {
			r.advance()
			return r.emit(token.SEMISEMI, start, startPos), true
		}
		return r.emit(token.ILLEGAL, start, startPos), true

	case ch == '-':
		// '-' alone or '->'
		if r.atEnd() && !r.final {
			return token.Token{}, false
		}
		if r.peek() == '>' {
			r.advance()
			return r.emit(token.ARROW, start, startPos), true
		}
		return r.emit(token.MINUS, start, startPos), true

	case ch == '=':
		return r.emit(token.EQUALS, start, startPos), true
	case ch == '+':
		return r.emit(token.PLUS, start, startPos), true
	case ch == '*':
		return r.emit(token.STAR, start, startPos), true
	case ch == '/':
		return r.emit(token.SLASH, start, startPos), true
	case ch == '^':
		return r.emit(token.CARET, start, startPos), true
	case ch == '<':
		return r.emit(token.LT, start, startPos), true
	case ch == '>':
		return r.emit(token.GT, start, startPos), true
	case ch == '(':
		return r.emit(token.LPAREN, start, startPos), true
	case ch == ')':
		return r.emit(token.RPAREN, start, startPos), true
	case ch == ',':
		return r.emit(token.COMMA, start, startPos), true

	default:
		return r.emit(token.ILLEGAL, start, startPos), true
	}
}

// scanNumber scans [0-9]+(\.[0-9]+)? into INT or FLOAT.
func (r *scanRun) scanNumber(start int, startPos token.Position) (token.Token, bool) {
	for !r.atEnd() && isDigit(r.peek()) {
		r.advance()
	}

	typ := token.INT
	// A trailing '.' is undecidable until the next byte is buffered.
	if !r.atEnd() && r.peek() == '.' && r.off+1 >= len(r.src) && !r.final {
		return token.Token{}, false
	}
	if !r.atEnd() && r.peek() == '.' && isDigit(r.peekAt(1)) {
		r.advance() // consume '.'
		for !r.atEnd() && isDigit(r.peek()) {
			r.advance()
		}
		typ = token.FLOAT
	}

	// More digits (or a fraction) could follow in the next fragment.
	if r.atEnd() && !r.final {
		return token.Token{}, false
	}
	return r.emit(typ, start, startPos), true
}

// scanString scans a quoted string. Strings never span lines; an unterminated
// string at end of line lexes as ILLEGAL.
func (r *scanRun) scanString(start int, startPos token.Position) (token.Token, bool) {
	for !r.atEnd() {
		ch := r.peek()
		if ch == '"' {
			r.advance()
			return r.emit(token.STRING, start, startPos), true
		}
		if ch == '\n' {
			return r.emit(token.ILLEGAL, start, startPos), true
		}
		if ch == '\\' && r.off+1 < len(r.src) {
			r.advance()
			r.advance()
		} else {
			r.advance()
		}
	}
	if !r.final {
		return token.Token{}, false
	}
	return r.emit(token.ILLEGAL, start, startPos), true
}

// scanKeywordOrIdent scans a lowercase identifier and classifies keywords.
func (r *scanRun) scanKeywordOrIdent(start int, startPos token.Position) (token.Token, bool) {
	for !r.atEnd() {
		ch := r.peek()
		if (ch < 'a' || ch > 'z') && (ch < 'A' || ch > 'Z') &&
			(ch < '0' || ch > '9') && ch != '_' && ch != '\'' {
			break
		}
		r.advance()
	}
	if r.atEnd() && !r.final {
		return token.Token{}, false
	}
	return r.emit(keywordType(r.src[start:r.off]), start, startPos), true
}

func keywordType(word []byte) token.Type {
	switch string(word) {
	case "let":
		return token.LET
	case "rec":
		return token.REC
	case "in":
		return token.IN
	case "if":
		return token.IF
	case "then":
		return token.THEN
	case "else":
		return token.ELSE
	case "fun":
		return token.FUN
	case "true":
		return token.TRUE
	case "false":
		return token.FALSE
	default:
		return token.IDENT
	}
}

func (r *scanRun) emit(typ token.Type, start int, startPos token.Position) token.Token {
	return token.Token{
		Type:   typ,
		Text:   string(r.src[start:r.off]),
		Start:  startPos.Offset,
		End:    startPos.Offset + (r.off - start),
		Line:   startPos.Line,
		Column: startPos.Column,
	}
}

// skipSpace skips whitespace, updating line/column tracking.
func (r *scanRun) skipSpace() {
	for r.off < len(r.src) {
		ch := r.src[r.off]
		if ch != ' ' && ch != '\t' && ch != '\n' && ch != '\r' {
			break
		}
		r.advance()
		r.commit()
	}
}

// skipLineComment skips a '#' comment through the end of line. Returns false
// when the line end has not been buffered yet and the input is not final.
func (r *scanRun) skipLineComment() bool {
	off := r.off
	for off < len(r.src) && r.src[off] != '\n' {
		off++
	}
	if off >= len(r.src) && !r.final {
		return false
	}
	for r.off < off {
		r.advance()
	}
	if r.off < len(r.src) {
		r.advance() // the newline
	}
	r.commit()
	return true
}

// Helper methods

func (r *scanRun) atEnd() bool {
	return r.off >= len(r.src)
}

func (r *scanRun) peek() byte {
	if r.off >= len(r.src) {
		return 0
	}
	return r.src[r.off]
}

func (r *scanRun) peekAt(n int) byte {
	if r.off+n >= len(r.src) {
		return 0
	}
	return r.src[r.off+n]
}

func (r *scanRun) advance() byte {
	if r.off >= len(r.src) {
		return 0
	}
	ch := r.src[r.off]
	r.off++
	if ch == '\n' {
		r.pos.Line++
		r.pos.Column = 1
	} else {
		r.pos.Column++
	}
	r.pos.Offset++
	return ch
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
