package token

// Type represents the type of token scanned from the input.
type Type uint8

const (
	// Special tokens
	EOF Type = iota
	ILLEGAL

	// Keywords
	LET   // let
	REC   // rec
	IN    // in
	IF    // if
	THEN  // then
	ELSE  // else
	FUN   // fun
	TRUE  // true
	FALSE // false

	// Literals
	IDENT  // x, foo_bar
	INT    // 42
	FLOAT  // 3.14
	STRING // "quoted string"

	// Symbols
	EQUALS   // =
	ARROW    // ->
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	CARET    // ^
	LT       // <
	GT       // >
	LPAREN   // (
	RPAREN   // )
	COMMA    // ,
	SEMISEMI // ;;
)

var typeNames = map[Type]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	LET:   "let",
	REC:   "rec",
	IN:    "in",
	IF:    "if",
	THEN:  "then",
	ELSE:  "else",
	FUN:   "fun",
	TRUE:  "true",
	FALSE: "false",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",

	EQUALS:   "=",
	ARROW:    "->",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	CARET:    "^",
	LT:       "<",
	GT:       ">",
	LPAREN:   "(",
	RPAREN:   ")",
	COMMA:    ",",
	SEMISEMI: ";;",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token represents a lexical unit positioned in the fed source.
// Tokens carry their text so they can be replayed into the parser without
// access to the original fragments they were scanned from.
type Token struct {
	Type   Type
	Text   string
	Start  int // Byte offset into the fed source
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Len returns the length of the token in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// StartPos returns the position of the token's first byte.
func (t Token) StartPos() Position {
	return Position{Offset: t.Start, Line: t.Line, Column: t.Column}
}

// EndPos returns the position one past the token's last byte. Tokens never
// span lines, so the end shares the start's line.
func (t Token) EndPos() Position {
	return Position{Offset: t.End, Line: t.Line, Column: t.Column + t.Len()}
}
