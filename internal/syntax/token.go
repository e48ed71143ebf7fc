// Package syntax implements lexical and syntactic analysis for the C subset
// accepted by mcc.
package syntax

import "fmt"

// Kind classifies a lexical token. The set is closed: every token the
// scanner can produce is one of the constants below.
type Kind uint8

const (
	// Special tokens
	_EOF Kind = iota // end of input

	// Literals
	_Name   // identifier: main, foo
	_IntLit // integer literal: 42, 0x2a, 052

	// Operators (ordered by precedence, low to high)
	_OrOr   // ||
	_AndAnd // &&

	_Eql // ==
	_Neq // !=

	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	_Add // +
	_Sub // -

	_Mul // *
	_Div // /

	// Unary-only operators
	_Not   // !
	_Tilde // ~

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrace // {
	_Rbrace // }
	_Semi   // ;

	// Keywords
	_Int    // int
	_Return // return

	kindCount
)

// kindNames maps kinds to their string representation.
var kindNames = [...]string{
	_EOF: "EOF",

	_Name:   "NAME",
	_IntLit: "INT",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",

	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",

	_Mul: "*",
	_Div: "/",

	_Not:   "!",
	_Tilde: "~",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrace: "{",
	_Rbrace: "}",
	_Semi:   ";",

	_Int:    "int",
	_Return: "return",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Precedence returns the binary operator precedence for k.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == !=
//	4: < <= > >=
//	5: + -
//	6: * /
func (k Kind) Precedence() int {
	switch k {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq:
		return 3
	case _Lss, _Leq, _Gtr, _Geq:
		return 4
	case _Add, _Sub:
		return 5
	case _Mul, _Div:
		return 6
	}
	return 0
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool {
	return k == _Int || k == _Return
}

// IsUnaryOp reports whether k can begin a unary expression.
func (k Kind) IsUnaryOp() bool {
	return k == _Sub || k == _Not || k == _Tilde
}

// IsEOF reports whether k marks the end of input.
func (k Kind) IsEOF() bool {
	return k == _EOF
}

// Exported operator kinds for code generator access
const (
	OrOr   Kind = _OrOr   // ||
	AndAnd Kind = _AndAnd // &&
	Eql    Kind = _Eql    // ==
	Neq    Kind = _Neq    // !=
	Lss    Kind = _Lss    // <
	Leq    Kind = _Leq    // <=
	Gtr    Kind = _Gtr    // >
	Geq    Kind = _Geq    // >=
	Add    Kind = _Add    // +
	Sub    Kind = _Sub    // -
	Mul    Kind = _Mul    // *
	Div    Kind = _Div    // /
	Not    Kind = _Not    // !
	Tilde  Kind = _Tilde  // ~
)

// Token is one lexical unit of a source file. Tokens are immutable and
// consumed strictly in order by the parser.
type Token struct {
	Kind  Kind
	Text  string // raw token text (identifier name, literal spelling)
	Value int32  // literal value, valid only when Kind == _IntLit
	Pos   Pos    // position of the first character
}

// String returns a compact representation for debug output.
func (t Token) String() string {
	switch t.Kind {
	case _Name:
		return fmt.Sprintf("NAME(%s)", t.Text)
	case _IntLit:
		return fmt.Sprintf("INT(%d)", t.Value)
	}
	return t.Kind.String()
}

// keywords maps keyword strings to their token kind.
var keywords = map[string]Kind{
	"int":    _Int,
	"return": _Return,
}

// LookupKeyword returns the kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return _Name
}
