package syntax

import (
	"io"
	"strconv"
	"strings"
)

// Scanner performs lexical analysis on mcc source code.
// It is a streaming scanner: Next advances to the next token, Token returns
// it. The first lexical error stops the stream (Token reports EOF afterward)
// and is available through Err.
type Scanner struct {
	source // embedded character reader

	tok Token        // current token
	err *SyntaxError // first lexical error
}

// NewScanner creates a Scanner for the given source.
// The returned error is non-nil only when reading src fails.
func NewScanner(filename string, src io.Reader) (*Scanner, error) {
	s, err := newSource(filename, src)
	if err != nil {
		return nil, err
	}
	return &Scanner{source: *s}, nil
}

// Tokenize converts an entire source into an ordered token sequence.
// Empty input yields an empty sequence and no error. The first lexical
// error aborts scanning and is returned as a *SyntaxError.
func Tokenize(filename string, src io.Reader) ([]Token, error) {
	s, err := NewScanner(filename, src)
	if err != nil {
		return nil, err
	}

	var toks []Token
	for {
		s.Next()
		if err := s.Err(); err != nil {
			return nil, err
		}
		if s.Token().Kind.IsEOF() {
			return toks, nil
		}
		toks = append(toks, s.Token())
	}
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.tok
}

// Err returns the first lexical error encountered, or nil.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	return nil
}

// Next advances to the next token. After a lexical error or at end of input
// the current token is EOF.
func (s *Scanner) Next() {
	if s.err != nil {
		s.tok = Token{Kind: _EOF, Pos: s.pos()}
		return
	}

	for isWhitespace(s.ch) {
		s.nextch()
	}

	pos := s.pos()

	switch {
	case s.ch < 0:
		s.tok = Token{Kind: _EOF, Pos: pos}

	case isDigit(s.ch):
		s.scanNumber(pos)

	case isLetter(s.ch):
		s.scanIdent(pos)

	default:
		s.scanOperator(pos)
	}
}

// setTok records a token of the given kind starting at pos.
func (s *Scanner) setTok(kind Kind, text string, pos Pos) {
	s.tok = Token{Kind: kind, Text: text, Pos: pos}
}

// scanOperator scans a delimiter or operator using longest-match-first:
// the two-character operators == != <= >= && || win over their
// single-character prefixes. A character that starts no known token falls
// through to scanInvalid.
func (s *Scanner) scanOperator(pos Pos) {
	switch s.ch {
	case '{':
		s.nextch()
		s.setTok(_Lbrace, "{", pos)
	case '}':
		s.nextch()
		s.setTok(_Rbrace, "}", pos)
	case '(':
		s.nextch()
		s.setTok(_Lparen, "(", pos)
	case ')':
		s.nextch()
		s.setTok(_Rparen, ")", pos)
	case ';':
		s.nextch()
		s.setTok(_Semi, ";", pos)
	case '+':
		s.nextch()
		s.setTok(_Add, "+", pos)
	case '-':
		s.nextch()
		s.setTok(_Sub, "-", pos)
	case '*':
		s.nextch()
		s.setTok(_Mul, "*", pos)
	case '/':
		s.nextch()
		s.setTok(_Div, "/", pos)
	case '~':
		s.nextch()
		s.setTok(_Tilde, "~", pos)
	case '!':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.setTok(_Neq, "!=", pos)
		} else {
			s.setTok(_Not, "!", pos)
		}
	case '<':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.setTok(_Leq, "<=", pos)
		} else {
			s.setTok(_Lss, "<", pos)
		}
	case '>':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.setTok(_Geq, ">=", pos)
		} else {
			s.setTok(_Gtr, ">", pos)
		}
	case '=':
		// Bare = is not a token of the subset.
		if s.peekch() == '=' {
			s.nextch()
			s.nextch()
			s.setTok(_Eql, "==", pos)
		} else {
			s.scanInvalid(pos)
		}
	case '&':
		if s.peekch() == '&' {
			s.nextch()
			s.nextch()
			s.setTok(_AndAnd, "&&", pos)
		} else {
			s.scanInvalid(pos)
		}
	case '|':
		if s.peekch() == '|' {
			s.nextch()
			s.nextch()
			s.setTok(_OrOr, "||", pos)
		} else {
			s.scanInvalid(pos)
		}
	default:
		s.scanInvalid(pos)
	}
}

// scanNumber scans an integer literal. Bases are tried in strict priority:
// hexadecimal (0x/0X prefix), then octal (leading 0 followed by octal
// digits), then decimal. Hex must come first because its prefix also
// matches the octal leading-zero pattern.
func (s *Scanner) scanNumber(pos Pos) {
	var digits strings.Builder
	base := 10
	text := ""

	switch {
	case s.ch == '0' && lower(s.peekch()) == 'x':
		// Only a prefix: 0x with no hex digit after it is the literal 0
		// followed by an identifier.
		s.nextch() // 0
		if !s.hasHexDigitAfterX() {
			s.emitInt("0", "0", 10, pos)
			return
		}
		marker := s.ch // x or X
		s.nextch()
		for isHexDigit(s.ch) {
			digits.WriteRune(s.ch)
			s.nextch()
		}
		base = 16
		text = "0" + string(marker) + digits.String()

	case s.ch == '0' && isOctalDigit(s.peekch()):
		s.nextch() // 0
		for isOctalDigit(s.ch) {
			digits.WriteRune(s.ch)
			s.nextch()
		}
		base = 8
		text = "0" + digits.String()

	default:
		for isDigit(s.ch) {
			digits.WriteRune(s.ch)
			s.nextch()
		}
		text = digits.String()
	}

	s.emitInt(text, digits.String(), base, pos)
}

// hasHexDigitAfterX reports whether the character after the current x/X
// marker is a hex digit. Called with s.ch on the marker.
func (s *Scanner) hasHexDigitAfterX() bool {
	return isHexDigit(s.peekch())
}

// emitInt parses digits in the given base into a 32-bit signed value.
// An out-of-range literal is not a valid token and is reported as an
// invalid identifier.
func (s *Scanner) emitInt(text, digits string, base int, pos Pos) {
	v, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		s.fail(InvalidIdentifier, text, pos)
		return
	}
	s.tok = Token{Kind: _IntLit, Text: text, Value: int32(v), Pos: pos}
}

// scanIdent scans an identifier or keyword: [A-Za-z]\w*.
func (s *Scanner) scanIdent(pos Pos) {
	var b strings.Builder
	b.WriteRune(s.ch)
	s.nextch()

	for isIdentRune(s.ch) {
		b.WriteRune(s.ch)
		s.nextch()
	}

	name := b.String()
	s.setTok(LookupKeyword(name), name, pos)
}

// scanInvalid consumes the longest run of characters that are neither
// whitespace nor a grouping delimiter and reports it as an invalid
// identifier.
func (s *Scanner) scanInvalid(pos Pos) {
	var b strings.Builder
	for s.ch >= 0 && !isWhitespace(s.ch) && !isGroupDelim(s.ch) {
		b.WriteRune(s.ch)
		s.nextch()
	}
	s.fail(InvalidIdentifier, b.String(), pos)
}

// fail records the first lexical error and ends the token stream.
func (s *Scanner) fail(kind ErrorKind, text string, pos Pos) {
	if s.err == nil {
		s.err = errorAt(kind, text, pos)
	}
	s.tok = Token{Kind: _EOF, Pos: pos}
}
