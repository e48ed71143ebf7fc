package syntax

import (
	"io"
	"unicode/utf8"
)

// source is a character reader with position tracking.
// The entire input is read into memory once; the scanner then walks it
// character by character.
type source struct {
	buf []byte // source buffer

	filename string
	line     uint32 // current line number (1-based)
	col      uint32 // current column number (1-based)

	ch   rune // current character, -1 for EOF
	offs int  // current byte offset in buf
}

// newSource creates a new source from an io.Reader.
// A read failure is reported through the returned error; the source is
// still usable and behaves as empty input.
func newSource(filename string, src io.Reader) (*source, error) {
	s := &source{
		filename: filename,
		line:     1,
		col:      0,  // incremented to 1 by the first nextch()
		ch:       -1, // sentinel: "before first char"
	}

	var err error
	s.buf, err = io.ReadAll(src)
	if err != nil {
		s.buf = nil
		s.ch = -1
		return s, err
	}

	s.nextch()
	return s, nil
}

// nextch advances to the next character and updates the position.
// Sets s.ch to -1 at EOF.
//
// (line, col) always refers to the position of s.ch after nextch() returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// peekch returns the character after s.ch without consuming anything.
// Returns -1 at EOF.
func (s *source) peekch() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// Character classification helpers

// isLetter reports whether r can start an identifier (a-z, A-Z).
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isIdentRune reports whether r can continue an identifier (letter, digit, _).
func isIdentRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_'
}

// isDigit reports whether r is a decimal digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isHexDigit reports whether r is a hexadecimal digit.
func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

// isOctalDigit reports whether r is an octal digit.
func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

// lower returns the lowercase version of r if r is an ASCII letter,
// otherwise r unchanged.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace reports whether r is a whitespace character.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// isGroupDelim reports whether r is one of the grouping delimiters that end
// an invalid-identifier run: ( ) { }.
func isGroupDelim(r rune) bool {
	return r == '(' || r == ')' || r == '{' || r == '}'
}
