package syntax

import "fmt"

// ErrorKind identifies the exact grammar- or lexical-position failure of a
// compilation. The taxonomy is closed: the scanner and parser never produce
// an error outside this set, and repeated runs on the same input always
// reproduce the same kind.
type ErrorKind uint8

const (
	Unknown ErrorKind = iota

	// Lexical
	InvalidIdentifier // token is not a literal, operator, or identifier

	// Syntactic
	MissingKeyword
	MissingIdentifier
	MissingOpenParen
	MissingCloseParen
	MissingOpenBrace
	MissingCloseBrace
	MissingSemicolon
	InvalidExpression
	InvalidFactor
	UnexpectedToken
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case MissingKeyword:
		return "MissingKeyword"
	case MissingIdentifier:
		return "MissingIdentifier"
	case MissingOpenParen:
		return "MissingOpenParen"
	case MissingCloseParen:
		return "MissingCloseParen"
	case MissingOpenBrace:
		return "MissingOpenBrace"
	case MissingCloseBrace:
		return "MissingCloseBrace"
	case MissingSemicolon:
		return "MissingSemicolon"
	case InvalidExpression:
		return "InvalidExpression"
	case InvalidFactor:
		return "InvalidFactor"
	case UnexpectedToken:
		return "UnexpectedToken"
	}
	return "Unknown"
}

// SyntaxError is a structured scanner or parser error. Kind is the stable
// identity used for matching; Text carries the offending text (keyword name,
// invalid identifier) needed for a human-readable message.
type SyntaxError struct {
	Kind ErrorKind
	Text string
	Pos  Pos
}

func (e *SyntaxError) Error() string {
	msg := e.message()
	if e.Pos.IsValid() {
		return e.Pos.String() + ": " + msg
	}
	return msg
}

func (e *SyntaxError) message() string {
	switch e.Kind {
	case InvalidIdentifier:
		return fmt.Sprintf("invalid identifier: %s", e.Text)
	case MissingKeyword:
		return fmt.Sprintf("expected %q keyword", e.Text)
	case MissingIdentifier:
		return "expected identifier"
	case MissingOpenParen:
		return "expected opening parenthesis"
	case MissingCloseParen:
		return "expected closing parenthesis"
	case MissingOpenBrace:
		return "expected opening brace"
	case MissingCloseBrace:
		return "expected closing brace"
	case MissingSemicolon:
		return "expected semicolon"
	case InvalidExpression:
		return "invalid expression"
	case InvalidFactor:
		return "invalid factor"
	case UnexpectedToken:
		return "unexpected token"
	}
	if e.Text != "" {
		return e.Text
	}
	return "unknown error"
}

// errorAt builds a SyntaxError for the token at pos.
func errorAt(kind ErrorKind, text string, pos Pos) *SyntaxError {
	return &SyntaxError{Kind: kind, Text: text, Pos: pos}
}
