package syntax

import "fmt"

// Pos is a position in a source file. The zero value is an invalid position;
// tokens built by hand (for example in tests) may carry it.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based byte offset in line
}

// NewPos creates a Pos with the given filename, line, and column.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String returns "filename:line:col", or "line:col" if filename is empty.
func (p Pos) String() string {
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsValid reports whether the position is valid (line > 0).
func (p Pos) IsValid() bool {
	return p.line > 0
}

// Line returns the 1-based line number.
func (p Pos) Line() uint32 { return p.line }

// Col returns the 1-based column number.
func (p Pos) Col() uint32 { return p.col }
