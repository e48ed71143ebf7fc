package codegen

import (
	"fmt"
	"io"
)

// emitter wraps an io.Writer with helpers for emitting AT&T assembly text.
type emitter struct {
	w     io.Writer
	err   error // first write error
	label int   // counter for unique local labels (.Land0, .Lend1, ...)
}

// emit writes a formatted line to the output (no indentation).
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitInst writes an indented instruction line.
func (e *emitter) emitInst(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "  "+format+"\n", args...)
}

// emitLabel writes a local label line.
func (e *emitter) emitLabel(label string) {
	e.emit("%s:", label)
}

// nextLabel returns a fresh local label with the given stem.
func (e *emitter) nextLabel(stem string) string {
	name := fmt.Sprintf(".L%s%d", stem, e.label)
	e.label++
	return name
}
