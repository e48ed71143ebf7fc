package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.printf("Program %s\n", n.pos)
		p.indent++
		p.print(n.Func)
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name)
		p.printf("Body:\n")
		p.indent++
		p.print(n.Body)
		p.indent--
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		p.indent++
		p.printf("Result:\n")
		p.indent++
		p.print(n.Result)
		p.indent--
		p.indent--

	case *IntLit:
		p.printf("IntLit %d\n", n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("Operation %s (unary)\n", n.Op)
		} else {
			p.printf("Operation %s\n", n.Op)
		}
		p.indent++
		p.print(n.X)
		p.print(n.Y)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr\n")
		p.indent++
		p.print(n.X)
		p.indent--

	default:
		p.printf("%T\n", node)
	}
}

// String returns the compact single-line form of an expression, mainly for
// test failure messages.
func String(x Expr) string {
	var b strings.Builder
	writeExpr(&b, x)
	return b.String()
}

func writeExpr(b *strings.Builder, x Expr) {
	switch e := x.(type) {
	case *IntLit:
		fmt.Fprintf(b, "%d", e.Value)
	case *Operation:
		if e.Y == nil {
			fmt.Fprintf(b, "(%s", e.Op)
			writeExpr(b, e.X)
			b.WriteString(")")
			return
		}
		b.WriteString("(")
		writeExpr(b, e.X)
		fmt.Fprintf(b, " %s ", e.Op)
		writeExpr(b, e.Y)
		b.WriteString(")")
	case *ParenExpr:
		writeExpr(b, e.X)
	default:
		fmt.Fprintf(b, "%T", x)
	}
}
