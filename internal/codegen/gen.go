// Package codegen lowers a parsed program to textual x86-64 assembly
// (AT&T syntax) for an external assembler and linker.
//
// Every expression evaluates into the accumulator register %eax. Binary
// operands are sequenced through the machine stack: the left operand is
// evaluated and pushed, the right operand is evaluated into %eax, then the
// saved left operand is popped into the secondary register %ecx and the
// two are combined.
package codegen

import (
	"fmt"
	"io"

	"github.com/mcc-lang/mcc/internal/syntax"
)

// Target carries the platform conventions the generator must follow.
type Target struct {
	// SymbolPrefix is prepended to every exported symbol name
	// ("_" on darwin, empty on linux ELF).
	SymbolPrefix string
}

// TargetFor returns the Target conventions for a GOOS value.
func TargetFor(goos string) Target {
	if goos == "darwin" {
		return Target{SymbolPrefix: "_"}
	}
	return Target{}
}

// Generate walks the AST in post-order and writes the program's assembly
// to w. A tree whose shape violates the grammar the parser enforces is a
// programmer error and is reported as an opaque error; a parser-produced
// tree can never trigger it.
func Generate(w io.Writer, prog *syntax.Program, target Target) error {
	if prog == nil || prog.Func == nil {
		return fmt.Errorf("codegen: program has no function")
	}

	g := &generator{e: emitter{w: w}, target: target}
	if err := g.genFunc(prog.Func); err != nil {
		return err
	}
	return g.e.err
}

type generator struct {
	e      emitter
	target Target
}

// genFunc emits one globally exported function.
func (g *generator) genFunc(fn *syntax.FuncDecl) error {
	if fn.Body == nil || fn.Body.Result == nil {
		return fmt.Errorf("codegen: function %s has no return expression", fn.Name)
	}

	label := g.target.SymbolPrefix + fn.Name
	g.e.emit(".globl %s", label)
	g.e.emitLabel(label)

	if err := g.genExpr(fn.Body.Result); err != nil {
		return err
	}

	g.e.emitInst("ret")
	return nil
}

// genExpr emits code leaving the expression's value in %eax.
func (g *generator) genExpr(x syntax.Expr) error {
	switch e := x.(type) {
	case *syntax.IntLit:
		g.e.emitInst("movl $%d, %%eax", e.Value)
		return nil

	case *syntax.ParenExpr:
		return g.genExpr(e.X)

	case *syntax.Operation:
		if e.Y == nil {
			return g.genUnary(e)
		}
		return g.genBinary(e)
	}

	return fmt.Errorf("codegen: unexpected expression node %T", x)
}

// genUnary evaluates the operand and applies the operator in place on the
// accumulator.
func (g *generator) genUnary(op *syntax.Operation) error {
	if err := g.genExpr(op.X); err != nil {
		return err
	}

	switch op.Op {
	case syntax.Sub:
		g.e.emitInst("negl %%eax")
	case syntax.Tilde:
		g.e.emitInst("notl %%eax")
	case syntax.Not:
		// Canonical 0/1 boolean: 1 exactly when the operand was zero.
		g.e.emitInst("cmpl $0, %%eax")
		g.e.emitInst("movl $0, %%eax")
		g.e.emitInst("sete %%al")
	default:
		return fmt.Errorf("codegen: unexpected unary operator %s", op.Op)
	}
	return nil
}

// genBinary emits a binary operation. && and || short-circuit; everything
// else evaluates both operands through the stack.
func (g *generator) genBinary(op *syntax.Operation) error {
	switch op.Op {
	case syntax.AndAnd:
		return g.genLogicalAnd(op)
	case syntax.OrOr:
		return g.genLogicalOr(op)
	}

	// Left operand into %eax, saved on the stack; right operand into %eax;
	// left popped back into the secondary register %ecx.
	if err := g.genExpr(op.X); err != nil {
		return err
	}
	g.e.emitInst("pushq %%rax")
	if err := g.genExpr(op.Y); err != nil {
		return err
	}
	g.e.emitInst("popq %%rcx")

	switch op.Op {
	case syntax.Add:
		g.e.emitInst("addl %%ecx, %%eax")
	case syntax.Sub:
		// Operand roles are swapped: the right operand occupies the
		// accumulator last, so compute secondary - accumulator.
		g.e.emitInst("subl %%eax, %%ecx")
		g.e.emitInst("movl %%ecx, %%eax")
	case syntax.Mul:
		g.e.emitInst("imull %%ecx, %%eax")
	case syntax.Div:
		// Dividend into the accumulator, sign-extend into %edx:%eax,
		// signed divide by the secondary register. Quotient lands in %eax.
		g.e.emitInst("xchgl %%ecx, %%eax")
		g.e.emitInst("cltd")
		g.e.emitInst("idivl %%ecx")
	case syntax.Eql:
		g.genCompare("sete")
	case syntax.Neq:
		g.genCompare("setne")
	case syntax.Lss:
		g.genCompare("setl")
	case syntax.Leq:
		g.genCompare("setle")
	case syntax.Gtr:
		g.genCompare("setg")
	case syntax.Geq:
		g.genCompare("setge")
	default:
		return fmt.Errorf("codegen: unexpected binary operator %s", op.Op)
	}
	return nil
}

// genCompare lowers a relational or equality operator to a compare-then-set
// sequence producing a canonical 0/1 result. The left operand is in %ecx,
// the right in %eax; cmpl sets flags for left ? right.
func (g *generator) genCompare(set string) {
	g.e.emitInst("cmpl %%eax, %%ecx")
	g.e.emitInst("movl $0, %%eax")
	g.e.emitInst("%s %%al", set)
}

// genLogicalAnd emits short-circuit &&: the right operand is evaluated only
// when the left is non-zero. The result is a canonical 0/1.
func (g *generator) genLogicalAnd(op *syntax.Operation) error {
	rhs := g.e.nextLabel("and")
	end := g.e.nextLabel("end")

	if err := g.genExpr(op.X); err != nil {
		return err
	}
	g.e.emitInst("cmpl $0, %%eax")
	g.e.emitInst("jne %s", rhs)
	// Left was zero; %eax already holds the canonical false result.
	g.e.emitInst("jmp %s", end)

	g.e.emitLabel(rhs)
	if err := g.genExpr(op.Y); err != nil {
		return err
	}
	g.e.emitInst("cmpl $0, %%eax")
	g.e.emitInst("movl $0, %%eax")
	g.e.emitInst("setne %%al")

	g.e.emitLabel(end)
	return nil
}

// genLogicalOr emits short-circuit ||: the right operand is evaluated only
// when the left is zero. The result is a canonical 0/1.
func (g *generator) genLogicalOr(op *syntax.Operation) error {
	rhs := g.e.nextLabel("or")
	end := g.e.nextLabel("end")

	if err := g.genExpr(op.X); err != nil {
		return err
	}
	g.e.emitInst("cmpl $0, %%eax")
	g.e.emitInst("je %s", rhs)
	g.e.emitInst("movl $1, %%eax")
	g.e.emitInst("jmp %s", end)

	g.e.emitLabel(rhs)
	if err := g.genExpr(op.Y); err != nil {
		return err
	}
	g.e.emitInst("cmpl $0, %%eax")
	g.e.emitInst("movl $0, %%eax")
	g.e.emitInst("setne %%al")

	g.e.emitLabel(end)
	return nil
}
