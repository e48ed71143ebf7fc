package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are two classes of nodes: Expressions and Statements, plus the
// Program/FuncDecl spine. All nodes implement the Node interface.
//
// The tree is strictly owned: every composite node exclusively owns its
// children, with no sharing, cycles, or back-references into the token
// stream. It is built once per parse, never mutated, and consumed exactly
// once by the code generator.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program and declarations

// Program is the root of the tree. It owns exactly one function.
type Program struct {
	node
	Func *FuncDecl
}

// FuncDecl represents the single function definition:
// "int" Name "(" ")" "{" Body "}"
type FuncDecl struct {
	node
	Name string      // function identifier
	Body *ReturnStmt // the single statement of the body
}

// ----------------------------------------------------------------------------
// Statements

// ReturnStmt represents: return Result ;
type ReturnStmt struct {
	stmt
	Result Expr // return value expression
}

// ----------------------------------------------------------------------------
// Expressions

// IntLit represents an integer literal.
type IntLit struct {
	expr
	Value int32
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
// For binary operations, both X and Y are set.
type Operation struct {
	expr
	Op Kind // operator token kind
	X  Expr // left operand (or only operand for unary)
	Y  Expr // right operand (nil for unary)
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr // inner expression
}
