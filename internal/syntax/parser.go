package syntax

// Maximum expression nesting depth before aborting parse. Recursive descent
// recurses per parenthesis/unary level; the bound keeps adversarial input
// from exhausting the call stack.
const maxNestingDepth = 1024

// parser performs syntax analysis over an immutable token sequence with
// single-token lookahead. Parsing is total and deterministic: for any token
// sequence it yields exactly one tree or exactly one error, never a partial
// tree.
type parser struct {
	toks  []Token
	i     int // index of the lookahead token
	depth int // current expression nesting depth
}

// Parse builds the AST for a complete program from its token sequence.
// The first grammar-position failure aborts parsing and is returned as a
// *SyntaxError; tokens after the function's closing brace are ignored.
func Parse(tokens []Token) (*Program, error) {
	p := &parser{toks: tokens}

	fn, err := p.function()
	if err != nil {
		return nil, err
	}

	prog := &Program{Func: fn}
	prog.pos = fn.Pos()
	return prog, nil
}

// ----------------------------------------------------------------------------
// Token navigation

// tok returns the lookahead token, or an EOF token when exhausted.
func (p *parser) tok() Token {
	if p.i < len(p.toks) {
		return p.toks[p.i]
	}
	var pos Pos
	if n := len(p.toks); n > 0 {
		pos = p.toks[n-1].Pos
	}
	return Token{Kind: _EOF, Pos: pos}
}

// next consumes and returns the lookahead token.
func (p *parser) next() Token {
	t := p.tok()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

// got reports whether the lookahead token has kind k.
// If so, it consumes the token and returns true.
func (p *parser) got(k Kind) bool {
	if p.tok().Kind == k {
		p.i++
		return true
	}
	return false
}

// want consumes the lookahead token if it has kind k.
// Otherwise, it returns the SyntaxError for the given kind.
func (p *parser) want(k Kind, errKind ErrorKind, text string) error {
	if p.got(k) {
		return nil
	}
	return errorAt(errKind, text, p.tok().Pos)
}

// ----------------------------------------------------------------------------
// Declarations and statements

// function parses: "int" Identifier "(" ")" "{" Statement "}"
func (p *parser) function() (*FuncDecl, error) {
	fn := &FuncDecl{}
	fn.pos = p.tok().Pos

	if err := p.want(_Int, MissingKeyword, "int"); err != nil {
		return nil, err
	}

	name := p.tok()
	if name.Kind != _Name {
		return nil, errorAt(MissingIdentifier, name.Text, name.Pos)
	}
	p.next()
	fn.Name = name.Text

	if err := p.want(_Lparen, MissingOpenParen, ""); err != nil {
		return nil, err
	}
	if err := p.want(_Rparen, MissingCloseParen, ""); err != nil {
		return nil, err
	}
	if err := p.want(_Lbrace, MissingOpenBrace, ""); err != nil {
		return nil, err
	}

	body, err := p.returnStmt()
	if err != nil {
		return nil, err
	}
	fn.Body = body

	if err := p.want(_Rbrace, MissingCloseBrace, ""); err != nil {
		return nil, err
	}

	return fn, nil
}

// returnStmt parses: "return" Expr ";"
func (p *parser) returnStmt() (*ReturnStmt, error) {
	s := &ReturnStmt{}
	s.pos = p.tok().Pos

	// The only statement of the subset starts with "return".
	if p.tok().Kind != _Return {
		return nil, errorAt(UnexpectedToken, p.tok().Text, p.tok().Pos)
	}
	p.next()

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	s.Result = x

	if err := p.want(_Semi, MissingSemicolon, ""); err != nil {
		return nil, err
	}

	return s, nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *parser) expr() (Expr, error) {
	return p.binaryExpr(0)
}

// binaryExpr parses a binary expression with minimum precedence prec.
// Implements precedence climbing: within each tier, after the first operand
// it repeatedly peeks the lookahead and folds operands into a left-leaning
// Operation node while the operator belongs to the tier.
func (p *parser) binaryExpr(prec int) (Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		oprec := p.tok().Kind.Precedence()
		if oprec <= prec {
			return x, nil
		}

		// Binary node position starts at the left operand.
		op := &Operation{Op: p.tok().Kind, X: x}
		op.pos = x.Pos()

		p.next() // consume operator

		// Parse right operand with higher precedence (left associative).
		y, err := p.binaryExpr(oprec)
		if err != nil {
			return nil, err
		}
		op.Y = y
		x = op
	}
}

// factor parses the tightest-binding tier:
// IntLiteral | ("!"|"-"|"~") Factor | "(" Expr ")"
func (p *parser) factor() (Expr, error) {
	if p.depth >= maxNestingDepth {
		return nil, errorAt(Unknown, "expression nesting too deep", p.tok().Pos)
	}
	p.depth++
	defer func() { p.depth-- }()

	t := p.tok()
	switch {
	case t.Kind == _IntLit:
		p.next()
		lit := &IntLit{Value: t.Value}
		lit.pos = t.Pos
		return lit, nil

	case t.Kind.IsUnaryOp():
		p.next()
		op := &Operation{Op: t.Kind}
		op.pos = t.Pos
		x, err := p.factor()
		if err != nil {
			return nil, err
		}
		op.X = x
		return op, nil

	case t.Kind == _Lparen:
		p.next()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.want(_Rparen, MissingCloseParen, ""); err != nil {
			return nil, err
		}
		paren := &ParenExpr{X: x}
		paren.pos = t.Pos
		return paren, nil
	}

	// No valid factor can start at the lookahead token.
	return nil, errorAt(InvalidFactor, t.Text, t.Pos)
}
