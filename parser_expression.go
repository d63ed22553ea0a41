package lox

// Expression grammar, precedence low to high:
//
//	expression  ::= assignment
//	assignment  ::= IDENT "=" assignment | logic_or
//	logic_or    ::= logic_and ("or" logic_and)*
//	logic_and   ::= equality ("and" equality)*
//	equality    ::= comparison (("!=" | "==") comparison)*
//	comparison  ::= term (("<"|"<="|">"|">=") term)*
//	term        ::= factor (("+"|"-") factor)*
//	factor      ::= unary (("*"|"/") unary)*
//	unary       ::= ("!"|"-") unary | call
//	call        ::= primary ( "(" arguments? ")" )*
//	arguments   ::= expression ("," expression)*      ; max 255
//	primary     ::= NUMBER | STRING | "true" | "false" | "nil"
//	              | "(" expression ")" | IDENT
//
// Each level is its own method, one per precedence tier, each delegating
// to the next-tighter tier for its operands.

// ParseExpression parses a full expression, starting at the loosest
// precedence (assignment).
func (p *Parser) ParseExpression() (Expr, error) {
	return p.assignment()
}

// assignment is right-associative: `a = b = c` parses as `a = (b = c)`.
// The left-hand side is parsed as a full logic_or expression first; it's
// only retroactively treated as an assignment target once `=` is seen,
// and only a Variable expression is a legal target.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if eq, ok := p.match(Equal); ok {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		if v, ok := expr.(*VariableExpr); ok {
			return &AssignExpr{Name: v.Name, Value: value}, nil
		}
		// Invalid target: record the error but don't propagate a hard error
		// that would abandon everything already parsed — the `=` and its
		// right-hand side have been consumed, so parsing simply carries on
		// from here; the error surfaces through TakeErrors.
		p.errorAt(eq, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser) or() (Expr, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(Or)
		if !ok {
			break
		}
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) and() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(And)
		if !ok {
			break
		}
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(BangEqual, EqualEqual)
		if !ok {
			break
		}
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(Greater, GreaterEqual, Less, LessEqual)
		if !ok {
			break
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(Plus, Minus)
		if !ok {
			break
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(Star, Slash)
		if !ok {
			break
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// unary is right-associative via direct recursion: "- - 1" parses as
// Unary(-, Unary(-, 1)).
func (p *Parser) unary() (Expr, error) {
	if op, ok := p.match(Bang, Minus); ok {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Right: right}, nil
	}
	return p.call()
}

// call is left-associative: a call's own result may immediately be
// called again, e.g. `makeCounter()()`.
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(LeftParen); !ok {
			break
		}
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(RightParen) {
		for {
			if len(args) >= 255 {
				p.softError(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.match(Comma); !ok {
				break
			}
		}
	}

	closingParen, err := p.consume(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}

	return &CallExpr{Callee: callee, ClosingParen: closingParen, Arguments: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case matchLit(p, False):
		return &LiteralExpr{Value: BoolValue(false)}, nil
	case matchLit(p, True):
		return &LiteralExpr{Value: BoolValue(true)}, nil
	case matchLit(p, Nil):
		return &LiteralExpr{Value: NilValue}, nil
	}

	if tok, ok := p.match(Number); ok {
		return &LiteralExpr{Value: NumberValue(tok.Literal.(float64))}, nil
	}
	if tok, ok := p.match(String); ok {
		return &LiteralExpr{Value: StringValue(tok.Literal.(string))}, nil
	}
	if tok, ok := p.match(Identifier); ok {
		return &VariableExpr{Name: tok}, nil
	}
	if _, ok := p.match(LeftParen); ok {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Inner: expr}, nil
	}

	return nil, p.errorAt(p.peek(), "Expect expression.")
}

func matchLit(p *Parser, typ TokenType) bool {
	_, ok := p.match(typ)
	return ok
}
