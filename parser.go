package lox

// Parser is a recursive-descent parser with one-token lookahead, pulled
// lazily from a Scanner rather than a pre-tokenized slice — nothing here
// needs random access, so pulling lazily avoids buffering the whole
// token stream up front.
//
// Parser keeps a single had_error flag and a list of ParseErrors: once an
// error has been recorded, further errors are dropped until the next
// synchronize() call resets had_error. This is a deliberate
// precision-over-recall choice: it avoids cascades of errors that all
// stem from the same syntax mistake.
type Parser struct {
	name    string
	scanner *Scanner

	errors   []*ParseError
	hadError bool
}

// NewParser builds a Parser pulling tokens from scanner. name is used only
// to label diagnostics (e.g. a filename, or "<repl>").
func NewParser(name string, scanner *Scanner) *Parser {
	return &Parser{name: name, scanner: scanner}
}

// IsAtEnd reports whether the next token is EOF.
func (p *Parser) IsAtEnd() bool {
	return p.peek().Type == EOF
}

// TakeErrors returns and clears the parser's recorded errors, resetting
// had_error so the next ParseDeclaration call starts clean. Callers are
// expected to call this after each top-level declaration.
func (p *Parser) TakeErrors() []*ParseError {
	errs := p.errors
	p.errors = nil
	p.hadError = false
	return errs
}

func (p *Parser) peek() Token {
	return p.scanner.PeekToken()
}

func (p *Parser) advance() Token {
	return p.scanner.NextToken()
}

func (p *Parser) check(typ TokenType) bool {
	return p.peek().Type == typ
}

// match consumes and returns the current token if it's one of types,
// otherwise it leaves the cursor alone and returns (Token{}, false).
func (p *Parser) match(types ...TokenType) (Token, bool) {
	for _, t := range types {
		if p.check(t) {
			return p.advance(), true
		}
	}
	return Token{}, false
}

// consume requires the current token to have type typ, advancing past it.
// If it doesn't, a ParseError is recorded at the current token.
func (p *Parser) consume(typ TokenType, message string) (Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), message)
}

// errorAt records a ParseError at tok. Once had_error is set the error
// is dropped (cascades are suppressed) until the next synchronize resets
// it.
func (p *Parser) errorAt(tok Token, message string) error {
	err := &ParseError{Token: tok, Message: message}
	if !p.hadError {
		p.errors = append(p.errors, err)
		p.hadError = true
	}
	return err
}

// softError records a diagnostic that doesn't represent a malformed
// program shape (e.g. exceeding the 255-argument cap) and so doesn't
// trigger synchronization.
func (p *Parser) softError(tok Token, message string) {
	p.errors = append(p.errors, &ParseError{Token: tok, Message: message})
}

// statementStarters are the keywords synchronize() treats as plausible
// resumption points.
var statementStarters = map[TokenType]bool{
	Class: true, Fun: true, Var: true, For: true,
	If: true, While: true, Print: true, Return: true,
}

// synchronize advances past tokens until the next token is EOF, a
// statement-starter keyword, or a ';' has just been consumed, bringing
// the parser back to a plausible statement boundary. Called after a
// parse error is reported, right before the driver moves on.
func (p *Parser) synchronize() {
	p.hadError = false
	for !p.IsAtEnd() {
		if p.peek().Type == Semicolon {
			p.advance()
			return
		}
		if statementStarters[p.peek().Type] {
			return
		}
		p.advance()
	}
}

// ParseDeclaration parses a single top-level declaration. On a parse
// error, it synchronizes and returns the error; the driver is expected to
// call TakeErrors, report them, and move on to the next declaration.
func (p *Parser) ParseDeclaration() (Stmt, error) {
	stmt, err := p.declaration()
	if err != nil {
		p.synchronize()
	}
	return stmt, err
}

func (p *Parser) declaration() (Stmt, error) {
	if _, ok := p.match(Fun); ok {
		return p.function("function")
	}
	if _, ok := p.match(Var); ok {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) function(kind string) (Stmt, error) {
	name, err := p.consume(Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []Token
	if !p.check(RightParen) {
		for {
			if len(params) >= 255 {
				p.softError(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if _, ok := p.match(Comma); !ok {
				break
			}
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	if _, err := p.consume(LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr
	if _, ok := p.match(Equal); ok {
		initializer, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.check(Print):
		p.advance()
		return p.printStatement()
	case p.check(Return):
		keyword := p.advance()
		return p.returnStatement(keyword)
	case p.check(If):
		p.advance()
		return p.ifStatement()
	case p.check(While):
		p.advance()
		return p.whileStatement()
	case p.check(For):
		p.advance()
		return p.forStatement()
	case p.check(LeftBrace):
		p.advance()
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() (Stmt, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: expr}, nil
}

func (p *Parser) returnStatement(keyword Token) (Stmt, error) {
	var value Expr
	if !p.check(Semicolon) {
		var err error
		value, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) block() ([]Stmt, error) {
	var stmts []Stmt
	for !p.check(RightBrace) && !p.IsAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}

	var elseBranch Stmt
	if _, ok := p.match(Else); ok {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &IfStmt{Condition: cond, Then: thenBranch, Else: elseBranch}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: cond, Body: body}, nil
}

// forStatement parses a C-style for loop and immediately desugars it into
// `{ init; while (cond) { body; increment; } }`, with an omitted
// condition replaced by literal true. This is the only nontrivial AST
// transformation the parser performs.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	switch {
	case p.check(Semicolon):
		p.advance()
		initializer = nil
	case p.check(Var):
		p.advance()
		var err error
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	default:
		var err error
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition Expr
	if !p.check(Semicolon) {
		var err error
		condition, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(RightParen) {
		var err error
		increment, err = p.ParseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExprStmt{Expression: increment}}}
	}

	if condition == nil {
		condition = &LiteralExpr{Value: BoolValue(true)}
	}
	body = &WhileStmt{Condition: condition, Body: body}

	if initializer != nil {
		body = &BlockStmt{Statements: []Stmt{initializer, body}}
	}

	return body, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expression: expr}, nil
}
