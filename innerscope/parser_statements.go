package innerscope

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenDef:
		return p.parseFunctionStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenRaise:
		return p.parseRaiseStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenFor:
		return p.parseForStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenBreak:
		return &BreakStmt{position: p.curToken.Pos}
	case tokenNext:
		return &NextStmt{position: p.curToken.Pos}
	case tokenIdent:
		if p.curToken.Literal == "assert" && p.peekToken.Type != tokenLParen {
			return p.parseAssertStatement()
		}
		return p.parseExpressionOrAssignStatement()
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.peekEndsStatement() {
		return &ReturnStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpressionWithBlock()
	if value == nil {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseRaiseStatement() Statement {
	pos := p.curToken.Pos
	if p.peekEndsStatement() {
		return &RaiseStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil {
		return nil
	}
	return &RaiseStmt{Value: value, position: pos}
}

// parseBlock parses statements until one of stop (or EOF) is the current token.
func (p *parser) parseBlock(stop ...TokenType) []Statement {
	stmts := []Statement{}
	for {
		for _, tt := range stop {
			if p.curToken.Type == tt {
				return stmts
			}
		}
		if p.curToken.Type == tokenEOF {
			return stmts
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.nextToken()
	}
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	expr := p.parseExpressionWithBlock()
	if expr == nil {
		return nil
	}

	if p.peekToken.Type == tokenAssign && isAssignable(expr) {
		pos := expr.Pos()
		p.nextToken()
		p.nextToken()
		value := p.parseExpressionWithBlock()
		if value == nil {
			return nil
		}
		return &AssignStmt{Target: expr, Value: value, position: pos}
	}

	return &ExprStmt{Expr: expr, position: expr.Pos()}
}

// parseExpressionWithBlock parses an expression and attaches a trailing
// do-block, turning a bare callee into a call.
func (p *parser) parseExpressionWithBlock() Expression {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if p.peekToken.Type != tokenDo {
		return expr
	}
	p.nextToken()
	block := p.parseBlockLiteral()
	if block == nil {
		return nil
	}
	call, ok := expr.(*CallExpr)
	if !ok {
		call = &CallExpr{Callee: expr, position: expr.Pos()}
	}
	call.Block = block
	return call
}

func (p *parser) parseAssertStatement() Statement {
	pos := p.curToken.Pos
	callee := &Identifier{Name: p.curToken.Literal, position: pos}
	if p.peekEndsStatement() {
		p.addParseError(pos, "assert requires a condition")
		return nil
	}
	p.nextToken()
	args := []Expression{}
	first := p.parseExpression(lowestPrec)
	if first == nil {
		return nil
	}
	args = append(args, first)
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		next := p.parseExpression(lowestPrec)
		if next == nil {
			return nil
		}
		args = append(args, next)
	}
	call := &CallExpr{Callee: callee, Args: args, position: pos}
	return &ExprStmt{Expr: call, position: pos}
}
