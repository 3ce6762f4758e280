package innerscope

import "fmt"

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorUnexpected(p.curToken)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekToken.Type != tokenEOF && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		// A call or index must open on the same line as its operand;
		// otherwise the bracket starts the next statement.
		if (p.peekToken.Type == tokenLParen || p.peekToken.Type == tokenLBracket) && !p.peekOnSameLine() {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	if right == nil {
		return nil
	}
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) parseRangeExpression(left Expression) Expression {
	pos := p.curToken.Pos
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &RangeExpr{Start: left, End: right, position: pos}
}

func (p *parser) parseCallExpression(function Expression) Expression {
	expr := &CallExpr{Callee: function, position: function.Pos()}

	if p.peekToken.Type == tokenRParen {
		p.nextToken()
		return expr
	}

	p.nextToken()
	if !p.parseCallArgument(expr) {
		return nil
	}
	for p.peekToken.Type == tokenComma {
		p.nextToken()
		p.nextToken()
		if !p.parseCallArgument(expr) {
			return nil
		}
	}

	if !p.expectPeek(tokenRParen) {
		return nil
	}
	return expr
}

func (p *parser) parseCallArgument(call *CallExpr) bool {
	if isLabelNameToken(p.curToken.Type) && p.peekToken.Type == tokenColon {
		name := p.curToken.Literal
		p.nextToken()
		p.nextToken()
		if p.curToken.Type == tokenComma || p.curToken.Type == tokenRParen {
			p.addParseError(p.curToken.Pos, fmt.Sprintf("missing value for keyword argument %s", name))
			return false
		}
		value := p.parseExpression(lowestPrec)
		if value == nil {
			return false
		}
		call.KwArgs = append(call.KwArgs, KeywordArg{Name: name, Value: value})
		return true
	}

	if len(call.KwArgs) > 0 {
		p.addParseError(p.curToken.Pos, "positional argument after keyword argument")
		return false
	}
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return false
	}
	call.Args = append(call.Args, expr)
	return true
}

func isLabelNameToken(tt TokenType) bool {
	if tt == tokenIdent {
		return true
	}
	for _, kw := range keywords {
		if kw == tt {
			return true
		}
	}
	return false
}

func (p *parser) parseMemberExpression(object Expression) Expression {
	if !isLabelNameToken(p.peekToken.Type) {
		p.errorExpected(p.peekToken, "member name")
		return nil
	}
	p.nextToken()
	return &MemberExpr{Object: object, Property: p.curToken.Literal, position: object.Pos()}
}

func (p *parser) parseIndexExpression(object Expression) Expression {
	pos := p.curToken.Pos
	p.nextToken()
	index := p.parseExpression(lowestPrec)
	if index == nil {
		return nil
	}
	if !p.expectPeek(tokenRBracket) {
		return nil
	}
	return &IndexExpr{Object: object, Index: index, position: pos}
}

func (p *parser) parseYieldExpression() Expression {
	pos := p.curToken.Pos
	var args []Expression
	switch {
	case p.peekToken.Type == tokenLParen && p.peekOnSameLine():
		p.nextToken()
		if p.peekToken.Type == tokenRParen {
			p.nextToken()
			break
		}
		p.nextToken()
		for {
			arg := p.parseExpression(lowestPrec)
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if p.peekToken.Type != tokenComma {
				break
			}
			p.nextToken()
			p.nextToken()
		}
		if !p.expectPeek(tokenRParen) {
			return nil
		}
	case p.prefixFns[p.peekToken.Type] != nil && !p.peekEndsStatement():
		p.nextToken()
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}
	return &YieldExpr{Args: args, position: pos}
}
