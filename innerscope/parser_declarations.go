package innerscope

func (p *parser) parseFunctionStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent) {
		return nil
	}
	fn := &FunctionStmt{Name: p.curToken.Literal, Parent: p.currentFunction(), position: pos}
	p.nextToken()

	// Optional parens on the same line.
	if p.curToken.Type == tokenLParen && p.curToken.Pos.Line == pos.Line {
		if p.peekToken.Type == tokenRParen {
			p.nextToken()
		} else {
			p.nextToken()
			fn.Params = p.parseParams()
			if !p.expectPeek(tokenRParen) {
				return nil
			}
		}
		p.nextToken()
	}

	p.functions = append(p.functions, fn)
	fn.Body = p.parseBlock(tokenEnd)
	p.functions = p.functions[:len(p.functions)-1]

	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "end")
		return nil
	}
	return fn
}

func (p *parser) parseParams() []Param {
	params := []Param{}
	seen := make(map[string]bool)
	for {
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "parameter name")
			return params
		}
		param := Param{Name: p.curToken.Literal}
		if seen[param.Name] {
			p.addParseError(p.curToken.Pos, "duplicate parameter "+param.Name)
		}
		seen[param.Name] = true
		if p.peekToken.Type == tokenAssign {
			p.nextToken()
			p.nextToken()
			param.DefaultVal = p.parseExpression(lowestPrec)
		}
		params = append(params, param)
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	return params
}

func (p *parser) parseBlockLiteral() *BlockLiteral {
	pos := p.curToken.Pos
	params := []string{}

	p.nextToken()
	if p.curToken.Type == tokenPipe {
		var ok bool
		params, ok = p.parseBlockParameters()
		if !ok {
			return nil
		}
		p.nextToken()
	}

	body := p.parseBlock(tokenEnd)
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "end")
		return nil
	}

	return &BlockLiteral{Params: params, Body: body, position: pos}
}

func (p *parser) parseBlockParameters() ([]string, bool) {
	params := []string{}
	p.nextToken()
	if p.curToken.Type == tokenPipe {
		return params, true
	}

	for {
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "block parameter")
			return nil, false
		}
		params = append(params, p.curToken.Literal)
		if p.peekToken.Type != tokenComma {
			break
		}
		p.nextToken()
		p.nextToken()
	}

	if !p.expectPeek(tokenPipe) {
		return nil, false
	}
	return params, true
}
