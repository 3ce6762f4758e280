package innerscope

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	errors []error

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn

	// functions is the stack of defs being parsed; the top is the parent of
	// any nested def.
	functions []*FunctionStmt
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}

	p.prefixFns = make(map[TokenType]prefixParseFn)
	p.infixFns = make(map[TokenType]infixParseFn)

	p.registerPrefix(tokenIdent, p.parseIdentifier)
	p.registerPrefix(tokenInt, p.parseIntegerLiteral)
	p.registerPrefix(tokenFloat, p.parseFloatLiteral)
	p.registerPrefix(tokenString, p.parseStringLiteral)
	p.registerPrefix(tokenTrue, p.parseBooleanLiteral)
	p.registerPrefix(tokenFalse, p.parseBooleanLiteral)
	p.registerPrefix(tokenNil, p.parseNilLiteral)
	p.registerPrefix(tokenSymbol, p.parseSymbolLiteral)
	p.registerPrefix(tokenLParen, p.parseGroupedExpression)
	p.registerPrefix(tokenLBracket, p.parseArrayLiteral)
	p.registerPrefix(tokenLBrace, p.parseHashLiteral)
	p.registerPrefix(tokenBang, p.parsePrefixExpression)
	p.registerPrefix(tokenMinus, p.parsePrefixExpression)
	p.registerPrefix(tokenYield, p.parseYieldExpression)

	for _, tt := range []TokenType{
		tokenPlus, tokenMinus, tokenSlash, tokenAsterisk, tokenPercent,
		tokenEQ, tokenNotEQ, tokenLT, tokenLTE, tokenGT, tokenGTE,
		tokenAnd, tokenOr,
	} {
		p.registerInfix(tt, p.parseInfixExpression)
	}
	p.registerInfix(tokenRange, p.parseRangeExpression)
	p.registerInfix(tokenLParen, p.parseCallExpression)
	p.registerInfix(tokenDot, p.parseMemberExpression)
	p.registerInfix(tokenLBracket, p.parseIndexExpression)

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) registerPrefix(tt TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *parser) registerInfix(tt TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// ParseProgram parses the whole input and returns every error encountered.
func (p *parser) ParseProgram() (*Program, []error) {
	program := &Program{}

	for p.curToken.Type != tokenEOF {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program, p.errors
}

func (p *parser) expectPeek(tt TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, tokenLabel(tt))
	return false
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekOnSameLine() bool {
	return p.peekToken.Pos.Line == p.curToken.Pos.Line
}

// peekEndsStatement reports whether the next token cannot start an operand
// of the current statement keyword.
func (p *parser) peekEndsStatement() bool {
	switch p.peekToken.Type {
	case tokenEOF, tokenEnd, tokenElse, tokenElsif:
		return true
	}
	return !p.peekOnSameLine()
}

func (p *parser) currentFunction() *FunctionStmt {
	if len(p.functions) == 0 {
		return nil
	}
	return p.functions[len(p.functions)-1]
}
