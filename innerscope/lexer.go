package innerscope

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) peekRuneN(n int) rune {
	idx := l.offset
	for i := 0; i <= n; i++ {
		if idx >= len(l.input) {
			return 0
		}
		r, w := utf8.DecodeRuneInString(l.input[idx:])
		if i == n {
			return r
		}
		idx += w
	}
	return 0
}

// NextToken scans the next token, skipping whitespace and comments.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
	case '+':
		tok = l.single(tokenPlus)
	case '-':
		tok = l.single(tokenMinus)
	case '*':
		tok = l.single(tokenAsterisk)
	case '/':
		tok = l.single(tokenSlash)
	case '%':
		tok = l.single(tokenPercent)
	case '(':
		tok = l.single(tokenLParen)
	case ')':
		tok = l.single(tokenRParen)
	case '{':
		tok = l.single(tokenLBrace)
	case '}':
		tok = l.single(tokenRBrace)
	case '[':
		tok = l.single(tokenLBracket)
	case ']':
		tok = l.single(tokenRBracket)
	case ',':
		tok = l.single(tokenComma)
	case ':':
		if isIdentifierStart(l.peekRune()) {
			l.readRune()
			tok.Type = tokenSymbol
			tok.Literal = l.readIdentifier()
			return tok
		}
		tok = l.single(tokenColon)
	case '.':
		if l.peekRune() == '.' {
			tok = l.double(tokenRange)
		} else {
			tok = l.single(tokenDot)
		}
	case '!':
		if l.peekRune() == '=' {
			tok = l.double(tokenNotEQ)
		} else {
			tok = l.single(tokenBang)
		}
	case '=':
		if l.peekRune() == '=' {
			tok = l.double(tokenEQ)
		} else {
			tok = l.single(tokenAssign)
		}
	case '>':
		if l.peekRune() == '=' {
			tok = l.double(tokenGTE)
		} else {
			tok = l.single(tokenGT)
		}
	case '<':
		if l.peekRune() == '=' {
			tok = l.double(tokenLTE)
		} else {
			tok = l.single(tokenLT)
		}
	case '&':
		if l.peekRune() == '&' {
			tok = l.double(tokenAnd)
		} else {
			tok = l.single(tokenIllegal)
		}
	case '|':
		if l.peekRune() == '|' {
			tok = l.double(tokenOr)
		} else {
			tok = l.single(tokenPipe)
		}
	case '"':
		literal, err := l.readString()
		if err != "" {
			tok.Type = tokenIllegal
			tok.Literal = err
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
			return tok
		case unicode.IsDigit(l.ch):
			literal, isFloat := l.readNumber()
			tok.Literal = literal
			if isFloat {
				tok.Type = tokenFloat
			} else {
				tok.Type = tokenInt
			}
			return tok
		default:
			tok = l.single(tokenIllegal)
		}
	}

	return tok
}

func (l *lexer) single(tt TokenType) Token {
	tok := Token{Type: tt, Literal: string(l.ch), Pos: Position{Line: l.line, Column: l.column}}
	l.readRune()
	return tok
}

func (l *lexer) double(tt TokenType) Token {
	pos := Position{Line: l.line, Column: l.column}
	first := l.ch
	l.readRune()
	tok := Token{Type: tt, Literal: string(first) + string(l.ch), Pos: pos}
	l.readRune()
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readRune()
		case '#':
			for l.ch != 0 && l.ch != '\n' {
				l.readRune()
			}
		default:
			return
		}
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readNumber() (string, bool) {
	var sb strings.Builder
	hasDot := false

	sb.WriteRune(l.ch)

	for {
		r := l.peekRune()
		switch {
		case r == '_':
			// Underscores are visual separators and only count between digits.
			if unicode.IsDigit(l.ch) && unicode.IsDigit(l.peekRuneN(1)) {
				l.readRune()
				continue
			}
			goto done
		case r == '.' && !hasDot && unicode.IsDigit(l.peekRuneN(1)):
			hasDot = true
			l.readRune()
			sb.WriteRune('.')
		case unicode.IsDigit(r):
			l.readRune()
			sb.WriteRune(r)
		default:
			goto done
		}
	}

done:
	l.readRune()
	return sb.String(), hasDot
}

func (l *lexer) readString() (string, string) {
	var sb strings.Builder

	for {
		l.readRune()
		switch l.ch {
		case 0:
			return "", "unterminated string"
		case '"':
			l.readRune()
			return sb.String(), ""
		case '\\':
			next := l.peekRune()
			l.readRune()
			switch next {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(next)
			}
		default:
			sb.WriteRune(l.ch)
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '?'
}

var keywords = map[string]TokenType{
	"def":    tokenDef,
	"end":    tokenEnd,
	"return": tokenReturn,
	"yield":  tokenYield,
	"raise":  tokenRaise,
	"do":     tokenDo,
	"for":    tokenFor,
	"while":  tokenWhile,
	"break":  tokenBreak,
	"next":   tokenNext,
	"in":     tokenIn,
	"if":     tokenIf,
	"elsif":  tokenElsif,
	"else":   tokenElse,
	"true":   tokenTrue,
	"false":  tokenFalse,
	"nil":    tokenNil,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
