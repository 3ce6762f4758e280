package innerscope

import "testing"

func TestLexerTokens(t *testing.T) {
	input := `def add(a, b = 2)
  # comment
  total = a + b * 1_000
  flags = [:on, "x\ty", 1.5, nil, true]
  total >= 3 && total != 4 || !ok?
  1..5
end`

	want := []struct {
		tt      TokenType
		literal string
	}{
		{tokenDef, "def"}, {tokenIdent, "add"}, {tokenLParen, "("}, {tokenIdent, "a"},
		{tokenComma, ","}, {tokenIdent, "b"}, {tokenAssign, "="}, {tokenInt, "2"}, {tokenRParen, ")"},
		{tokenIdent, "total"}, {tokenAssign, "="}, {tokenIdent, "a"}, {tokenPlus, "+"},
		{tokenIdent, "b"}, {tokenAsterisk, "*"}, {tokenInt, "1000"},
		{tokenIdent, "flags"}, {tokenAssign, "="}, {tokenLBracket, "["}, {tokenSymbol, "on"},
		{tokenComma, ","}, {tokenString, "x\ty"}, {tokenComma, ","}, {tokenFloat, "1.5"},
		{tokenComma, ","}, {tokenNil, "nil"}, {tokenComma, ","}, {tokenTrue, "true"}, {tokenRBracket, "]"},
		{tokenIdent, "total"}, {tokenGTE, ">="}, {tokenInt, "3"}, {tokenAnd, "&&"}, {tokenIdent, "total"},
		{tokenNotEQ, "!="}, {tokenInt, "4"}, {tokenOr, "||"}, {tokenBang, "!"}, {tokenIdent, "ok?"},
		{tokenInt, "1"}, {tokenRange, ".."}, {tokenInt, "5"},
		{tokenEnd, "end"}, {tokenEOF, ""},
	}

	l := newLexer(input)
	for i, expected := range want {
		tok := l.NextToken()
		if tok.Type != expected.tt || tok.Literal != expected.literal {
			t.Fatalf("token %d: expected %s %q, got %s %q", i, expected.tt, expected.literal, tok.Type, tok.Literal)
		}
	}
}

func TestLexerPositions(t *testing.T) {
	l := newLexer("a = 1\n  b = 2")
	expected := []Position{{1, 1}, {1, 3}, {1, 5}, {2, 3}, {2, 5}, {2, 7}}
	for i, pos := range expected {
		tok := l.NextToken()
		if tok.Pos != pos {
			t.Fatalf("token %d (%s): expected %v, got %v", i, tok.Literal, pos, tok.Pos)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tok := newLexer(`"open`).NextToken()
	if tok.Type != tokenIllegal || tok.Literal != "unterminated string" {
		t.Fatalf("expected unterminated string error, got %s %q", tok.Type, tok.Literal)
	}
}
