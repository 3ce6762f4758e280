package innerscope

import (
	"strings"
	"testing"
)

func parseProgram(t *testing.T, source string) *Program {
	t.Helper()
	program, errs := newParser(source).ParseProgram()
	if len(errs) > 0 {
		t.Fatalf("parse failed: %v", combineErrors(errs))
	}
	return program
}

func TestParseFunctionDeclaration(t *testing.T) {
	program := parseProgram(t, `def greet(name, greeting = "hi")
  message = greeting + " " + name
  return message
end`)

	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	fn, ok := program.Statements[0].(*FunctionStmt)
	if !ok {
		t.Fatalf("expected function statement, got %T", program.Statements[0])
	}
	if fn.Name != "greet" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function header: %s with %d params", fn.Name, len(fn.Params))
	}
	if fn.Params[1].DefaultVal == nil {
		t.Fatalf("expected default value for greeting")
	}
	if fn.Parent != nil {
		t.Fatalf("top-level function should have no parent")
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[1].(*ReturnStmt); !ok {
		t.Fatalf("expected return statement, got %T", fn.Body[1])
	}
}

func TestParseNestedFunctionRecordsParent(t *testing.T) {
	program := parseProgram(t, `def outer(a)
  def inner(b)
    def innermost
      a + b
    end
  end
end`)

	outer := program.Statements[0].(*FunctionStmt)
	inner := outer.Body[0].(*FunctionStmt)
	innermost := inner.Body[0].(*FunctionStmt)
	if inner.Parent != outer {
		t.Fatalf("inner parent = %v, want outer", inner.Parent)
	}
	if innermost.Parent != inner {
		t.Fatalf("innermost parent = %v, want inner", innermost.Parent)
	}
}

func TestParseCallArguments(t *testing.T) {
	program := parseProgram(t, `def run
  build(1, 2, name: "x", size: 3)
end`)

	fn := program.Statements[0].(*FunctionStmt)
	call := fn.Body[0].(*ExprStmt).Expr.(*CallExpr)
	if len(call.Args) != 2 || len(call.KwArgs) != 2 {
		t.Fatalf("expected 2 args and 2 kwargs, got %d and %d", len(call.Args), len(call.KwArgs))
	}
	if call.KwArgs[0].Name != "name" || call.KwArgs[1].Name != "size" {
		t.Fatalf("unexpected keyword order: %v", call.KwArgs)
	}
}

func TestParseBlocksAndControlFlow(t *testing.T) {
	program := parseProgram(t, `def run(items)
  total = 0
  items.each do |item|
    total = total + item
  end
  for i in 1..3
    if i == 2
      next
    elsif i > 2
      break
    else
      total = total + i
    end
  end
  while total > 10
    total = total - 1
  end
  total
end`)

	fn := program.Statements[0].(*FunctionStmt)
	if len(fn.Body) != 5 {
		t.Fatalf("expected 5 statements, got %d", len(fn.Body))
	}
	call, ok := fn.Body[1].(*ExprStmt).Expr.(*CallExpr)
	if !ok || call.Block == nil {
		t.Fatalf("expected call with block, got %T", fn.Body[1].(*ExprStmt).Expr)
	}
	if len(call.Block.Params) != 1 || call.Block.Params[0] != "item" {
		t.Fatalf("unexpected block params %v", call.Block.Params)
	}
	loop := fn.Body[2].(*ForStmt)
	ifStmt := loop.Body[0].(*IfStmt)
	if len(ifStmt.ElseIf) != 1 || len(ifStmt.Alternate) != 1 {
		t.Fatalf("expected one elsif and an else branch")
	}
	if _, ok := fn.Body[3].(*WhileStmt); !ok {
		t.Fatalf("expected while statement, got %T", fn.Body[3])
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	program := parseProgram(t, `def run
  1 + 2 * 3 == 7 && true
end`)
	fn := program.Statements[0].(*FunctionStmt)
	and, ok := fn.Body[0].(*ExprStmt).Expr.(*BinaryExpr)
	if !ok || and.Operator != tokenAnd {
		t.Fatalf("expected && at the root")
	}
	eq := and.Left.(*BinaryExpr)
	if eq.Operator != tokenEQ {
		t.Fatalf("expected == under &&, got %s", eq.Operator)
	}
	sum := eq.Left.(*BinaryExpr)
	if sum.Operator != tokenPlus {
		t.Fatalf("expected + under ==, got %s", sum.Operator)
	}
	if product := sum.Right.(*BinaryExpr); product.Operator != tokenAsterisk {
		t.Fatalf("expected * under +, got %s", product.Operator)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing end", "def run\n  x = 1\n", "expected end"},
		{"positional after keyword", "def run\n  f(a: 1, 2)\nend", "positional argument after keyword argument"},
		{"duplicate param", "def run(a, a)\nend", "duplicate parameter a"},
		{"bad hash key", "def run\n  {1: 2}\nend", "invalid hash pair"},
		{"unexpected token", "def run\n  x = )\nend", "unexpected token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := newParser(tt.source).ParseProgram()
			if len(errs) == 0 {
				t.Fatalf("expected parse error")
			}
			if msg := combineErrors(errs).Error(); !strings.Contains(msg, tt.want) {
				t.Fatalf("expected %q in error, got %q", tt.want, msg)
			}
		})
	}
}

func TestParseErrorCodeFrame(t *testing.T) {
	_, err := newTestEngine(t, Config{}).Compile("def run\n  x = )\nend")
	if err == nil {
		t.Fatalf("expected compile error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "parse error at 2:7") {
		t.Fatalf("expected position in error, got %q", msg)
	}
	if !strings.Contains(msg, "^") {
		t.Fatalf("expected caret code frame, got %q", msg)
	}
}
