package parser

import (
	"fmt"
	"testing"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, errorMessages(p.Errors()))
	}
	return prog
}

func errorMessages(errs []*ParseError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Message
	}
	return out
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parseProgram(t, `var x = 1 + 2;`)
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", prog.Statements[0])
	}
	if stmt.Name != "x" {
		t.Fatalf("expected name x, got %s", stmt.Name)
	}
	if ast.Parenthesize(stmt.Initializer) != "(+ 1 2)" {
		t.Fatalf("unexpected initializer: %s", ast.Parenthesize(stmt.Initializer))
	}
}

func TestBinaryPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(+ 1 (* 2 3))"},
		{"1 - 2 - 3;", "(- (- 1 2) 3)"},
		{"1 < 2 == 3 < 4;", "(== (< 1 2) (< 3 4))"},
		{"!true;", "(! true)"},
		{"-1 + 2;", "(+ (- 1) 2)"},
	}
	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		stmt := prog.Statements[0].(*ast.ExpressionStmt)
		if got := ast.Parenthesize(stmt.Expr); got != tt.want {
			t.Fatalf("input %q: expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestAssignmentIsRightAssociativeAndTargetsVariable(t *testing.T) {
	prog := parseProgram(t, `a = b = 3;`)
	stmt := prog.Statements[0].(*ast.ExpressionStmt)
	assign, ok := stmt.Expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt.Expr)
	}
	if assign.Name != "a" {
		t.Fatalf("expected outer target a, got %s", assign.Name)
	}
	inner, ok := assign.Value.(*ast.Assign)
	if !ok || inner.Name != "b" {
		t.Fatalf("expected inner assignment to b, got %#v", assign.Value)
	}
}

func TestInvalidAssignmentTargetIsAnError(t *testing.T) {
	p := New(lexer.New(`1 = 2;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected an error for an invalid assignment target")
	}
	if p.Errors()[0].Message != "invalid assignment target" {
		t.Fatalf("unexpected message: %s", p.Errors()[0].Message)
	}
}

func TestReturnWithoutValueDesugarsToNull(t *testing.T) {
	prog := parseProgram(t, `fn f() { return; }`)
	fn := prog.Statements[0].(*ast.FunctionStmt)
	ret := fn.Body[0].(*ast.ReturnStmt)
	lit, ok := ret.Value.(*ast.Literal)
	if !ok || lit.Value != nil {
		t.Fatalf("expected bare return to desugar to Literal(null), got %#v", ret.Value)
	}
}

func TestForLoopDesugarsClauses(t *testing.T) {
	prog := parseProgram(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	forStmt := prog.Statements[0].(*ast.ForStmt)
	if forStmt.Initializer == nil || forStmt.Condition == nil || forStmt.Increment == nil {
		t.Fatalf("expected all three for-clauses to be present")
	}
	if _, ok := forStmt.Initializer.(*ast.VarStmt); !ok {
		t.Fatalf("expected initializer to be a VarStmt, got %T", forStmt.Initializer)
	}
}

func TestForLoopAllowsAbsentClauses(t *testing.T) {
	prog := parseProgram(t, `for (;;) print 1;`)
	forStmt := prog.Statements[0].(*ast.ForStmt)
	if forStmt.Initializer != nil || forStmt.Condition != nil || forStmt.Increment != nil {
		t.Fatalf("expected all three for-clauses to be absent")
	}
}

func TestCanonicalErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`1`, "Expected a `;` after the value"},
		{`print 1`, "Expected a `;` after the print value"},
		{`var x = 1`, "Expected a `;` after the variable initialization"},
		{`fn f() { return 1 }`, "Expected a `;` after the return value"},
		{`(1;`, "Expected a `)` after the expression"},
		{`if 1) {}`, "Expected a `(` after `if`"},
		{`if (1 {}`, "Expected a `)` after the `if` condition"},
		{`while 1) {}`, "Expected a `(` before the `while` condition"},
		{`while (1 {}`, "Expected a `)` after the `while` condition"},
		{`for ;;) {}`, "Expected a `(` before the `for` condition"},
		{`for (;1 {}`, "Expected a `;` after the `for`'s condition expression"},
		{`for (;; 1 {}`, "Expected a `)` after the `for` clause"},
		{`{ var x = 1;`, "Expected here a `}` to close the block"},
		{`fn f { }`, "Expected a `(` after the function's name"},
		{`fn f(a, b { }`, "Expected a `)` after the function's argument list"},
		{`fn f()`, "Expected here a block start - `{`"},
		{`var ;`, "Expected variable name here"},
	}
	for _, tt := range tests {
		p := New(lexer.New(tt.input))
		p.ParseProgram()
		if len(p.Errors()) == 0 {
			t.Fatalf("input %q: expected a parse error, got none", tt.input)
		}
		found := false
		for _, e := range p.Errors() {
			if e.Message == tt.want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("input %q: expected error %q, got %v", tt.input, tt.want, errorMessages(p.Errors()))
		}
	}
}

func TestSynchronizeRecoversAndContinuesParsing(t *testing.T) {
	p := New(lexer.New(`1 2; var x = 3;`))
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error from the first malformed statement")
	}
	var foundVar bool
	for _, stmt := range prog.Statements {
		if v, ok := stmt.(*ast.VarStmt); ok && v.Name == "x" {
			foundVar = true
		}
	}
	if !foundVar {
		t.Fatalf("expected parsing to recover and still find `var x = 3;`, got %s", fmt.Sprint(prog.Statements))
	}
}
