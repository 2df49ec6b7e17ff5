package lexer

import (
	"testing"

	"github.com/cwbudde/go-lox/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `var x = 5;
x = x + 10;
print x;`

	tests := []struct {
		expectedKind   token.Kind
		expectedLexeme string
	}{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Operator, "="},
		{token.Number, "5"},
		{token.Punctuation, ";"},
		{token.Identifier, "x"},
		{token.Operator, "="},
		{token.Identifier, "x"},
		{token.Operator, "+"},
		{token.Number, "10"},
		{token.Punctuation, ";"},
		{token.Keyword, "print"},
		{token.Identifier, "x"},
		{token.Punctuation, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s (lexeme=%q)", i, tt.expectedKind, tok.Kind, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	input := `! != = == > >= < <= + - * / && ||`
	expected := []string{"!", "!=", "=", "==", ">", ">=", "<", "<=", "+", "-", "*", "/", "&&", "||"}

	l := New(input)
	for i, want := range expected {
		tok := l.Next()
		if tok.Kind != token.Operator {
			t.Fatalf("tests[%d] - expected an operator token, got %s", i, tok.Kind)
		}
		if tok.Lexeme != want {
			t.Fatalf("tests[%d] - expected %q, got %q", i, want, tok.Lexeme)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5", 5},
		{"5.5", 5.5},
		{"1_000", 1000},
		{"1_000.25", 1000.25},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Kind != token.Number {
			t.Fatalf("input %q: expected Number, got %s", tt.input, tok.Kind)
		}
		if tok.Literal.(float64) != tt.want {
			t.Fatalf("input %q: expected %v, got %v", tt.input, tt.want, tok.Literal)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`""`, ""},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Kind != token.String {
			t.Fatalf("input %q: expected String, got %s", tt.input, tok.Kind)
		}
		if tok.Literal.(string) != tt.want {
			t.Fatalf("input %q: expected %q, got %q", tt.input, tt.want, tok.Literal)
		}
	}
}

func TestBooleanAndNullLiterals(t *testing.T) {
	l := New("true false null")

	tok := l.Next()
	if tok.Kind != token.Boolean || tok.Literal.(bool) != true {
		t.Fatalf("expected Boolean(true), got %s(%v)", tok.Kind, tok.Literal)
	}
	tok = l.Next()
	if tok.Kind != token.Boolean || tok.Literal.(bool) != false {
		t.Fatalf("expected Boolean(false), got %s(%v)", tok.Kind, tok.Literal)
	}
	tok = l.Next()
	if tok.Kind != token.Null {
		t.Fatalf("expected Null, got %s", tok.Kind)
	}
}

func TestWhitespaceAndEOLAreFiltered(t *testing.T) {
	l := New("  \t\n\n  var   \n x\n")
	tok := l.Next()
	if tok.Kind != token.Keyword || tok.Lexeme != "var" {
		t.Fatalf("expected Keyword(var), got %s(%q)", tok.Kind, tok.Lexeme)
	}
	tok = l.Next()
	if tok.Kind != token.Identifier || tok.Lexeme != "x" {
		t.Fatalf("expected Identifier(x), got %s(%q)", tok.Kind, tok.Lexeme)
	}
	tok = l.Next()
	if tok.Kind != token.EOF {
		t.Fatalf("expected EOF, got %s", tok.Kind)
	}
}

func TestHaltsOnUnrecognizedInput(t *testing.T) {
	l := New("var x = 5; ` illegal")
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
	}
	if !l.Halted() {
		t.Fatalf("expected the lexer to halt on unrecognized input")
	}
}

func TestIdentifiersAllowUnderscoreAndDollar(t *testing.T) {
	l := New("_foo $bar baz_1")
	for _, want := range []string{"_foo", "$bar", "baz_1"} {
		tok := l.Next()
		if tok.Kind != token.Identifier || tok.Lexeme != want {
			t.Fatalf("expected Identifier(%s), got %s(%q)", want, tok.Kind, tok.Lexeme)
		}
	}
}
