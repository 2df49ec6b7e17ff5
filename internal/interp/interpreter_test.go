package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
)

func runProgram(t *testing.T, src string) (stdout string, runtimeErrs []*RuntimeError) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	var buf bytes.Buffer
	interp := New(&buf)
	errs := interp.Run(prog)
	return buf.String(), errs
}

func TestPrintDisplayForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print 7;`, "7\n"},
		{`print 2.5;`, "2.5\n"},
		{`print "hi";`, "hi\n"},
		{`print true;`, "true\n"},
		{`print false;`, "false\n"},
		{`print null;`, "null\n"},
	}
	for _, tt := range tests {
		out, errs := runProgram(t, tt.src)
		if len(errs) > 0 {
			t.Fatalf("src %q: unexpected runtime errors: %v", tt.src, errs)
		}
		if out != tt.want {
			t.Fatalf("src %q: expected %q, got %q", tt.src, tt.want, out)
		}
	}
}

func TestEnvironmentDefineGetAssignScoping(t *testing.T) {
	out, errs := runProgram(t, `
var x = 1;
{
  var x = 2;
  print x;
}
print x;
x = 3;
print x;
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected runtime errors: %v", errs)
	}
	if out != "2\n1\n3\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAssignToUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errs := runProgram(t, `x = 1;`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one runtime error, got %d", len(errs))
	}
}

func TestTruthiness(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{`print !0;`, true},
		{`print !1;`, false},
		{`print !"";`, true},
		{`print !"x";`, false},
		{`print !false;`, true},
		{`print !null;`, true},
	}
	for _, tt := range tests {
		out, errs := runProgram(t, tt.src)
		if len(errs) > 0 {
			t.Fatalf("src %q: unexpected errors: %v", tt.src, errs)
		}
		want := "false\n"
		if tt.want {
			want = "true\n"
		}
		if out != want {
			t.Fatalf("src %q: expected %q, got %q", tt.src, want, out)
		}
	}
}

func TestStructuralEquality(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print null == null;`, "true\n"},
		{`print 1 == "1";`, "false\n"},
		{`print 1 == 1;`, "true\n"},
		{`print "a" == "a";`, "true\n"},
		{`print true == false;`, "false\n"},
	}
	for _, tt := range tests {
		out, errs := runProgram(t, tt.src)
		if len(errs) > 0 {
			t.Fatalf("src %q: unexpected errors: %v", tt.src, errs)
		}
		if out != tt.want {
			t.Fatalf("src %q: expected %q, got %q", tt.src, tt.want, out)
		}
	}
}

func TestStringNumberMultiplyRepeats(t *testing.T) {
	out, errs := runProgram(t, `print "ab" * 3;`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "ababab\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestAddRequiresBothOperandsSameKind(t *testing.T) {
	tests := []string{
		`print 1 + "x";`,
		`print "x" + 1;`,
		`print true + "x";`,
		`print "x" + true;`,
	}
	for _, src := range tests {
		_, errs := runProgram(t, src)
		if len(errs) != 1 {
			t.Fatalf("src %q: expected exactly one TypeError, got %d", src, len(errs))
		}
		if errs[0].Kind != TypeError {
			t.Fatalf("src %q: expected TypeError, got %v", src, errs[0].Kind)
		}
	}
}

func TestStringComparisonIsATypeError(t *testing.T) {
	tests := []string{
		`print "a" < "b";`,
		`print "a" <= "b";`,
		`print "a" > "b";`,
		`print "a" >= "b";`,
	}
	for _, src := range tests {
		_, errs := runProgram(t, src)
		if len(errs) != 1 {
			t.Fatalf("src %q: expected exactly one TypeError, got %d", src, len(errs))
		}
		if errs[0].Kind != TypeError {
			t.Fatalf("src %q: expected TypeError, got %v", src, errs[0].Kind)
		}
	}
}

func TestUnaryCoercion(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`print -"5";`, "-5\n"},
		{`print -true;`, "-1\n"},
		{`print -false;`, "-0\n"},
		{`print -null;`, "-0\n"},
		{`print -"not a number";`, "null\n"},
	}
	for _, tt := range tests {
		out, errs := runProgram(t, tt.src)
		if len(errs) > 0 {
			t.Fatalf("src %q: unexpected errors: %v", tt.src, errs)
		}
		if out != tt.want {
			t.Fatalf("src %q: expected %q, got %q", tt.src, tt.want, out)
		}
	}
}

func TestLogicalShortCircuitReturnsOperandValue(t *testing.T) {
	out, errs := runProgram(t, `
print 0 || "fallback";
print "present" && 42;
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "fallback\n42\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestClosureAndRecursion(t *testing.T) {
	out, errs := runProgram(t, `
fn makeCounter() {
  var n = 0;
  fn counter() {
    n = n + 1;
    return n;
  }
  return counter;
}
var c = makeCounter();
print c();
print c();

fn fib(n) {
  if (n < 2) { return n; }
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "1\n2\n55\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestMissingArgsBindToNullExtraArgsIgnored(t *testing.T) {
	out, errs := runProgram(t, `
fn f(a, b) { print a; print b; }
f(1, 2, 3);
f(1);
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "1\n2\n1\nnull\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestForLoopWithAbsentConditionLoopsUntilReturn(t *testing.T) {
	out, errs := runProgram(t, `
var count = 0;
for (var i = 0; ; i = i + 1) {
  count = count + 1;
  if (count > 2) { return; }
}
print count;
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if out != "3\n" {
		t.Fatalf("expected an absent condition to loop forever until the explicit return, got %q", out)
	}
}

func TestNativeFnDisplay(t *testing.T) {
	out, errs := runProgram(t, `print clock;`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "<native fn `clock`>") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUserFnDisplay(t *testing.T) {
	out, errs := runProgram(t, `
fn add(a, b) { return a + b; }
print add;
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if !strings.Contains(out, "function add(a, b)") {
		t.Fatalf("unexpected output: %q", out)
	}
}
