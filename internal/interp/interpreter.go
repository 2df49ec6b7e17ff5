// Package interp evaluates an *ast.Program against the runtime Value model
// described in spec §4.3: a global/local Environment chain, structural
// equality, truthiness-driven control flow, and the arithmetic/unary
// coercion rules confirmed against
// _examples/original_source/src/lox_rs/ast/visitors/interp.rs.
package interp

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/cwbudde/go-lox/internal/ast"
	"github.com/cwbudde/go-lox/internal/token"
)

// Interpreter walks a parsed program once, statement by statement. It is
// single-threaded and cooperative: there is no suspension point inside
// Eval/exec, so one Interpreter must not be driven concurrently from two
// goroutines. mu exists only to protect a process-wide singleton Interpreter
// if a caller chooses to expose one (spec's concurrency note); a
// single-owner Interpreter never needs it.
type Interpreter struct {
	mu sync.Mutex

	out    io.Writer
	logger *slog.Logger

	global *Environment
	env    *Environment

	hasReturn   bool
	returnValue Value
}

// New creates an Interpreter that writes `print` output to out and defines
// the built-in native functions in its global scope.
func New(out io.Writer, opts ...Option) *Interpreter {
	i := &Interpreter{
		out:    out,
		logger: slog.Default(),
		global: NewEnvironment(),
	}
	i.env = i.global
	registerBuiltins(i.global)
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithLogger routes diagnostic logging to a non-default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// Run executes every top-level statement in prog. It does not stop at the
// first runtime error: each top-level statement gets its own fresh attempt,
// matching the CLI's report-and-continue behavior (spec §6). It returns the
// errors encountered, in order, one per failing top-level statement.
func (i *Interpreter) Run(prog *ast.Program) []*RuntimeError {
	return i.RunWithHook(prog, nil)
}

// RunWithHook behaves like Run, but calls beforeEach (if non-nil) with every
// top-level statement immediately before it executes — the hook point the
// CLI's --dump-ast flag uses to print a statement's parenthesized form right
// before it runs.
func (i *Interpreter) RunWithHook(prog *ast.Program, beforeEach func(ast.Statement)) []*RuntimeError {
	i.mu.Lock()
	defer i.mu.Unlock()

	var errs []*RuntimeError
	for _, stmt := range prog.Statements {
		if beforeEach != nil {
			beforeEach(stmt)
		}
		if err := i.exec(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				errs = append(errs, rerr)
			} else {
				errs = append(errs, newRuntimeError(stmt.Pos(), "%s", err.Error()))
			}
		}
	}
	return errs
}

// ---- statement execution ----

func (i *Interpreter) exec(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := i.eval(s.Expr)
		return err
	case *ast.PrintStmt:
		val, err := i.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(i.out, displayValue(val))
		return nil
	case *ast.VarStmt:
		var val Value = Null{}
		if s.Initializer != nil {
			v, err := i.eval(s.Initializer)
			if err != nil {
				return err
			}
			val = v
		}
		i.env.Define(s.Name, val)
		return nil
	case *ast.BlockStmt:
		return i.execBlock(s.Statements, NewEnclosedEnvironment(i.env))
	case *ast.IfStmt:
		cond, err := i.eval(s.Condition)
		if err != nil {
			return err
		}
		if Truthy(cond) {
			return i.exec(s.Then)
		}
		if s.Else != nil {
			return i.exec(s.Else)
		}
		return nil
	case *ast.WhileStmt:
		for {
			cond, err := i.eval(s.Condition)
			if err != nil {
				return err
			}
			if !Truthy(cond) {
				return nil
			}
			if err := i.exec(s.Body); err != nil {
				return err
			}
			if i.hasReturn {
				return nil
			}
		}
	case *ast.ForStmt:
		return i.execFor(s)
	case *ast.FunctionStmt:
		i.env.Define(s.Name, UserFn{Decl: s, Closure: i.env})
		return nil
	case *ast.ReturnStmt:
		val, err := i.eval(s.Value)
		if err != nil {
			return err
		}
		i.hasReturn = true
		i.returnValue = val
		return nil
	default:
		return newRuntimeError(stmt.Pos(), "unhandled statement type %T", stmt)
	}
}

func (i *Interpreter) execBlock(stmts []ast.Statement, scope *Environment) error {
	prev := i.env
	i.env = scope
	defer func() { i.env = prev }()

	for _, stmt := range stmts {
		if err := i.exec(stmt); err != nil {
			return err
		}
		if i.hasReturn {
			return nil
		}
	}
	return nil
}

// execFor implements the desugared three-clause loop. An absent condition
// clause is treated as always-truthy — spec §9's Open Question resolution
// explicitly pins this to "absent condition ⇒ loop forever" (see
// SPEC_FULL.md), overriding the Null/falsy reading the grounding source
// happens to implement.
func (i *Interpreter) execFor(s *ast.ForStmt) error {
	scope := NewEnclosedEnvironment(i.env)
	prev := i.env
	i.env = scope
	defer func() { i.env = prev }()

	if s.Initializer != nil {
		if err := i.exec(s.Initializer); err != nil {
			return err
		}
	}

	for {
		var cond Value = Boolean{true}
		if s.Condition != nil {
			v, err := i.eval(s.Condition)
			if err != nil {
				return err
			}
			cond = v
		}
		if !Truthy(cond) {
			return nil
		}

		if err := i.exec(s.Body); err != nil {
			return err
		}
		if i.hasReturn {
			return nil
		}
		if s.Increment != nil {
			if _, err := i.eval(s.Increment); err != nil {
				return err
			}
		}
	}
}

// ---- expression evaluation ----

func (i *Interpreter) eval(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Variable:
		if v, ok := i.env.Get(e.Name); ok {
			return v, nil
		}
		return nil, newRuntimeError(e.Pos(), "undefined variable: %s", e.Name)
	case *ast.Assign:
		val, err := i.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if err := i.env.Assign(e.Name, val); err != nil {
			return nil, newRuntimeError(e.Pos(), "%s", err.Error())
		}
		return val, nil
	case *ast.Grouping:
		return i.eval(e.Expression)
	case *ast.Unary:
		return i.evalUnary(e)
	case *ast.Binary:
		return i.evalBinary(e)
	case *ast.Logical:
		return i.evalLogical(e)
	case *ast.Call:
		return i.evalCall(e)
	default:
		return nil, newRuntimeError(expr.Pos(), "unhandled expression type %T", expr)
	}
}

func literalValue(v any) Value {
	switch val := v.(type) {
	case float64:
		return Number{val}
	case string:
		return String{val}
	case bool:
		return Boolean{val}
	default:
		return Null{}
	}
}

func (i *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.OrOr:
		if Truthy(left) {
			return left, nil
		}
		return i.eval(e.Right)
	case token.AndAnd:
		if !Truthy(left) {
			return left, nil
		}
		return i.eval(e.Right)
	default:
		return nil, newRuntimeError(e.Pos(), "unknown logical operator %q", e.Op)
	}
}

func (i *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.Not:
		return Boolean{!Truthy(right)}, nil
	case token.Plus, token.Minus:
		n, isNull, err := coerceToNumber(right)
		if err != nil {
			return nil, newTypeError(e.Pos(), "%s", err.Error())
		}
		if isNull {
			return Null{}, nil
		}
		if e.Op == token.Minus {
			n = -n
		}
		return Number{n}, nil
	default:
		return nil, newRuntimeError(e.Pos(), "unknown unary operator %q", e.Op)
	}
}

// coerceToNumber implements the unary +/- coercion rule: a numeric string
// parses to its value, a non-numeric string yields Null (not an error), a
// Boolean is 1 or 0, Null is 0, and a function of either kind cannot be
// coerced at all.
func coerceToNumber(v Value) (n float64, isNull bool, err error) {
	switch val := v.(type) {
	case Number:
		return val.Value, false, nil
	case String:
		f, perr := strconv.ParseFloat(strings.TrimSpace(val.Value), 64)
		if perr != nil {
			return 0, true, nil
		}
		return f, false, nil
	case Boolean:
		if val.Value {
			return 1, false, nil
		}
		return 0, false, nil
	case Null:
		return 0, false, nil
	case NativeFn, UserFn:
		return 0, false, fmt.Errorf("cannot convert a function to a number")
	default:
		return 0, false, fmt.Errorf("cannot convert %s to a number", v.Type())
	}
}

func (i *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.Eq:
		return Boolean{Equal(left, right)}, nil
	case token.NotEq:
		return Boolean{!Equal(left, right)}, nil
	case token.Plus:
		return evalAdd(e.Pos(), left, right)
	case token.Minus:
		return evalArith(e.Pos(), left, right, func(a, b float64) float64 { return a - b })
	case token.Star:
		return evalMultiply(e.Pos(), left, right)
	case token.Slash:
		return evalArith(e.Pos(), left, right, func(a, b float64) float64 { return a / b })
	case token.Greater, token.GreaterE, token.Less, token.LessE:
		return evalCompare(e.Pos(), e.Op, left, right)
	default:
		return nil, newRuntimeError(e.Pos(), "unknown binary operator %q", e.Op)
	}
}

// evalAdd: Number+Number adds, String+String concatenates, anything else is
// a TypeError — spec §4.3's "number+number = number add; string+string =
// concatenation; otherwise error," matching interp.rs's Operator::Add arm.
func evalAdd(pos token.Position, left, right Value) (Value, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if lok && rok {
		return Number{ln.Value + rn.Value}, nil
	}
	ls, lIsStr := left.(String)
	rs, rIsStr := right.(String)
	if lIsStr && rIsStr {
		return String{ls.Value + rs.Value}, nil
	}
	return nil, newTypeError(pos, "cannot add %s and %s", left.Type(), right.Type())
}

// evalMultiply: Number*Number multiplies; String*Number (or the reverse)
// repeats the string round(n) times, per spec §4.3.
func evalMultiply(pos token.Position, left, right Value) (Value, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if lok && rok {
		return Number{ln.Value * rn.Value}, nil
	}
	if s, ok := left.(String); ok && rok {
		return String{repeatString(s.Value, rn.Value)}, nil
	}
	if s, ok := right.(String); ok && lok {
		return String{repeatString(s.Value, ln.Value)}, nil
	}
	return nil, newTypeError(pos, "cannot multiply %s and %s", left.Type(), right.Type())
}

// repeatString repeats s round(n) times, clamping a negative count to zero.
func repeatString(s string, n float64) string {
	count := int(n + 0.5)
	if n < 0 {
		count = int(n - 0.5)
	}
	if count < 0 {
		count = 0
	}
	return strings.Repeat(s, count)
}

func evalArith(pos token.Position, left, right Value, op func(a, b float64) float64) (Value, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, newTypeError(pos, "expected two numbers, got %s and %s", left.Type(), right.Type())
	}
	return Number{op(ln.Value, rn.Value)}, nil
}

// evalCompare implements <, <=, >, >= for numbers only — spec §4.3's
// "numbers only," matching interp.rs's Operator::Gt/Gte/Lt/Lte arms, which
// bail on anything but a (Number, Number) pair.
func evalCompare(pos token.Position, op string, left, right Value) (Value, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)
	if !lok || !rok {
		return nil, newTypeError(pos, "cannot compare %s and %s", left.Type(), right.Type())
	}
	return Boolean{compareNumbers(op, ln.Value, rn.Value)}, nil
}

func compareNumbers(op string, a, b float64) bool {
	switch op {
	case token.Greater:
		return a > b
	case token.GreaterE:
		return a >= b
	case token.Less:
		return a < b
	case token.LessE:
		return a <= b
	}
	return false
}

// ---- calls ----

func (i *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := i.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := i.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	switch fn := callee.(type) {
	case NativeFn:
		if len(args) != fn.Arity {
			return nil, newArityError(e.Paren.Pos, "%s expects %d argument(s), got %d", fn.Name, fn.Arity, len(args))
		}
		return fn.Fn(args)
	case UserFn:
		return i.callUserFn(fn, args)
	default:
		return nil, newTypeError(e.Pos(), "%s is not callable", callee.Type())
	}
}

// callUserFn executes a user-defined function. The closure's captured
// environment is extended to include the global chain, params are bound
// (missing args default to Null, extra args are ignored), and the function
// binds its own name to itself for direct recursion — grounded on
// ast/callables/custom_fn.rs's Callable::call.
func (i *Interpreter) callUserFn(fn UserFn, args []Value) (Value, error) {
	callEnv := NewEnclosedEnvironment(fn.Closure)
	for idx, param := range fn.Decl.Params {
		if idx < len(args) {
			callEnv.Define(param, args[idx])
		} else {
			callEnv.Define(param, Null{})
		}
	}
	callEnv.Define(fn.Decl.Name, fn)

	prevEnv := i.env
	prevHasReturn, prevReturnValue := i.hasReturn, i.returnValue
	i.env = callEnv
	i.hasReturn = false
	i.returnValue = nil

	var result Value = Null{}
	var runErr error
	for _, stmt := range fn.Decl.Body {
		if err := i.exec(stmt); err != nil {
			runErr = err
			break
		}
		if i.hasReturn {
			result = i.returnValue
			break
		}
	}

	i.env = prevEnv
	i.hasReturn, i.returnValue = prevHasReturn, prevReturnValue
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

// displayValue renders a Value the way `print` does: Number in shortest
// round-trip form, String unquoted, Boolean as true/false, Null as
// "null", NativeFn as `<native fn `name`>`, UserFn as its full signature and
// body. This delegates directly to Value.String(), which each kind already
// implements to this exact convention.
func displayValue(v Value) string { return v.String() }
