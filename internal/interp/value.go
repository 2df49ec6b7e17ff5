package interp

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/go-lox/internal/ast"
)

// Value is the runtime value sum: Number, String, Boolean, Null, NativeFn,
// UserFn. One struct per kind, grounded on the teacher's
// internal/interp/value.go IntegerValue/FloatValue/... pattern.
type Value interface {
	Type() string
	String() string
}

// Number is a double-precision float, the sole numeric kind in this language.
type Number struct{ Value float64 }

func (Number) Type() string     { return "Number" }
func (n Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// String is a host string value. Its String() form is the raw, unquoted
// content — this is both `print`'s display form (spec §8 scenario S6 prints
// `y`, not `"y"`, for `print "y";`) and what string concatenation uses to
// stringify a String operand. Only the parenthesiser's debug view quotes
// string literals (internal/ast's stringifyLiteral), a distinct code path.
type String struct{ Value string }

func (String) Type() string     { return "String" }
func (s String) String() string { return s.Value }

// Boolean is a host boolean value.
type Boolean struct{ Value bool }

func (Boolean) Type() string     { return "Boolean" }
func (b Boolean) String() string { return strconv.FormatBool(b.Value) }

// Null is the sole unit value; it is always equal to itself and always
// falsy.
type Null struct{}

func (Null) Type() string   { return "Null" }
func (Null) String() string { return "null" }

// NativeFn is a built-in function implemented in Go.
type NativeFn struct {
	Name  string
	Arity int
	Fn    func(args []Value) (Value, error)
}

func (NativeFn) Type() string      { return "NativeFn" }
func (n NativeFn) String() string  { return fmt.Sprintf("<native fn `%s`>", n.Name) }

// UserFn is a closure-capturing function defined in script source.
type UserFn struct {
	Decl    *ast.FunctionStmt
	Closure *Environment
}

func (UserFn) Type() string { return "UserFn" }
func (f UserFn) String() string {
	out := "function " + f.Decl.Name + "("
	for i, p := range f.Decl.Params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	out += ") { "
	for _, st := range f.Decl.Body {
		out += st.String() + " "
	}
	return out + "}"
}

// Truthy implements the language's truthiness rule: Number is falsy only at
// zero, String is falsy only when empty, Boolean is itself, Null is always
// falsy, and both function kinds are always truthy.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case Number:
		return val.Value != 0
	case String:
		return val.Value != ""
	case Boolean:
		return val.Value
	case Null:
		return false
	case NativeFn, UserFn:
		return true
	default:
		return false
	}
}

// Equal implements structural value equality: values of different kinds are
// never equal (even Null compared against anything but Null is false), and
// Null equals Null.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av.Value == bv.Value
	case String:
		bv, ok := b.(String)
		return ok && av.Value == bv.Value
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av.Value == bv.Value
	case Null:
		_, ok := b.(Null)
		return ok
	default:
		return false
	}
}
