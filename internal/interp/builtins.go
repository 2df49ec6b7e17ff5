package interp

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cwbudde/go-lox/internal/token"
)

// registerBuiltins defines the native functions available in every program's
// global scope. clock() is the spec-mandated minimum (spec §4.3); upper,
// lower, and collate are additive natives wired onto golang.org/x/text, the
// teacher's direct dependency for Unicode-aware string handling (see
// SPEC_FULL.md's DOMAIN STACK section).
func registerBuiltins(global *Environment) {
	global.Define("clock", NativeFn{
		Name:  "clock",
		Arity: 0,
		Fn: func(args []Value) (Value, error) {
			return Number{float64(time.Now().Unix())}, nil
		},
	})

	upperCaser := cases.Upper(language.Und)
	global.Define("upper", NativeFn{
		Name:  "upper",
		Arity: 1,
		Fn: func(args []Value) (Value, error) {
			s, ok := args[0].(String)
			if !ok {
				return nil, newTypeError(zeroPos, "upper expects a String argument, got %s", args[0].Type())
			}
			return String{upperCaser.String(s.Value)}, nil
		},
	})

	lowerCaser := cases.Lower(language.Und)
	global.Define("lower", NativeFn{
		Name:  "lower",
		Arity: 1,
		Fn: func(args []Value) (Value, error) {
			s, ok := args[0].(String)
			if !ok {
				return nil, newTypeError(zeroPos, "lower expects a String argument, got %s", args[0].Type())
			}
			return String{lowerCaser.String(s.Value)}, nil
		},
	})

	collator := collate.New(language.Und)
	global.Define("collate", NativeFn{
		Name:  "collate",
		Arity: 2,
		Fn: func(args []Value) (Value, error) {
			a, aok := args[0].(String)
			b, bok := args[1].(String)
			if !aok || !bok {
				return nil, newTypeError(zeroPos, "collate expects two String arguments")
			}
			return Number{float64(collator.CompareString(a.Value, b.Value))}, nil
		},
	})
}

// zeroPos is used for native-function errors, which have no source
// position of their own; the caller's call-site position is reported
// separately via the ArityError path in evalCall.
var zeroPos token.Position
