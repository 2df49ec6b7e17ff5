package interp

import (
	"fmt"

	"github.com/cwbudde/go-lox/internal/token"
)

// RuntimeErrorKind classifies a runtime error for diagnostics, per spec §7's
// error taxonomy: TypeError, ArityError, and an advisory RuntimeOther bucket
// for failures (such as an explicit numeric parse) that fall outside the
// documented coercion rules.
type RuntimeErrorKind string

const (
	TypeError    RuntimeErrorKind = "TypeError"
	ArityError   RuntimeErrorKind = "ArityError"
	RuntimeOther RuntimeErrorKind = "RuntimeError"
)

// RuntimeError is the error type the evaluator returns on any failed
// statement or expression. The evaluator bails out of the current top-level
// statement on the first one; the CLI reports it to stderr and continues to
// the next top-level statement.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Pos     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Kind, e.Message, e.Pos)
}

func newTypeError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: TypeError, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newArityError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: ArityError, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newRuntimeError(pos token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: RuntimeOther, Message: fmt.Sprintf(format, args...), Pos: pos}
}
