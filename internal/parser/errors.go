package parser

import "github.com/cwbudde/go-lox/internal/token"

// ParseError is one accumulated diagnostic. The parser never stops at the
// first one: it records and synchronizes, the way the teacher parser's
// addError/synchronize pair does.
type ParseError struct {
	Message string
	Pos     token.Position
}

func (e *ParseError) Error() string { return e.Message }
