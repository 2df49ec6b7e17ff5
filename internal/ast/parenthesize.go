package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// stringifyLiteral renders a Literal's payload the same way Parenthesize and
// --dump-ast do: Number in shortest round-trip form, String double-quoted,
// Boolean as true/false, Null as the literal word "null".
func stringifyLiteral(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Parenthesize renders an expression as a fully-parenthesized prefix form,
// the read-only debug visitor described in spec §4.2 and grounded on
// `ast/visitors/parens.rs` in the language this spec was distilled from: every
// compound expression is wrapped as `(op operands...)`.
func Parenthesize(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		return stringifyLiteral(e.Value)
	case *Variable:
		return "(var " + e.Name + ")"
	case *Assign:
		return "(assign " + e.Name + " " + Parenthesize(e.Value) + ")"
	case *Unary:
		return "(" + e.Op + " " + Parenthesize(e.Right) + ")"
	case *Binary:
		return "(" + e.Op + " " + Parenthesize(e.Left) + " " + Parenthesize(e.Right) + ")"
	case *Logical:
		return "(" + e.Op + " " + Parenthesize(e.Left) + " " + Parenthesize(e.Right) + ")"
	case *Grouping:
		return "(group " + Parenthesize(e.Expression) + ")"
	case *Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = Parenthesize(a)
		}
		return "(" + Parenthesize(e.Callee) + " [" + strings.Join(args, ", ") + "])"
	default:
		return expr.String()
	}
}

// ParenthesizeProgram renders every top-level statement's parenthesized
// form, one per line. The `--dump-ast` CLI flag does not use it; it prints
// each statement with ParenthesizeStmt just before that statement runs.
func ParenthesizeProgram(p *Program) string {
	var sb strings.Builder
	for _, stmt := range p.Statements {
		sb.WriteString(ParenthesizeStmt(stmt))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParenthesizeStmt renders a single statement using Parenthesize for any
// expressions it carries; compound statements recurse into their bodies.
func ParenthesizeStmt(stmt Statement) string {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		return Parenthesize(s.Expr)
	case *PrintStmt:
		return "(print " + Parenthesize(s.Expr) + ")"
	case *VarStmt:
		if s.Initializer == nil {
			return "(var " + s.Name + " null)"
		}
		return "(var " + s.Name + " " + Parenthesize(s.Initializer) + ")"
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("(block")
		for _, st := range s.Statements {
			sb.WriteString(" ")
			sb.WriteString(ParenthesizeStmt(st))
		}
		sb.WriteString(")")
		return sb.String()
	case *IfStmt:
		out := "(if " + Parenthesize(s.Condition) + " " + ParenthesizeStmt(s.Then)
		if s.Else != nil {
			out += " " + ParenthesizeStmt(s.Else)
		}
		return out + ")"
	case *WhileStmt:
		return "(while " + Parenthesize(s.Condition) + " " + ParenthesizeStmt(s.Body) + ")"
	case *ForStmt:
		return "(for " + ParenthesizeStmt(s.Body) + ")"
	case *FunctionStmt:
		return "(fn " + s.Name + ")"
	case *ReturnStmt:
		return "(return " + Parenthesize(s.Value) + ")"
	default:
		return stmt.String()
	}
}
