// Package errors formats LexError/ParseError/RuntimeError diagnostics with
// source context, line/column information, and a caret indicator — ported
// from the teacher's internal/errors package, re-grounded on this
// language's three diagnostic kinds instead of DWScript's compiler errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-lox/internal/token"
)

// Diagnostic is a single reported problem: a message, the file it came
// from (or "" for inline -e/--eval source), and its position.
type Diagnostic struct {
	Kind    string // "LexError", "ParseError", "TypeError", "ArityError", "RuntimeError"
	Message string
	Source  string
	File    string
	Pos     token.Position
}

func (d *Diagnostic) Error() string { return d.Format(false) }

// Format renders the diagnostic with a source line and caret indicator,
// optionally with ANSI color.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(fmt.Sprintf("%s in %s:%d:%d\n", d.Kind, d.File, d.Pos.Line, d.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("%s at line %d:%d\n", d.Kind, d.Pos.Line, d.Pos.Column))
	}

	if line := sourceLine(d.Source, d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(prefix)+max(d.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of diagnostics, each separated by a blank line.
func FormatAll(diags []*Diagnostic, color bool) string {
	var sb strings.Builder
	for _, d := range diags {
		sb.WriteString(d.Format(color))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
