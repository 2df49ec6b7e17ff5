package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cwbudde/go-lox/internal/ast"
	dlerrors "github.com/cwbudde/go-lox/internal/errors"
	"github.com/cwbudde/go-lox/internal/interp"
	"github.com/cwbudde/go-lox/internal/lexer"
	"github.com/cwbudde/go-lox/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	checkOnly bool
	dumpAST   bool
)

func init() {
	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
	rootCmd.Flags().BoolVarP(&checkOnly, "check-only", "c", false, "parse and report errors, but do not evaluate")
	rootCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print each top-level statement's parenthesized form before executing it")
}

// runScript is lox's sole behavior: lex, parse, and (unless --check-only)
// evaluate exactly one of a file argument or -e/--eval source. The
// LOX_LOG_LEVEL environment variable only adjusts log/slog's verbosity; it
// never changes program semantics (spec §6).
func runScript(_ *cobra.Command, args []string) error {
	configureLogging()

	input, filename, err := resolveInput(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if l.Halted() {
		diag := &dlerrors.Diagnostic{Kind: "LexError", Message: l.HaltMessage(), Source: input, File: displayFilename(filename)}
		fmt.Fprint(os.Stderr, diag.Format(true))
		fmt.Fprintln(os.Stderr)
	}

	if len(p.Errors()) > 0 {
		for _, perr := range p.Errors() {
			diag := &dlerrors.Diagnostic{Kind: "ParseError", Message: perr.Message, Source: input, File: displayFilename(filename), Pos: perr.Pos}
			fmt.Fprint(os.Stderr, diag.Format(true))
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}
	if l.Halted() {
		return fmt.Errorf("lexing failed")
	}

	if checkOnly {
		return nil
	}

	interpreter := interp.New(os.Stdout)

	var hook func(ast.Statement)
	if dumpAST {
		hook = func(stmt ast.Statement) {
			fmt.Println(ast.ParenthesizeStmt(stmt))
		}
	}

	runtimeErrs := interpreter.RunWithHook(program, hook)
	if len(runtimeErrs) > 0 {
		for _, rerr := range runtimeErrs {
			diag := &dlerrors.Diagnostic{Kind: string(rerr.Kind), Message: rerr.Message, Source: input, File: displayFilename(filename), Pos: rerr.Pos}
			fmt.Fprint(os.Stderr, diag.Format(true))
			fmt.Fprintln(os.Stderr)
		}
		return fmt.Errorf("execution failed with %d error(s)", len(runtimeErrs))
	}
	return nil
}

// resolveInput enforces spec §6: exactly one of a positional file path or
// -e/--eval source is required.
func resolveInput(args []string) (input, filename string, err error) {
	hasEval := evalExpr != ""
	hasFile := len(args) == 1

	switch {
	case hasEval && hasFile:
		return "", "", fmt.Errorf("provide either a file path or -e/--eval, not both")
	case hasEval:
		return evalExpr, "<eval>", nil
	case hasFile:
		content, rerr := os.ReadFile(args[0])
		if rerr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], rerr)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline source")
	}
}

func displayFilename(filename string) string {
	if filename == "<eval>" {
		return ""
	}
	return filename
}

// configureLogging gates log/slog's verbosity on LOX_LOG_LEVEL. This is the
// one ambient concern built on the standard library rather than a
// third-party logger — see DESIGN.md for why.
func configureLogging() {
	level := slog.LevelWarn
	switch strings.ToUpper(os.Getenv("LOX_LOG_LEVEL")) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
