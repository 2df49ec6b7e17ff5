// Package cmd implements the lox CLI's subcommands, laid out the same way
// as the teacher's cmd/dwscript/cmd package: one file per subcommand sharing
// a package-level rootCmd.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "lox [file]",
	Short: "A tree-walking interpreter for a small dynamically-typed scripting language",
	Long: `lox lexes, parses, and evaluates programs written in a small
dynamically-typed, C-like scripting language: variables, functions with
closures, if/while/for control flow, and a print statement.

Provide exactly one of a source file path or -e/--eval:

  lox script.lox
  lox -e "print 1 + 2;"`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runScript,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
