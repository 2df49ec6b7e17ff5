// Command lox is a tree-walking interpreter for a small dynamically-typed
// scripting language.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-lox/cmd/lox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
