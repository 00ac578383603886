// Package main provides the tabula CLI.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tabula/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Formatted output has already been written by the command;
		// exit with the structured code.
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
