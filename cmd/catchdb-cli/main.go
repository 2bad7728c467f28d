// Package main provides the entry point for catchdb-cli.
//
// catchdb-cli is the command-line client for CatchDB. Without a command
// it connects and starts the interactive shell; exec, bench and the other
// commands run once and exit.
package main

import (
	"fmt"
	"os"

	"github.com/catchdb/catchdb-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
