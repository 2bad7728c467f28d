// Package command provides CLI command definitions for catchdb-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags and config loading
//   - shell.go: Interactive shell (the default action)
//   - exec.go: One-shot command execution
//   - commands.go: Server command table listing
//   - bench.go: Pooled zset load generator
//   - config.go: Configuration subcommand group
//   - version.go: Build information
//
// Actions load the configuration, dial the server, and render results
// through the output package. They write to the App's Writer and
// ErrWriter so tests can capture them.
package command
