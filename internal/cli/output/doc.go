// Package output renders command results for catchdb-cli.
//
//   - formatter.go: Formatter interface and factory
//   - raw.go: reply text exactly as the connection returned it
//   - table.go: aligned tables via text/tabwriter
//   - json.go, yaml.go: machine-readable output
//   - progress.go: request progress for bench
//
// Raw is the shell default and prints what Process returned, line for line.
package output
