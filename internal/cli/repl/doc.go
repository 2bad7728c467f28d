// Package repl implements the interactive catchdb-cli shell.
//
//   - repl.go: the read-eval-print loop and the help and quit words
//   - completer.go: prefix completion over command names
//   - history.go: bounded, file-backed line history
//
// Every line that is not a shell word is sent unchanged to the server and
// the reply is printed through an output.Formatter.
package repl
