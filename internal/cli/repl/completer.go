package repl

import (
	"sort"
	"strings"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

// shellWords are handled by the shell itself and never sent.
var shellWords = []string{"help", "?", "quit", "q", "history"}

// Completer provides prefix completion over command names.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the server command table and the
// shell words.
func NewCompleter() *Completer {
	cmds := make([]string, 0, len(shellWords)+64)
	cmds = append(cmds, shellWords...)
	for _, ci := range catchdb.Commands() {
		cmds = append(cmds, ci.Name)
	}
	sort.Strings(cmds)
	return &Completer{commands: cmds}
}

// Complete returns the names starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
