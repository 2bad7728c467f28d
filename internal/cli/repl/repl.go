package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// Prompt is printed before every line.
const Prompt = "> "

// Messages printed by the shell.
const (
	msgHelp        = "help cmd\t\tshow usage of the cmd\nquit\t\t\texit the shell"
	msgBadHelp     = `Unrecognized Command. Perhaps you mean "help cmd" or "? cmd"`
	msgPeerClosed  = "connection closed by server"
	msgUnknownCmd  = "unknown command: "
	msgSuggestions = "did you mean: "
	maxSuggestions = 8
)

// Processor sends one command line and returns the reply text.
type Processor interface {
	Process(ctx context.Context, line string) (string, error)
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	proc      Processor
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
	formatter output.Formatter
	completer *Completer
	history   *History
	strict    bool
	log       logger.Logger
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO sets the input, result output and error output streams.
func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(r *REPL) {
		r.input, r.output, r.errOutput = in, out, errOut
	}
}

// WithFormatter sets how replies are printed.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithStrict enables arity checks against the command table.
func WithStrict(strict bool) Option {
	return func(r *REPL) {
		r.strict = strict
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *REPL) {
		r.log = l
	}
}

// New creates a REPL that sends lines to proc.
func New(proc Processor, opts ...Option) *REPL {
	r := &REPL{
		proc:      proc,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
		formatter: &output.RawFormatter{},
		completer: NewCompleter(),
		history:   NewHistory("", 0),
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// History returns the history store.
func (r *REPL) History() *History {
	return r.history
}

// Run reads lines until quit, end of input, a closed connection or ctx is
// done. A server-side close ends the loop without error; other transport
// failures are returned.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 64*1024), protocol.DefaultMaxBlockLen)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(r.output, Prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(r.output)
			return err
		case line = <-lines:
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		done, err := r.eval(ctx, line)
		if err != nil || done {
			return err
		}
	}
}

// eval handles one non-empty line. done reports that the loop should end.
func (r *REPL) eval(ctx context.Context, line string) (done bool, err error) {
	words := strings.Split(line, " ")
	switch words[0] {
	case "quit", "q":
		return true, nil
	case "help", "?":
		r.help(words)
		return false, nil
	case "history":
		for i, entry := range r.history.Entries() {
			fmt.Fprintf(r.output, "%5d  %s\n", i+1, entry)
		}
		return false, nil
	}

	if r.strict {
		if err := catchdb.ValidateArgs(protocol.Tokenize(line)); err != nil {
			fmt.Fprintf(r.errOutput, "error: %v\n", err)
			if errors.Is(err, catchdb.ErrUnknownCommand) {
				r.suggest(words[0])
			}
			return false, nil
		}
	}

	ctx = logger.WithCommand(logger.WithLogger(ctx, r.log), words[0])
	log := logger.L(ctx)
	log.Debug("shell command", "args", len(words)-1)
	text, err := r.proc.Process(ctx, line)
	switch {
	case errors.Is(err, catchdb.ErrPeerClosed):
		log.Debug("shell command ended the session", "error", err)
		fmt.Fprintln(r.output, msgPeerClosed)
		return true, nil
	case err != nil:
		log.Debug("shell command failed", "error", err)
		return true, err
	}

	if err := r.formatter.Format(r.output, output.NewResult(line, text)); err != nil {
		return true, err
	}
	return false, nil
}

func (r *REPL) help(words []string) {
	switch len(words) {
	case 1:
		fmt.Fprintln(r.output, msgHelp)
	case 2:
		ci, ok := catchdb.LookupCommand(words[1])
		if !ok {
			fmt.Fprintln(r.output, msgUnknownCmd+words[1])
			r.suggest(words[1])
			return
		}
		fmt.Fprintln(r.output, ci.Help())
	default:
		fmt.Fprintln(r.output, msgBadHelp)
	}
}

func (r *REPL) suggest(prefix string) {
	if prefix == "" {
		return
	}
	matches := r.completer.Complete(prefix)
	if len(matches) == 0 {
		return
	}
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	fmt.Fprintln(r.output, msgSuggestions+strings.Join(matches, " "))
}
