package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

// ExecCommand returns the exec command.
func ExecCommand() *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Aliases:   []string{"x"},
		Usage:     "Send one command and print the reply",
		ArgsUsage: "CMD [ARGS...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "Exit with an error when the reply status is not ok",
			},
		},
		Action: execAction,
	}
}

func execAction(c *cli.Context) error {
	if !c.Args().Present() {
		return errors.New("command required")
	}
	args := c.Args().Slice()

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	if e.cfg.Strict {
		if err := catchdb.ValidateArgs(args); err != nil {
			return err
		}
	}

	ctx := logger.WithCommand(logger.WithLogger(c.Context, e.log), args[0])
	log := logger.L(ctx)

	conn, err := catchdb.Dial(ctx, e.cfg.ClientConfig(e.log.Slog(), nil))
	if err != nil {
		return fmt.Errorf("connect %s:%d: %w", e.cfg.Host, e.cfg.Port, err)
	}
	defer conn.Close()

	log.Debug("exec command", "args", len(args)-1)
	reply, err := conn.Do(ctx, args...)
	if err != nil {
		log.Debug("exec command failed", "error", err)
		return fmt.Errorf("%s: %w", args[0], err)
	}
	log.Debug("exec reply", "status", reply.Status)

	line := strings.Join(args, " ")
	if err := e.formatter().Format(c.App.Writer, output.NewResult(line, reply.Text())); err != nil {
		return err
	}
	if c.Bool("fail") {
		return reply.Err()
	}
	return nil
}
