package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/catchdb/catchdb-go/internal/cli/config"
	"github.com/catchdb/catchdb-go/internal/cli/repl"
	"github.com/catchdb/catchdb-go/internal/infra/confloader"
	"github.com/catchdb/catchdb-go/internal/infra/shutdown"
	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

const shutdownTimeout = 5 * time.Second

// ShellCommand returns the shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Connect and start the interactive shell (default)",
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q, see --help", c.Args().First())
	}

	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.close()

	handler := shutdown.NewHandler(shutdownTimeout)
	ctx, stop := handler.Notify(c.Context)
	defer stop()

	conn, err := catchdb.Dial(ctx, e.cfg.ClientConfig(e.log.Slog(), nil))
	if err != nil {
		return fmt.Errorf("connect %s:%d: %w", e.cfg.Host, e.cfg.Port, err)
	}

	history := repl.NewHistory(e.cfg.HistoryFile, e.cfg.HistorySize)
	if err := history.Load(); err != nil {
		e.log.Warn("failed to load history", "path", e.cfg.HistoryFile, "error", err)
	}

	handler.OnShutdown(func(context.Context) error {
		return history.Save()
	})
	handler.OnShutdown(func(context.Context) error {
		return conn.Close()
	})

	if e.path != "" {
		w, err := watchConfig(e, conn)
		if err != nil {
			e.log.Warn("config reload disabled", "path", e.path, "error", err)
		} else {
			handler.OnShutdown(func(context.Context) error {
				return w.Stop()
			})
		}
	}

	r := repl.New(conn,
		repl.WithIO(c.App.Reader, c.App.Writer, c.App.ErrWriter),
		repl.WithFormatter(e.formatter()),
		repl.WithHistory(history),
		repl.WithStrict(e.cfg.Strict),
		repl.WithLogger(e.log),
	)

	runErr := r.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if err := handler.Shutdown(); err != nil {
		e.log.Warn("shutdown", "error", err)
	}
	return runErr
}

// watchConfig applies timeout and log level changes from the config file
// to the open connection.
func watchConfig(e *env, conn *catchdb.Conn) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(e.path); err != nil {
		w.Stop()
		return nil, err
	}

	w.OnChange(func(path string) {
		cfg, _, err := config.Load(path, e.overrides)
		if err == nil {
			err = cfg.Verify()
		}
		if err != nil {
			e.log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		conn.SetTimeouts(cfg.Timeout, cfg.Timeout)
		logger.SetLevel(cfg.Log.Level)
		e.log.Info("config reloaded", "path", path, "timeout", cfg.Timeout, "log_level", logger.GetLevel())
	})
	w.StartAsync()
	return w, nil
}
