package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/catchdb/catchdb-go/internal/cli/config"
	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/infra/buildinfo"
	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "catchdb-cli",
		Usage:     "CatchDB command-line client",
		UsageText: "catchdb-cli [global options] [command [command options] [arguments...]]",
		Version:   buildinfo.String(),
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			ShellCommand(),
			ExecCommand(),
			CommandsCommand(),
			BenchCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		Action: shellAction,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Aliases: []string{"H"},
			Usage:   "CatchDB server host",
			EnvVars: []string{"CATCHDB_HOST"},
			Value:   config.Default().Host,
		},
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "CatchDB server port",
			EnvVars: []string{"CATCHDB_PORT"},
			Value:   config.Default().Port,
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the CLI config file (default ~/.catchdb/cli.yaml)",
			EnvVars: []string{"CATCHDB_CONFIG"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Per-request read and write timeout, 0 to disable",
			EnvVars: []string{"CATCHDB_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "read-mode",
			Usage:   "Reply read mode: framed or single",
			EnvVars: []string{"CATCHDB_READ_MODE"},
			Value:   config.Default().ReadMode,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: raw, table, json, yaml",
			EnvVars: []string{"CATCHDB_OUTPUT"},
			Value:   config.Default().Output,
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"CATCHDB_LOG_LEVEL"},
			Value:   config.Default().Log.Level,
		},
		&cli.StringFlag{
			Name:    "log-file",
			Usage:   "Write logs to a rotated file instead of stderr",
			EnvVars: []string{"CATCHDB_LOG_FILE"},
		},
		&cli.BoolFlag{
			Name:    "strict",
			Usage:   "Check commands against the command table before sending",
			EnvVars: []string{"CATCHDB_STRICT"},
		},
	}
}

// flagOverrides returns the config keys for the global flags that were
// set explicitly, on the command line or through their env vars.
func flagOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("host") {
		m["host"] = c.String("host")
	}
	if c.IsSet("port") {
		m["port"] = c.Int("port")
	}
	if c.IsSet("timeout") {
		m["timeout"] = c.Duration("timeout")
	}
	if c.IsSet("read-mode") {
		m["read_mode"] = c.String("read-mode")
	}
	if c.IsSet("output") {
		m["output"] = c.String("output")
	}
	if c.IsSet("log-level") {
		m["log.level"] = c.String("log-level")
	}
	if c.IsSet("log-file") {
		m["log.file"] = c.String("log-file")
	}
	if c.IsSet("strict") {
		m["strict"] = c.Bool("strict")
	}
	return m
}

// env is what every action needs: the effective configuration and a
// logger built from it.
type env struct {
	cfg       *config.CLIConfig
	path      string
	overrides map[string]any
	log       logger.Logger
}

// setup loads and verifies the configuration and creates the logger.
// Logs never go to the result stream.
func setup(c *cli.Context) (*env, error) {
	overrides := flagOverrides(c)
	cfg, path, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	logCfg.Output = c.App.ErrWriter
	log, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Debug("config loaded", "path", path, "addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	return &env{cfg: cfg, path: path, overrides: overrides, log: log}, nil
}

func (e *env) close() {
	e.log.Close()
}

func (e *env) formatter() output.Formatter {
	f, _ := output.ParseFormat(e.cfg.Output)
	return output.NewFormatter(f)
}
