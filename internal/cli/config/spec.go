package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
	"github.com/catchdb/catchdb-go/pkg/protocol"
)

// CLIConfig is the configuration for catchdb-cli.
type CLIConfig struct {
	Host string `koanf:"host" yaml:"host"`
	Port int    `koanf:"port" yaml:"port"`

	// DialTimeout bounds connection setup; Timeout bounds each read and
	// write. Zero disables them.
	DialTimeout time.Duration `koanf:"dial_timeout" yaml:"dial_timeout"`
	Timeout     time.Duration `koanf:"timeout" yaml:"timeout"`

	// ReadMode is "framed" or "single".
	ReadMode    string `koanf:"read_mode" yaml:"read_mode"`
	ReadSize    int    `koanf:"read_size" yaml:"read_size"`
	MaxBlockLen int    `koanf:"max_block_len" yaml:"max_block_len"`

	// Output is raw, table, json or yaml.
	Output string `koanf:"output" yaml:"output"`
	// Strict checks commands against the command table before sending.
	Strict bool `koanf:"strict" yaml:"strict"`

	HistoryFile string `koanf:"history_file" yaml:"history_file"`
	HistorySize int    `koanf:"history_size" yaml:"history_size"`

	Log logger.Config `koanf:"log" yaml:"log"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Host:        catchdb.DefaultHost,
		Port:        catchdb.DefaultPort,
		DialTimeout: 5 * time.Second,
		Timeout:     0,
		ReadMode:    string(catchdb.ReadFramed),
		ReadSize:    catchdb.DefaultReadSize,
		MaxBlockLen: protocol.DefaultMaxBlockLen,
		Output:      "raw",
		HistoryFile: filepath.Join(configDir(), "history"),
		HistorySize: 1000,
		Log:         logger.DefaultConfig(),
	}
}

// ClientConfig converts the CLI settings into a connection config.
func (c *CLIConfig) ClientConfig(log *slog.Logger, obs catchdb.Observer) catchdb.Config {
	cfg := catchdb.DefaultConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.DialTimeout = c.DialTimeout
	cfg.ReadTimeout = c.Timeout
	cfg.WriteTimeout = c.Timeout
	cfg.ReadMode = catchdb.ReadMode(c.ReadMode)
	cfg.ReadSize = c.ReadSize
	if c.MaxBlockLen > 0 {
		cfg.Limits.MaxBlockLen = c.MaxBlockLen
	}
	cfg.Logger = log
	cfg.Observer = obs
	return cfg
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".catchdb"
	}
	return filepath.Join(home, ".catchdb")
}
