package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/catchdb/catchdb-go/internal/cli/output"
	"github.com/catchdb/catchdb-go/internal/infra/confloader"
	"github.com/catchdb/catchdb-go/internal/telemetry/logger"
	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "cli.yaml")
}

// Load builds the configuration from defaults, the config file, CATCHDB_*
// environment variables and flag overrides, in increasing priority.
//
// An empty path means DefaultConfigPath, which may be absent. An explicit
// path must exist. The returned path is the file actually read, or "".
func Load(path string, overrides map[string]any) (*CLIConfig, string, error) {
	fileOpt := confloader.WithConfigFile(path)
	if path == "" {
		fileOpt = confloader.WithOptionalConfigFile(DefaultConfigPath())
	}

	l := confloader.NewLoader(fileOpt, confloader.WithOverrides(overrides))
	cfg := Default()
	if err := l.Load(cfg); err != nil {
		return nil, "", err
	}
	return cfg, l.FilePath(), nil
}

// LoadNoFile is Load without a config file: defaults, environment and
// overrides only.
func LoadNoFile(overrides map[string]any) (*CLIConfig, error) {
	cfg := Default()
	if err := confloader.NewLoader(confloader.WithOverrides(overrides)).Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Verify checks the configuration for invalid values.
func (c *CLIConfig) Verify() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.DialTimeout < 0 || c.Timeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	switch catchdb.ReadMode(c.ReadMode) {
	case catchdb.ReadFramed, catchdb.ReadSingle:
	default:
		errs = append(errs, fmt.Errorf("read_mode %q (want framed or single)", c.ReadMode))
	}
	if c.ReadSize <= 0 {
		errs = append(errs, fmt.Errorf("read_size %d must be positive", c.ReadSize))
	}
	if _, err := output.ParseFormat(c.Output); err != nil {
		errs = append(errs, err)
	}
	if !logger.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log level %q", c.Log.Level))
	}
	if c.HistorySize < 0 {
		errs = append(errs, errors.New("history_size must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes cfg as YAML with owner-only permissions, creating the
// directory if needed.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
