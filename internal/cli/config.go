package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/payroll/internal/paths"
	"github.com/mesh-intelligence/payroll/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "PAYROLL"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyDefaultView = "default_view"
	cfgKeyLogLevel    = "log_level"
	cfgKeyPageSize    = "page_size"
	cfgKeySync        = "sync"

	defaultLogLevel = "warn"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# payroll configuration

# Storage backend
backend: sqlite

# Data directory holding <dataset>.jsonl files (overridable by --data-dir)
# data_dir:

# When JSONL files are rewritten: immediate or on_close
sync: immediate

# View used when a command is given no --view: table, card, grid or kanban.
# Leave empty to use each dataset's own default.
# default_view:

# Rows per page for list (0 shows everything)
page_size: 0

# debug, info, warn or error
log_level: warn
`

// envKeys are the config keys that PAYROLL_<KEY> may override. data_dir is
// resolved by paths.ResolveDataDir so config.yaml wins over the environment.
var envKeys = []string{cfgKeyBackend, cfgKeyDefaultView, cfgKeyLogLevel, cfgKeyPageSize, cfgKeySync}

// setup resolves the config directory, loads .env and config.yaml and
// installs the logger. It runs before every subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	if err := loadEnvFile(paths.EnvFile(configDir)); err != nil {
		return err
	}

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.GetString(cfgKeyLogLevel)
	if level == "" {
		level = defaultLogLevel
	}
	if a.flags.verbose {
		level = "debug"
	}
	logger, err := newLogger(cmd.ErrOrStderr(), level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	slog.Debug("config loaded", "config_dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

// loadEnvFile reads KEY=value pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func loadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySync, types.SyncImmediate)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyPageSize, 0)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, paths.ConfigFileName)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// storeConfig builds the backend configuration for this invocation.
func (a *app) storeConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Sync:    a.cfg.GetString(cfgKeySync),
	}, nil
}
