// Package paths locates the configuration and data directories of payroll.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "payroll"

// Environment variables that override directory locations.
const (
	EnvConfigDir = "PAYROLL_CONFIG_DIR"
	EnvDataDir   = "PAYROLL_DATA_DIR"
)

// Files and subdirectories inside the config directory.
const (
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"
	SchemaDirName  = "schemas"
)

// platformDir is replaced in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $<xdgEnv>/payroll on Linux, falling back to
// ~/<fallback...>/payroll. Other platforms use os.UserConfigDir.
func xdgDir(xdgEnv string, fallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), AppName)...), nil
}

// DefaultConfigDir returns the platform configuration directory:
// $XDG_CONFIG_HOME/payroll or ~/.config/payroll on Linux.
func DefaultConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform data directory:
// $XDG_DATA_HOME/payroll or ~/.local/share/payroll on Linux.
func DefaultDataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// ResolveConfigDir applies flag > PAYROLL_CONFIG_DIR > DefaultConfigDir.
func ResolveConfigDir(flag string) (string, error) {
	return first(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir applies flag > config.yaml data_dir > PAYROLL_DATA_DIR >
// DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return first(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

// first returns the absolute form of the first non-empty candidate, or the
// result of fallback when all are empty.
func first(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EnvFile returns the .env path inside configDir.
func EnvFile(configDir string) string {
	return filepath.Join(configDir, EnvFileName)
}

// SchemaDir returns the schema override directory inside configDir.
func SchemaDir(configDir string) string {
	return filepath.Join(configDir, SchemaDirName)
}
