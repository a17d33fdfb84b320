// Package config loads the pinfo TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file inside the pinfo config directory.
const FileName = "config.toml"

// DefaultCommonDirNames are the directory names abbreviated to their first
// letter by the %d title token.
var DefaultCommonDirNames = []string{
	"src", "build", "debug", "release",
	"bin", "lib", "libs", "tmp",
	"doc", "docs", "data", "share",
	"examples", "icons", "pics", "plugins",
	"tests", "media", "l10n", "include",
	"includes", "locale", "ui",
}

// Config represents the complete configuration file.
type Config struct {
	ProcessInfo ProcessInfoConfig `toml:"process_info"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ProcessInfoConfig controls process inspection and title formatting.
type ProcessInfoConfig struct {
	// Directory names shortened by %d (default: DefaultCommonDirNames)
	CommonDirNames []string `toml:"common_dir_names"`

	// Read the environment of inspected processes (default: true)
	ReadEnvironment bool `toml:"read_environment"`

	// Title template for local processes (default: "%n: %d")
	TitleFormat string `toml:"title_format"`

	// Title template for ssh clients (default: "%u@%h")
	RemoteTitleFormat string `toml:"remote_title_format"`
}

// LoggingConfig contains diagnostic logging settings.
type LoggingConfig struct {
	// Log level: trace, debug, info, warn, error (default: "warn")
	Level string `toml:"level"`

	// Output format: auto, logfmt, json (default: "auto")
	Format string `toml:"format"`

	// Output destination: stderr or stdout (default: "stderr")
	Writer string `toml:"writer"`

	// Colorize console output (default: true)
	Color bool `toml:"color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	names := make([]string, len(DefaultCommonDirNames))
	copy(names, DefaultCommonDirNames)
	return &Config{
		ProcessInfo: ProcessInfoConfig{
			CommonDirNames:    names,
			ReadEnvironment:   true,
			TitleFormat:       "%n: %d",
			RemoteTitleFormat: "%u@%h",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "auto",
			Writer: "stderr",
			Color:  true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/pinfo/config.toml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "pinfo", FileName), nil
}

// Load reads the configuration at path on top of the defaults. An empty path
// or a missing file yields the defaults. On a parse error the defaults are
// returned together with the error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return Default(), fmt.Errorf("%s parse error: %w", path, err)
	}
	return cfg, nil
}

var (
	current   *Config
	currentMu sync.RWMutex
)

// Current returns the process-wide configuration, loading it from
// DefaultPath on first use. Load errors fall back to the defaults.
func Current() *Config {
	currentMu.RLock()
	if current != nil {
		defer currentMu.RUnlock()
		return current
	}
	currentMu.RUnlock()

	currentMu.Lock()
	defer currentMu.Unlock()
	if current != nil {
		return current
	}

	cfg := Default()
	if path, err := DefaultPath(); err == nil {
		cfg, _ = Load(path)
	}
	current = cfg
	return current
}

// Use installs cfg as the process-wide configuration. It must be called
// before the first Current call to affect values cached by other packages.
func Use(cfg *Config) {
	currentMu.Lock()
	current = cfg
	currentMu.Unlock()
}

// ClearCache drops the cached configuration so the next Current call reloads it.
func ClearCache() {
	currentMu.Lock()
	current = nil
	currentMu.Unlock()
}
