// Package config loads optional launcher defaults from an XDG config file.
// Everything here can be overridden per invocation by flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFile = "config.toml"

// Config holds the file-configurable defaults.
type Config struct {
	// Wait is the default window-wait budget in seconds.
	Wait int `toml:"wait"`
	// IntervalMs is the default poll interval in milliseconds.
	IntervalMs int `toml:"interval_ms"`
	// Reassert re-applies hints until the wait window closes.
	Reassert bool `toml:"reassert"`
	// Format is the default report format, yaml or json.
	Format string `toml:"format"`
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in defaults used when no config file exists.
func Default() Config {
	return Config{
		Wait:       10,
		IntervalMs: 50,
		Format:     "yaml",
		LogLevel:   "info",
	}
}

// Load reads the config file if present, filling unset fields from the
// defaults. A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()
	path := Path()
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Wait <= 0 {
		cfg.Wait = Default().Wait
	}
	if cfg.IntervalMs <= 0 {
		cfg.IntervalMs = Default().IntervalMs
	}
	if cfg.Format == "" {
		cfg.Format = Default().Format
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}

// Path returns the config file location under XDG_CONFIG_HOME, falling
// back to ~/.config.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "xlaunch", configFile)
}
