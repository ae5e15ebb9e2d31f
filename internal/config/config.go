// Package config loads the application config file. Runtime user settings
// (theme, timer durations) live in the store; this file only covers what
// must be known before the store opens.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath   string `yaml:"db_path"`
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration under the user config dir.
func Default() Config {
	cfg := Config{LogLevel: "info"}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.DBPath = filepath.Join(dir, "focuskit", "focuskit.db")
		cfg.LogPath = filepath.Join(dir, "focuskit", "focuskit.log")
	}
	return cfg
}

// DefaultPath returns ~/.config/focuskit/config.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "focuskit", "config.yaml"), nil
}

// Load reads the YAML config at path, filling unset fields from defaults.
// A missing file yields the defaults; FOCUSKIT_DB overrides the database
// path either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file is the common case.
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
		if fileCfg.DBPath != "" {
			cfg.DBPath = fileCfg.DBPath
		}
		if fileCfg.LogPath != "" {
			cfg.LogPath = fileCfg.LogPath
		}
		if fileCfg.LogLevel != "" {
			cfg.LogLevel = fileCfg.LogLevel
		}
	}

	if db := os.Getenv("FOCUSKIT_DB"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}
