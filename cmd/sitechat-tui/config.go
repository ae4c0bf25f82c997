// ABOUTME: TOML configuration for the sitechat terminal client
// ABOUTME: Server URL, storage path and widget options with XDG-aware defaults

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// tuiConfig is the client-side configuration, read from a small TOML
// file. Every field has a usable default; a missing file is fine.
type tuiConfig struct {
	ServerURL    string `toml:"server_url"`
	DatabasePath string `toml:"database_path"`
	Greeting     string `toml:"greeting"`

	// HistoryLimit bounds the context window sent per message, 0 = unbounded.
	HistoryLimit int `toml:"history_limit"`
}

// defaultConfigPath returns XDG_CONFIG_HOME/sitechat/tui.toml,
// falling back to ~/.config.
func defaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "tui.toml"
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "sitechat", "tui.toml")
}

// defaultDatabasePath returns XDG_DATA_HOME/sitechat/widget.db,
// falling back to ~/.local/share.
func defaultDatabasePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "widget.db"
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "sitechat", "widget.db")
}

// loadConfig reads the TOML config at path. A missing file yields the
// defaults; a malformed file is an error worth surfacing.
func loadConfig(path string) (tuiConfig, error) {
	cfg := tuiConfig{
		ServerURL:    "http://localhost:8080",
		DatabasePath: defaultDatabasePath(),
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath()
	}
	return cfg, nil
}
