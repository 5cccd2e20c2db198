// Package config provides YAML-based configuration for the shootout host:
// where the leaderboard lives, how loudly to log, and how the SSH
// leaderboard server listens.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the complete host configuration.
type Config struct {
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
	SSH   SSHConfig   `yaml:"ssh"`
}

// StoreConfig selects the leaderboard backend.
type StoreConfig struct {
	Backend      string `yaml:"backend"`       // "file" or "sqlite"
	Path         string `yaml:"path"`          // ~ expands to the home directory
	ResetCorrupt bool   `yaml:"reset_corrupt"` // Start empty instead of failing on a corrupt store
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SSHConfig defines the leaderboard SSH server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Auto-generated under ~/.hoops when empty
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Backend) {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: unknown store backend %q (want file or sqlite)", c.Store.Backend)
	}
	if c.Store.Path == "" {
		return fmt.Errorf("config: store path is empty")
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.SSH.IdleTimeout < 0 {
		return fmt.Errorf("config: negative ssh idle timeout %s", c.SSH.IdleTimeout)
	}
	return nil
}
