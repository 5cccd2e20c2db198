package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/hoops.yaml
var defaultHoopsYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: "file",
			Path:    "~/.hoops/high_scores.json",
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}
