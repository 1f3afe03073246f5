package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Env carries the ambient overrides read from the process environment.
type Env struct {
	// ConfigPath overrides where the session config file lives.
	ConfigPath string `env:"FRAMEPICK_CONFIG"`
	// LogFile, when set, receives structured logs. The TUI owns stdout, so
	// logging is off by default.
	LogFile string `env:"FRAMEPICK_LOG"`
}

// LoadEnv parses the environment and fills in the default config location
// (<user config dir>/framepick/config.txt) when no override is present.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	if e.ConfigPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			// Fall back to the working directory rather than failing startup.
			base = "."
		}
		e.ConfigPath = filepath.Join(base, "framepick", "config.txt")
	}
	return e, nil
}
