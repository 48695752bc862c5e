package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matt/killport-cli/internal/ports"
)

// Signal name constants accepted in config and on the command line.
const (
	SignalNameTerm = "term"
	SignalNameKill = "kill"
)

// Config holds the application configuration.
type Config struct {
	// DefaultSignal is the signal used when no flag overrides it
	// ("term" or "kill").
	DefaultSignal string `toml:"default_signal"`

	// Confirm controls whether kill asks before terminating. The --force
	// flag always skips the prompt regardless of this setting.
	Confirm bool `toml:"confirm"`

	// ProtectedPorts lists ports that kill refuses to touch without --force
	// (databases, SSH and the like).
	ProtectedPorts []int `toml:"protected_ports"`

	// Format is the default output format for list and inspect
	// ("table", "json" or "yaml").
	Format string `toml:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultSignal: SignalNameTerm,
		Confirm:       true,
		Format:        "table",
	}
}

// Path returns the location of the config file
// (<user config dir>/killport/config.toml).
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "killport", "config.toml"), nil
}

// Load reads the config file and merges it over the defaults. A missing
// file is not an error; a malformed one is.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := Path()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DefaultSignal {
	case "", SignalNameTerm, SignalNameKill:
	default:
		return fmt.Errorf("unknown default_signal %q (valid options: %s, %s)", c.DefaultSignal, SignalNameTerm, SignalNameKill)
	}
	switch c.Format {
	case "", "table", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (valid options: table, json, yaml)", c.Format)
	}
	return nil
}

// Signal maps the configured default signal name to the ports signal value.
func (c *Config) Signal() ports.Signal {
	if c.DefaultSignal == SignalNameKill {
		return ports.SignalKill
	}
	return ports.SignalTerm
}

// IsProtected reports whether a port is listed in protected_ports.
func (c *Config) IsProtected(port int) bool {
	for _, p := range c.ProtectedPorts {
		if p == port {
			return true
		}
	}
	return false
}
