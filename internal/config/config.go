package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the CLI's persisted configuration. Flags override anything
// set here.
type Config struct {
	// ServerURL is the base URL of the companySYS API.
	ServerURL string `yaml:"server_url"`

	// CacheDir enables a disk-backed GET response cache when set.
	CacheDir string `yaml:"cache_dir,omitempty"`
}

// DefaultServerURL is used when neither the config file nor flags set one.
const DefaultServerURL = "http://localhost:8000/api"

// Dir returns the CLI's state directory, ~/.companysys by default.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".companysys"), nil
}

// Load reads config.yaml from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	cfg := &Config{ServerURL: DefaultServerURL}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}

	log.Debug().Str("dir", dir).Str("serverURL", cfg.ServerURL).Msg("config loaded")

	return cfg, nil
}

// Save writes config.yaml to dir.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
