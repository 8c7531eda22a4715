package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used when neither HVR_SERVER_URL nor the config
// file names a server.
const DefaultServerURL = "http://localhost:8080"

// CLIConfig is what `hvr login` persists to ~/.config/hvr/config.yaml.
type CLIConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "hvr", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk. A missing file is a zero
// config, not an error.
func loadConfig() (CLIConfig, error) {
	var cfg CLIConfig
	path, err := configPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// saveConfig writes cfg with owner-only permissions; it holds a secret.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// setting returns the env var when set, else the value picked from the
// config file, else fallback.
func setting(envVar string, pick func(CLIConfig) string, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if cfg, err := loadConfig(); err == nil {
		if v := pick(cfg); v != "" {
			return v
		}
	}
	return fallback
}

func getServerURL() string {
	return setting("HVR_SERVER_URL", func(c CLIConfig) string { return c.ServerURL }, DefaultServerURL)
}

func getAPIKey() string {
	return setting("HVR_API_KEY", func(c CLIConfig) string { return c.APIKey }, "")
}
