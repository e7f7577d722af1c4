package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Storage string   `yaml:"storage"`
	AI      AIConfig `yaml:"ai"`
}

// AIConfig selects and parameterizes the advisory backend.
type AIConfig struct {
	Provider string `yaml:"provider"` // "openai" | "gemini" | ""
	APIKey   string `yaml:"apiKey"`
	BaseURL  string `yaml:"baseUrl,omitempty"`
	Model    string `yaml:"model,omitempty"`
}

// DefaultConfigPath returns ~/.appsketch/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".appsketch", "config.yaml")
}

// DefaultStoragePath returns ~/.appsketch/projects.db.
func DefaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "projects.db"
	}
	return filepath.Join(home, ".appsketch", "projects.db")
}

// LoadConfig reads the config file at path (the default location when
// path is empty). A missing file yields defaults, not an error;
// environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// no config yet; defaults apply
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	if cfg.Storage == "" {
		cfg.Storage = DefaultStoragePath()
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. The provider
// key falls back to the provider-native variable names so existing
// OPENAI_API_KEY / GEMINI_API_KEY setups work unchanged.
func applyEnv(cfg *Config) {
	if v := os.Getenv("APPSKETCH_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("APPSKETCH_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("APPSKETCH_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("APPSKETCH_AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("APPSKETCH_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}

	if cfg.AI.APIKey == "" {
		switch cfg.AI.Provider {
		case "openai":
			cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		case "gemini":
			cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// SaveConfig writes the config to path, creating the directory if
// needed. The file may hold an API key, so permissions stay tight.
func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
