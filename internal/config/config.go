package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// API settings
	API APIConfig `yaml:"api"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Logging settings
	Log LogConfig `yaml:"log"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`        // Practice management API base URL
	TimeoutSeconds int    `yaml:"timeout_seconds"` // Per-request timeout; 0 means none
}

type InvoiceConfig struct {
	DefaultDueDays int `yaml:"default_due_days"` // Days from issue date until due
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Output string `yaml:"output"` // file path, "stderr", or "discard"
}

// DefaultConfigPath returns ~/.config/praxis/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "praxis", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "praxis", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Invoice: InvoiceConfig{
			DefaultDueDays: 30,
		},
		Log: LogConfig{
			Level:  "info",
			Output: filepath.Join(homeDir, ".config", "praxis", "praxis.log"),
		},
	}
}

// Load loads config from the given path, or returns defaults if the file
// doesn't exist. Environment variables override file values; a .env file
// in the working directory is honored.
func Load(path string) (*Config, error) {
	// Ignore a missing .env; it is optional
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PRAXIS_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("PRAXIS_API_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("PRAXIS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("PRAXIS_LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates the directories config and logs live in
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(filepath.Dir(DefaultConfigPath()), 0755); err != nil {
		return err
	}
	if c.Log.Output != "" && c.Log.Output != "stderr" && c.Log.Output != "discard" {
		if err := os.MkdirAll(filepath.Dir(c.Log.Output), 0755); err != nil {
			return err
		}
	}
	return nil
}
