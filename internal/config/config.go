// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "timely-tui"

// Config represents the application configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	UI  UIConfig  `yaml:"ui"`
	Log LogConfig `yaml:"log"`
}

// APIConfig holds the remote API settings.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"TIMELY_API_URL" env-default:"https://timely-server-puce.vercel.app/api"`
	Timeout time.Duration `yaml:"timeout" env:"TIMELY_API_TIMEOUT" env-default:"30s"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	// StartView is the view shown after startup when signed in.
	StartView string `yaml:"start_view" env:"TIMELY_START_VIEW" env-default:"all"`

	// SortBy is the initial sort of the All view: "date" or "title".
	SortBy string `yaml:"sort_by" env:"TIMELY_SORT_BY" env-default:"date"`

	NoticeDuration       time.Duration `yaml:"notice_duration" env:"TIMELY_NOTICE_DURATION" env-default:"3s"`
	DesktopNotifications bool          `yaml:"desktop_notifications" env:"TIMELY_DESKTOP_NOTIFICATIONS"`
}

// LogConfig holds logging settings. The terminal belongs to the UI, so
// logs always go to a file.
type LogConfig struct {
	Path  string `yaml:"path,omitempty" env:"TIMELY_LOG_PATH"`
	Level string `yaml:"level" env:"TIMELY_LOG_LEVEL" env-default:"info"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	// Only fails on malformed struct tags.
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
// TIMELY_CONFIG overrides the default location.
func ConfigPath() (string, error) {
	if path := os.Getenv("TIMELY_CONFIG"); path != "" {
		return path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the config file, then applies
// environment overrides. A .env file in the working directory is loaded
// first. If the config file doesn't exist, defaults and environment apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
		return cfg, cfg.Validate()
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	switch c.UI.SortBy {
	case "date", "title":
	default:
		return fmt.Errorf("ui.sort_by must be \"date\" or \"title\", got %q", c.UI.SortBy)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.UI.NoticeDuration <= 0 {
		return fmt.Errorf("ui.notice_duration must be positive, got %s", c.UI.NoticeDuration)
	}
	return nil
}

// Save writes the configuration to path.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write with restricted permissions (owner read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// StateDir returns the directory for logs, honouring XDG_STATE_HOME.
func StateDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		stateHome = filepath.Join(homeDir, ".local", "state")
	}

	dir := filepath.Join(stateHome, appName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return dir, nil
}

// LogPath returns the configured log file path or the default one.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "timely.log"), nil
}
