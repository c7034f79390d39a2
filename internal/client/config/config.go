// Package config loads the admin client configuration from an optional
// YAML file overridden by WELFARE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client settings.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig points the client at the backend API.
type ServerConfig struct {
	URL string `mapstructure:"url"`

	// ProbeInterval is how often the client re-checks backend
	// availability while running.
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
}

// UIConfig holds list-screen presentation settings.
type UIConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// CacheConfig controls the on-disk session and snapshot store. An empty
// Dir keeps everything in memory.
type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig sends the structured log to a file so it does not
// interleave with the interactive prompt. An empty File logs to stderr.
type LoggingConfig struct {
	File string `mapstructure:"file"`
}

// DefaultConfig returns the configuration used when no file and no
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:           "http://localhost:8080",
			ProbeInterval: 30 * time.Second,
		},
		UI: UIConfig{
			PageSize: 10,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File: defaultLogPath(),
		},
	}
}

func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "welfare-admin", "client.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "welfare-admin", "client.log")
	}
}

func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "welfare-admin")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "welfare-admin")
	}
}

func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "welfare-admin", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "welfare-admin", "cache")
	}
}

// LoadConfig reads config.yaml from dir (the default config directory
// when dir is empty) and applies environment overrides. A missing file
// is not an error; defaults are used.
func LoadConfig(dir string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = defaultConfigPath()
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("WELFARE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.UI.PageSize <= 0 {
		return nil, fmt.Errorf("ui.page_size must be positive, got %d", cfg.UI.PageSize)
	}

	return cfg, nil
}
