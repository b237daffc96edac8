// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the checker configuration. Flags override file values
// through viper bindings in cmd.
type Config struct {
	// WaylandDir is the wayland-protocols data directory. Empty means
	// "ask pkgconf at runtime".
	WaylandDir string `mapstructure:"wayland_dir"`

	// WlrootsDir is the root of the wlroots source tree. There is no
	// default; it must come from the config file or the flag.
	WlrootsDir string `mapstructure:"wlroots_dir"`

	// IncludeDir holds the checked-in generated headers.
	IncludeDir string `mapstructure:"include_dir"`

	// Scanner is the wayland-scanner binary to invoke. A bare name is
	// looked up on PATH.
	Scanner string `mapstructure:"scanner"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		WaylandDir: "",
		WlrootsDir: "",
		IncludeDir: "wlroots/include",
		Scanner:    "wayland-scanner",
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("protocheck")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "protocheck"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetDefault("wayland_dir", DefaultConfig.WaylandDir)
	viper.SetDefault("wlroots_dir", DefaultConfig.WlrootsDir)
	viper.SetDefault("include_dir", DefaultConfig.IncludeDir)
	viper.SetDefault("scanner", DefaultConfig.Scanner)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Validate checks that the directories the checker needs actually exist.
func (c *Config) Validate() error {
	if err := checkDir("wayland_dir", c.WaylandDir); err != nil {
		return err
	}
	return checkDir("wlroots_dir", c.WlrootsDir)
}

func checkDir(key, path string) error {
	if path == "" {
		return &ConfigurationError{Key: key, Path: path}
	}
	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return &ConfigurationError{Key: key, Path: path}
	}
	return nil
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	// Check if config file is already loaded
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "protocheck.toml"
	}
	return filepath.Join(home, ".config", "protocheck", "protocheck.toml")
}

// ConfigurationError reports a required directory that is unset or does
// not exist on disk.
type ConfigurationError struct {
	Key  string
	Path string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s is not set", e.Key)
	}
	return fmt.Sprintf("%s does not exist: %s", e.Key, e.Path)
}
