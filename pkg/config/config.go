// Package config provides configuration management for hostpkg. It
// handles loading, validating, and saving application settings from YAML
// configuration files, providing sensible defaults when no file exists.
package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/hostpkg/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// CacheTTL is how long the installed-package cache stays fresh.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// MaxListResults caps how many installed packages a listing displays.
	MaxListResults int `yaml:"max_list_results"`

	// MaxSearchResults caps how many repository search rows are displayed.
	MaxSearchResults int `yaml:"max_search_results"`

	// Output settings
	ColorOutput bool   `yaml:"color_output"`
	LogLevel    string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultCacheTTL is the default time-to-live for the package cache.
	DefaultCacheTTL = 60 * time.Second

	// DefaultMaxListResults is the default display cap for listings.
	DefaultMaxListResults = 50

	// DefaultMaxSearchResults is the default display cap for searches.
	DefaultMaxSearchResults = 20

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2

	dirModeDefault  = 0o755
	fileModeDefault = 0o644
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			CacheTTL:         DefaultCacheTTL,
			MaxListResults:   DefaultMaxListResults,
			MaxSearchResults: DefaultMaxSearchResults,
			ColorOutput:      true,
			LogLevel:         "info",
		},
	}
}

// GetDefaultConfigPath returns the default config file location.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine user config directory")
	}
	return filepath.Join(configDir, "hostpkg", "config.yaml"), nil
}

// LoadConfig loads configuration from a file. A missing file is not an
// error; it yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), dirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.Settings.CacheTTL < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "cache_ttl cannot be negative")
	}
	if c.Settings.MaxListResults < 1 {
		return errors.Wrap(errors.ErrConfigValidation, "max_list_results must be positive")
	}
	if c.Settings.MaxSearchResults < 1 {
		return errors.Wrap(errors.ErrConfigValidation, "max_search_results must be positive")
	}
	switch c.Settings.LogLevel {
	case "error", "warn", "warning", "info", "debug":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "unknown log_level %q", c.Settings.LogLevel)
	}
	return nil
}

// applyDefaults fills in zero values with defaults before validation.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Settings.CacheTTL == 0 {
		c.Settings.CacheTTL = defaults.Settings.CacheTTL
	}
	if c.Settings.MaxListResults == 0 {
		c.Settings.MaxListResults = defaults.Settings.MaxListResults
	}
	if c.Settings.MaxSearchResults == 0 {
		c.Settings.MaxSearchResults = defaults.Settings.MaxSearchResults
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
