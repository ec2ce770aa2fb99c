package globalconfig

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/envfile"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/finder"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
)

// Version is the current config schema version.
const Version = "1.0"

// EnvManifestName is the environment variable naming an alternate manifest file.
const EnvManifestName = "COMPOSER"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

var (
	// ErrNotInitialized is returned when the config file doesn't exist.
	ErrNotInitialized = errors.New("wpfinder not configured: run 'wpfinder config init' first")
	// ErrInvalidOutput is returned for an unknown output format.
	ErrInvalidOutput = errors.New("output must be \"text\" or \"json\"")
)

// Config represents the global wpfinder configuration.
type Config struct {
	Version      string `yaml:"version"`
	ManifestName string `yaml:"manifest_name,omitempty"` // Overrides composer.json
	EnvFile      string `yaml:"env_file,omitempty"`      // Dotenv file consulted for COMPOSER
	Output       string `yaml:"output"`                  // text or json
	CacheSize    int    `yaml:"cache_size"`              // Manifest cache entries
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version:   Version,
		Output:    OutputText,
		CacheSize: manifest.DefaultCacheSize,
	}
}

// Load loads the config from ~/.config/wpfinder/config.yaml.
// Returns ErrNotInitialized if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile loads the config from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if err := validateOutput(cfg.Output); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = manifest.DefaultCacheSize
	}

	return cfg, nil
}

// LoadOrCreate loads the config if it exists, or returns defaults.
// Unlike Load(), this doesn't require the config to be initialized.
func LoadOrCreate() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		if errors.Is(err, ErrNotInitialized) {
			return NewConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save saves the config to ~/.config/wpfinder/config.yaml.
func (c *Config) Save() error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set updates a single setting by its YAML key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "manifest_name":
		c.ManifestName = value
	case "env_file":
		c.EnvFile = value
	case "output":
		if err := validateOutput(value); err != nil {
			return err
		}
		c.Output = value
	case "cache_size":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return fmt.Errorf("cache_size must be a positive integer, got %q", value)
		}
		c.CacheSize = size
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	return nil
}

// ResolveManifestName picks the manifest file name to search for. The first
// non-blank of these wins: flagValue, envValue (the process COMPOSER
// variable), COMPOSER from the configured env file, the configured
// manifest_name, and finally composer.json.
func (c *Config) ResolveManifestName(flagValue, envValue string) (string, error) {
	if name := strings.TrimSpace(flagValue); name != "" {
		return name, nil
	}
	if name := strings.TrimSpace(envValue); name != "" {
		return name, nil
	}

	if c.EnvFile != "" {
		vars, err := envfile.Parse(c.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if name, ok := envfile.Lookup(vars, EnvManifestName); ok {
			return name, nil
		}
	}

	if name := strings.TrimSpace(c.ManifestName); name != "" {
		return name, nil
	}

	return finder.DefaultManifestName, nil
}

func validateOutput(output string) error {
	switch output {
	case OutputText, OutputJSON:
		return nil
	default:
		return fmt.Errorf("%w, got %q", ErrInvalidOutput, output)
	}
}
