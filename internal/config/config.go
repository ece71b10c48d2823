package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"commitkit/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "commitkit" // application name used for config directory

// Default subprocess bounds. Every external command the server runs is held
// to one of these; an unbounded git or commitlint call would block the tool
// invocation forever.
const (
	DefaultGitTimeoutSeconds  = 10
	DefaultLintTimeoutSeconds = 15
	DefaultLinterCommand      = "commitlint"
)

// Config holds user configuration for commitkit.
type Config struct {
	// GuidelineDir optionally points at a directory of guideline markdown
	// files. When empty, only the bundled guideline document is served.
	GuidelineDir string `yaml:"guideline_dir"`

	// LinterCommand is the commit-message linter binary to invoke.
	LinterCommand string `yaml:"linter_command"`

	GitTimeoutSeconds  int `yaml:"git_timeout_seconds"`
	LintTimeoutSeconds int `yaml:"lint_timeout_seconds"`

	Version  string `yaml:"version"`   // Track config version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first save
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location.
// A missing config file is not an error: the server is headless and runs on
// defaults until the user writes a config.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		cfg := DefaultConfig()
		return &cfg, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GuidelineDir:       "",
		LinterCommand:      DefaultLinterCommand,
		GitTimeoutSeconds:  DefaultGitTimeoutSeconds,
		LintTimeoutSeconds: DefaultLintTimeoutSeconds,
		Version:            "1.0",
		InitTime:           0, // Will be set during first save
	}
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.LinterCommand == "" {
		c.LinterCommand = DefaultLinterCommand
	}
	if c.GitTimeoutSeconds <= 0 {
		c.GitTimeoutSeconds = DefaultGitTimeoutSeconds
	}
	if c.LintTimeoutSeconds <= 0 {
		c.LintTimeoutSeconds = DefaultLintTimeoutSeconds
	}
}

// GitTimeout returns the bounded duration for git subprocess calls.
func (c *Config) GitTimeout() time.Duration {
	return time.Duration(c.GitTimeoutSeconds) * time.Second
}

// LintTimeout returns the bounded duration for linter subprocess calls.
func (c *Config) LintTimeout() time.Duration {
	return time.Duration(c.LintTimeoutSeconds) * time.Second
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
