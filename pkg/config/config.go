// Package config handles loading uiforge configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/uiforge/config.yaml (or config.toml)
//   - Data:   ~/.local/share/uiforge/ (generation history)
//
// Environment variables override file values; see ApplyEnv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const appName = "uiforge"

// Provider names accepted in Config.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// ProviderConfig holds the credentials and model for one generation backend.
type ProviderConfig struct {
	APIKey string `yaml:"api_key,omitempty" toml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty" toml:"model,omitempty"`
}

// Configured reports whether the provider has a key to call with.
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// HistoryConfig controls the generation history log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty"` // defaults to DataDir()/history.db
}

// WindowConfig sets the initial desktop window size.
type WindowConfig struct {
	Width  int `yaml:"width,omitempty" toml:"width,omitempty"`
	Height int `yaml:"height,omitempty" toml:"height,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Provider       string         `yaml:"provider" toml:"provider"`
	Gemini         ProviderConfig `yaml:"gemini" toml:"gemini"`
	Anthropic      ProviderConfig `yaml:"anthropic" toml:"anthropic"`
	OpenAI         ProviderConfig `yaml:"openai" toml:"openai"`
	MaxTokens      int            `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty"`
	TimeoutSeconds int            `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty"`
	History        HistoryConfig  `yaml:"history" toml:"history"`
	Window         WindowConfig   `yaml:"window" toml:"window"`
	Debug          bool           `yaml:"debug,omitempty" toml:"debug,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       ProviderGemini,
		Gemini:         ProviderConfig{Model: "gemini-2.5-flash"},
		Anthropic:      ProviderConfig{Model: "claude-sonnet-4-5"},
		OpenAI:         ProviderConfig{Model: "gpt-4o"},
		MaxTokens:      8192,
		TimeoutSeconds: 120,
		History:        HistoryConfig{Enabled: true},
		Window:         WindowConfig{Width: 1440, Height: 900},
	}
}

// Timeout returns the per-request generation timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Active returns the settings of the selected provider.
func (c Config) Active() ProviderConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	default:
		return c.Gemini
	}
}

// HistoryPath resolves where the history database lives.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return expandHome(c.History.Path)
	}
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want %s, %s or %s)",
			c.Provider, ProviderGemini, ProviderAnthropic, ProviderOpenAI)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	return nil
}

// ConfigDir returns the XDG config directory for uiforge.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// DataDir returns the XDG data directory for uiforge.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the config file to read: config.yaml if present,
// otherwise config.toml if present, otherwise the config.yaml path.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return yamlPath
}

// Load reads the config file from the XDG config directory and applies
// environment overrides. A missing file yields DefaultConfig.
func Load() (Config, error) {
	return load(ConfigPath(), os.LookupEnv)
}

func load(path string, lookup LookupFunc) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		cfg, err = LoadFrom(path)
		if err != nil {
			return cfg, err
		}
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadOrDefault is Load for callers that start regardless of errors. An
// unreadable file is skipped, the environment is still applied, and values
// Validate rejects fall back to their defaults. The error reports what was
// wrong.
func LoadOrDefault() (Config, error) {
	return loadOrDefault(ConfigPath(), os.LookupEnv)
}

func loadOrDefault(path string, lookup LookupFunc) (Config, error) {
	cfg, err := load(path, lookup)
	if err == nil {
		return cfg, nil
	}

	cfg = DefaultConfig()
	if path != "" {
		if fromFile, ferr := LoadFrom(path); ferr == nil {
			cfg = fromFile
		}
	}
	// Bad variables are already part of err; the good ones still apply.
	_ = ApplyEnv(&cfg, lookup)
	return cfg.repaired(), err
}

// repaired replaces the values Validate rejects with their defaults.
func (c Config) repaired() Config {
	d := DefaultConfig()
	switch c.Provider {
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI:
	default:
		c.Provider = d.Provider
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	return c
}

// LoadFrom reads config from a specific path, choosing TOML or YAML by file
// extension. Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return cfg, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
