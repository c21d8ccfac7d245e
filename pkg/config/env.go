package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/uiforge/pkg/debug"
)

// EnvPrefix is the prefix of every uiforge-specific environment variable.
const EnvPrefix = "UIFORGE_"

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetter applies one environment variable to a Config.
type envSetter func(c *Config, val string) error

func setString(dst func(*Config) *string) envSetter {
	return func(c *Config, val string) error {
		*dst(c) = val
		return nil
	}
}

func setInt(name string, dst func(*Config) *int) envSetter {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst(c) = n
		return nil
	}
}

func setBool(name string, dst func(*Config) *bool) envSetter {
	return func(c *Config, val string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst(c) = b
		return nil
	}
}

// envBinding pairs a variable name with its setter. Bindings are applied in
// order, so a later binding for the same field wins.
type envBinding struct {
	name string
	set  envSetter
}

func envBindings() []envBinding {
	return []envBinding{
		// Vendor-conventional key names first so the prefixed ones override.
		{"API_KEY", setString(func(c *Config) *string { return &c.Gemini.APIKey })},
		{"GEMINI_API_KEY", setString(func(c *Config) *string { return &c.Gemini.APIKey })},
		{"ANTHROPIC_API_KEY", setString(func(c *Config) *string { return &c.Anthropic.APIKey })},
		{"OPENAI_API_KEY", setString(func(c *Config) *string { return &c.OpenAI.APIKey })},

		{EnvPrefix + "PROVIDER", func(c *Config, val string) error {
			c.Provider = strings.ToLower(strings.TrimSpace(val))
			return nil
		}},
		{EnvPrefix + "GEMINI_KEY", setString(func(c *Config) *string { return &c.Gemini.APIKey })},
		{EnvPrefix + "GEMINI_MODEL", setString(func(c *Config) *string { return &c.Gemini.Model })},
		{EnvPrefix + "ANTHROPIC_KEY", setString(func(c *Config) *string { return &c.Anthropic.APIKey })},
		{EnvPrefix + "ANTHROPIC_MODEL", setString(func(c *Config) *string { return &c.Anthropic.Model })},
		{EnvPrefix + "OPENAI_KEY", setString(func(c *Config) *string { return &c.OpenAI.APIKey })},
		{EnvPrefix + "OPENAI_MODEL", setString(func(c *Config) *string { return &c.OpenAI.Model })},
		{EnvPrefix + "MAX_TOKENS", setInt(EnvPrefix+"MAX_TOKENS", func(c *Config) *int { return &c.MaxTokens })},
		{EnvPrefix + "TIMEOUT", setInt(EnvPrefix+"TIMEOUT", func(c *Config) *int { return &c.TimeoutSeconds })},
		{EnvPrefix + "HISTORY", setBool(EnvPrefix+"HISTORY", func(c *Config) *bool { return &c.History.Enabled })},
		{EnvPrefix + "HISTORY_PATH", setString(func(c *Config) *string { return &c.History.Path })},
		{EnvPrefix + "DEBUG", func(c *Config, val string) error {
			c.Debug = debug.ParseFlag(val)
			return nil
		}},
	}
}

// ApplyEnv overlays environment variables onto cfg. Empty values are
// ignored except for UIFORGE_DEBUG, where they read as off. A variable that
// fails to parse leaves its field alone; the others are still applied and
// every failure is reported.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error
	for _, b := range envBindings() {
		val, ok := lookup(b.name)
		if !ok {
			continue
		}
		if val == "" && b.name != EnvPrefix+"DEBUG" {
			continue
		}
		if err := b.set(cfg, val); err != nil {
			errs = append(errs, fmt.Errorf("environment override: %w", err))
		}
	}
	return errors.Join(errs...)
}
