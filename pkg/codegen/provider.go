package codegen

import (
	"context"
	"fmt"

	"github.com/chazu/uiforge/pkg/config"
)

// NewGenerator builds the generator for cfg's selected provider. It returns
// ErrNotConfigured when that provider has no API key.
func NewGenerator(ctx context.Context, cfg config.Config) (Generator, error) {
	p := cfg.Active()
	if !p.Configured() {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		g, err := NewGemini(ctx, p.APIKey, p.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderAnthropic:
		a, err := NewAnthropic(p.APIKey, p.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return a, nil
	case config.ProviderOpenAI:
		o, err := NewOpenAI(p.APIKey, p.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("codegen: unknown provider %q", cfg.Provider)
	}
}
