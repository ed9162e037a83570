// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/product-autogpt/pkg/types"
)

// NewBackend selects the backend named by cfg.Provider.
func NewBackend(cfg types.LLMConfig, client *http.Client) (Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", cfg.Provider)
	}

	switch cfg.Provider {
	case types.ProviderOpenAI, "":
		return NewOpenAIBackend(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case types.ProviderAnthropic:
		return &AnthropicBackend{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: cfg.MaxTokens,
			BaseURL:   cfg.BaseURL,
			Client:    client,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q: use openai or anthropic", cfg.Provider)
	}
}
