// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/product-autogpt/internal/generate"
	"github.com/pdiddy/product-autogpt/internal/knowledge"
	"github.com/pdiddy/product-autogpt/internal/lookup"
	"github.com/pdiddy/product-autogpt/internal/pipeline"
	"github.com/pdiddy/product-autogpt/internal/prompt"
	"github.com/pdiddy/product-autogpt/pkg/types"
)

// configFileUsed records the config file viper read, for logging once the
// logger exists.
var configFileUsed string

// setDefaults seeds every config key so AutomaticEnv can override it.
func setDefaults() {
	viper.SetDefault("llm.provider", string(types.ProviderOpenAI))
	viper.SetDefault("llm.model", "")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.temperature", types.DefaultTemperature)
	viper.SetDefault("llm.timeout", types.DefaultLLMTimeout)
	viper.SetDefault("llm.max_tokens", types.DefaultMaxTokens)
	viper.SetDefault("llm.user_agent", "")

	viper.SetDefault("lookup.backend", string(types.LookupWikipedia))
	viper.SetDefault("lookup.language", types.DefaultLookupLanguage)
	viper.SetDefault("lookup.top_k", types.DefaultLookupTopK)
	viper.SetDefault("lookup.max_chars", types.DefaultLookupMaxChars)
	viper.SetDefault("lookup.timeout", types.DefaultLookupTimeout)
	viper.SetDefault("lookup.db_path", types.DefaultLookupDBPath)
	viper.SetDefault("lookup.user_agent", "")

	viper.SetDefault("prompts.file", "")
	viper.SetDefault("server.addr", types.DefaultServerAddr)
	viper.SetDefault("log.debug", false)
}

// loadConfig decodes viper state into a Config and fills credentials from
// the loaded secrets.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg = cfg.WithDefaults()

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = loadedSecrets.APIKeyFor(cfg.LLM.Provider)
	}
	if cfg.Lookup.UserAgent == "" {
		cfg.Lookup.UserAgent = types.DefaultUserAgentPrefix + version
	}

	if configFileUsed != "" {
		appLog.Info("using config file", zap.String("path", configFileUsed))
	}
	return cfg, nil
}

// loadTemplates returns the built-in templates or the override file's.
func loadTemplates(cfg types.Config) (prompt.Set, error) {
	if cfg.Prompts.File == "" {
		return prompt.Defaults(), nil
	}
	return prompt.LoadFile(cfg.Prompts.File)
}

// newLookupBackend selects the research source. The returned close function
// releases the local store, if one was opened.
func newLookupBackend(cfg types.LookupConfig, client *http.Client) (lookup.Backend, func() error, error) {
	switch cfg.Backend {
	case types.LookupWikipedia, "":
		return &lookup.WikipediaBackend{Client: client, Config: cfg, Log: appLog}, func() error { return nil }, nil
	case types.LookupLocal:
		store, err := knowledge.NewStore(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return knowledge.NewBackend(store, cfg), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported lookup backend %q: use wikipedia or local", cfg.Backend)
	}
}

// newFactory wires the collaborators for pipeline runs.
func newFactory(cfg types.Config) (*pipeline.Factory, func() error, error) {
	templates, err := loadTemplates(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := &http.Client{}

	gen, err := generate.NewBackend(cfg.LLM, client)
	if err != nil {
		return nil, nil, err
	}

	lk, closeLookup, err := newLookupBackend(cfg.Lookup, client)
	if err != nil {
		return nil, nil, err
	}

	return &pipeline.Factory{
		Templates:     templates,
		Generator:     gen,
		Lookup:        lk,
		Temperature:   cfg.LLM.Temperature,
		LLMTimeout:    cfg.LLM.Timeout,
		LookupTimeout: cfg.Lookup.Timeout,
		Log:           appLog,
	}, closeLookup, nil
}
