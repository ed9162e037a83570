// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// LLMProvider identifies the text-generation service.
type LLMProvider string

const (
	ProviderOpenAI    LLMProvider = "openai"
	ProviderAnthropic LLMProvider = "anthropic"
)

// LookupBackendName identifies the knowledge-lookup service.
type LookupBackendName string

const (
	LookupWikipedia LookupBackendName = "wikipedia"
	LookupLocal     LookupBackendName = "local"
)

// Defaults applied by Config.WithDefaults.
const (
	DefaultTemperature     = 0.9
	DefaultLLMTimeout      = 60 * time.Second
	DefaultMaxTokens       = 1024
	DefaultOpenAIModel     = "gpt-4o-mini"
	DefaultAnthropicModel  = "claude-sonnet-4-5"
	DefaultLookupLanguage  = "en"
	DefaultLookupTopK      = 3
	DefaultLookupMaxChars  = 4000
	DefaultLookupTimeout   = 30 * time.Second
	DefaultLookupDBPath    = "knowledge/lookup.db"
	DefaultServerAddr      = ":8080"
	DefaultUserAgentPrefix = "product-autogpt/"
)

// HTTPConfig holds shared HTTP settings used by collaborators that make
// network requests.
type HTTPConfig struct {
	// Timeout bounds a single external call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "product-autogpt/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// LLMConfig holds settings for the text-generation collaborator.
type LLMConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the backend: openai or anthropic.
	Provider LLMProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier passed to the provider.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the provider credential. Never serialized.
	APIKey string `json:"-" yaml:"-" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (proxies, local gateways).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Temperature is the sampling temperature for every generation step.
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the response length where the provider requires it.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LookupConfig holds settings for the knowledge-lookup collaborator.
type LookupConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects wikipedia or local.
	Backend LookupBackendName `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Language is the Wikipedia language edition (e.g. "en").
	Language string `json:"language" yaml:"language" mapstructure:"language"`

	// TopK is the number of pages summarized per lookup.
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`

	// MaxChars truncates the combined summary, in runes.
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`

	// DBPath is the SQLite file used by the local backend.
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// PromptsConfig points at an optional template override file.
type PromptsConfig struct {
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// ServerConfig holds settings for the web UI.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`
}

// Config groups every setting the CLI reads from file, env, and flags.
type Config struct {
	LLM     LLMConfig     `json:"llm" yaml:"llm" mapstructure:"llm"`
	Lookup  LookupConfig  `json:"lookup" yaml:"lookup" mapstructure:"lookup"`
	Prompts PromptsConfig `json:"prompts" yaml:"prompts" mapstructure:"prompts"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
// Temperature is left alone: 0.0 is a valid setting, and the CLI seeds
// DefaultTemperature through viper instead.
func (c Config) WithDefaults() Config {
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderOpenAI
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderAnthropic:
			c.LLM.Model = DefaultAnthropicModel
		default:
			c.LLM.Model = DefaultOpenAIModel
		}
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = DefaultLLMTimeout
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Lookup.Backend == "" {
		c.Lookup.Backend = LookupWikipedia
	}
	if c.Lookup.Language == "" {
		c.Lookup.Language = DefaultLookupLanguage
	}
	if c.Lookup.TopK <= 0 {
		c.Lookup.TopK = DefaultLookupTopK
	}
	if c.Lookup.MaxChars <= 0 {
		c.Lookup.MaxChars = DefaultLookupMaxChars
	}
	if c.Lookup.Timeout <= 0 {
		c.Lookup.Timeout = DefaultLookupTimeout
	}
	if c.Lookup.DBPath == "" {
		c.Lookup.DBPath = DefaultLookupDBPath
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return c
}
