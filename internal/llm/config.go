package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. Empty means no LLM is configured.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional API endpoint override
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // defaults to https://openrouter.ai/api/v1
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the defaults with no provider selected.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// ConfigFromEnv reads LINEDRILL_* variables over the defaults. When
// LINEDRILL_LLM_PROVIDER is unset it falls back to DiscoverConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	bindings := []struct {
		env string
		dst *string
	}{
		{"LINEDRILL_LLM_PROVIDER", &cfg.Provider},
		{"LINEDRILL_ANTHROPIC_API_KEY", &cfg.Anthropic.APIKey},
		{"LINEDRILL_ANTHROPIC_MODEL", &cfg.Anthropic.Model},
		{"LINEDRILL_OPENAI_API_KEY", &cfg.OpenAI.APIKey},
		{"LINEDRILL_OPENAI_MODEL", &cfg.OpenAI.Model},
		{"LINEDRILL_OPENAI_BASE_URL", &cfg.OpenAI.BaseURL},
		{"LINEDRILL_GEMINI_API_KEY", &cfg.Gemini.APIKey},
		{"LINEDRILL_GEMINI_MODEL", &cfg.Gemini.Model},
		{"LINEDRILL_OPENROUTER_API_KEY", &cfg.OpenRouter.APIKey},
		{"LINEDRILL_OPENROUTER_MODEL", &cfg.OpenRouter.Model},
	}
	for _, b := range bindings {
		if v := os.Getenv(b.env); v != "" {
			*b.dst = v
		}
	}

	if v := os.Getenv("LINEDRILL_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if cfg.Provider == "" {
		if found, ok := DiscoverConfig(); ok {
			found.Timeout = cfg.Timeout
			return found
		}
	}
	return cfg
}

// DiscoverConfig probes the vendors' standard API key variables in order
// Gemini, OpenAI, Anthropic, OpenRouter and returns a Config for the first
// one set, or false if none is.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "LINEDRILL_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "LINEDRILL_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "LINEDRILL_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "LINEDRILL_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
