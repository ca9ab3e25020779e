package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/linedrill/internal/store"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend. With a nil repo the logging layer is
// skipped.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if repo != nil {
		base = WithLogging(base, repo, logger)
	}
	return WithRetry(base, cfg.Retry), nil
}
