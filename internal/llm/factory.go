package llm

import (
	"context"
	"fmt"

	"github.com/ritwikg/ctutor/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and event-logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, eventRepo)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewUnavailableProvider returns a Provider whose every Generate call
// fails with an ErrService carrying the given configuration error. It
// lets the app start without credentials and surface the problem at
// request time instead.
func NewUnavailableProvider(err error) Provider {
	return unavailableProvider{err: err}
}

type unavailableProvider struct {
	err error
}

func (p unavailableProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return nil, &ErrService{Status: 401, Body: p.err.Error(), Err: p.err}
}

func (p unavailableProvider) ModelID() string { return "unconfigured" }

// NewProviderFromEnv builds a Provider from CTUTOR_* env vars, falling
// back to probing standard API key env vars when no provider is
// explicitly configured.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo)
}
